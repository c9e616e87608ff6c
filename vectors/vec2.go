// Package vectors holds the 2D screen geometry shared by the renderer and the
// pointer controller. Screen y grows downward.
package vectors

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Point is a screen coordinate pair.
type Point = mgl64.Vec2

func P(x, y float64) Point {
	return Point{x, y}
}

// Side selects which side of the normal a ray lies on.
type Side int

const (
	Left Side = iota
	Right
)

// Half selects the medium a ray lies in.
type Half int

const (
	Upper Half = iota
	Lower
)

// FromNormal returns the point at distance length from center, rotated
// angleRad away from the normal toward side, in the given half.
func FromNormal(center Point, angleRad, length float64, side Side, half Half) Point {
	dx := math.Sin(angleRad) * length
	dy := math.Cos(angleRad) * length
	if side == Left {
		dx = -dx
	}
	if half == Upper {
		dy = -dy
	}
	return center.Add(Point{dx, dy})
}

// OnArc returns the point at angle a (radians, canvas convention: 0 along +x,
// increasing clockwise on screen) on the circle of radius r around center.
func OnArc(center Point, r, a float64) Point {
	return center.Add(Point{math.Cos(a) * r, math.Sin(a) * r})
}

// Rotate turns p around the origin by a radians.
func Rotate(p Point, a float64) Point {
	s, c := math.Sincos(a)
	return Point{p.X()*c - p.Y()*s, p.X()*s + p.Y()*c}
}

func Distance(a, b Point) float64 {
	return a.Sub(b).Len()
}
