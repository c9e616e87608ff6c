// Package optics computes refraction and total internal reflection at a
// planar interface between two media. All angles at the package boundary are
// in degrees, measured from the interface normal.
package optics

import (
	"math"

	"github.com/soniakeys/unit"
	"golang.org/x/exp/constraints"
)

// Result is the outcome of a ray meeting the interface.
//
// RefractedAngle is nil under total internal reflection. CriticalAngle is nil
// whenever n1 <= n2.
type Result struct {
	RefractedAngle *float64 `json:"refractedAngle"`
	IsTIR          bool     `json:"isTIR"`
	CriticalAngle  *float64 `json:"criticalAngle"`
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return unit.AngleFromDeg(deg).Rad()
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return unit.Angle(rad).Deg()
}

// CriticalAngle returns asin(n2/n1) in degrees. It exists only when light
// travels from the denser medium (n1 > n2).
func CriticalAngle(n1, n2 float64) (float64, bool) {
	if n1 <= n2 {
		return 0, false
	}
	ratio := n2 / n1
	if ratio > 1 {
		return 0, false
	}
	return Degrees(math.Asin(ratio)), true
}

// IsTIR reports whether an incident angle theta1 (degrees) is totally
// internally reflected. The critical angle itself counts as reflection.
func IsTIR(n1, n2, theta1 float64) bool {
	critical, ok := CriticalAngle(n1, n2)
	if !ok {
		return false
	}
	return theta1 >= critical
}

// RefractedAngle applies Snell's law, n1 sin θ1 = n2 sin θ2, and returns θ2 in
// degrees. ok is false under total internal reflection or when rounding pushes
// the asin argument outside [-1, 1].
func RefractedAngle(n1, n2, theta1 float64) (float64, bool) {
	if IsTIR(n1, n2, theta1) {
		return 0, false
	}
	s := n1 * unit.AngleFromDeg(theta1).Sin() / n2
	if s > 1 || s < -1 || math.IsNaN(s) {
		return 0, false
	}
	return Degrees(math.Asin(s)), true
}

// Refract combines CriticalAngle, IsTIR and RefractedAngle into one Result.
// A ray without a refracted angle is always reported as reflected so the two
// fields never disagree.
func Refract(n1, n2, theta1 float64) Result {
	var res Result
	if critical, ok := CriticalAngle(n1, n2); ok {
		res.CriticalAngle = &critical
	}
	if theta2, ok := RefractedAngle(n1, n2, theta1); ok {
		res.RefractedAngle = &theta2
	} else {
		res.IsTIR = true
	}
	return res
}

// ReflectedAngle follows the law of reflection: the reflected ray leaves at
// the incident angle, mirrored across the normal into the same medium.
func ReflectedAngle(theta1 float64) float64 {
	return theta1
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp returns a*(1-t) + b*t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
