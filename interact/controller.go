package interact

import (
	"math"

	"github.com/echoflaresat/lux/optics"
	"github.com/echoflaresat/lux/render"
	"github.com/echoflaresat/lux/vectors"
)

// AngleAt returns the incident angle, in degrees from the normal, of a ray
// from p to center. Points at or below the interface have no angle. The
// result is clamped to the UI range.
func AngleAt(center, p vectors.Point) (float64, bool) {
	if p.Y() > center.Y() {
		return 0, false
	}
	dx := p.X() - center.X()
	dy := center.Y() - p.Y()
	if dy <= 0 {
		return 0, false
	}
	deg := optics.Degrees(math.Atan2(math.Abs(dx), dy))
	return optics.Clamp(deg, optics.MinAngle, optics.MaxAngle), true
}

// Controller tracks a drag on the surface and reports the incident angle
// under the pointer.
type Controller struct {
	surface  *render.Surface
	onAngle  func(float64)
	dragging bool
}

func NewController(s *render.Surface, onAngle func(float64)) *Controller {
	return &Controller{surface: s, onAngle: onAngle}
}

func (c *Controller) Dragging() bool { return c.dragging }

// PointerDown starts a drag when the press lands on the surface and applies
// the press point at once. It reports whether the press was taken.
func (c *Controller) PointerDown(x, y float64) bool {
	if !c.surface.Attached() || !c.surface.Rect().Contains(x, y) {
		return false
	}
	c.dragging = true
	c.PointerMove(x, y)
	return true
}

// PointerMove updates the angle while dragging.
func (c *Controller) PointerMove(x, y float64) {
	if !c.dragging || !c.surface.Attached() {
		return
	}
	w, h := c.surface.BackingSize()
	center := vectors.P(float64(w)/2, float64(h)/2)
	if angle, ok := AngleAt(center, c.toBacking(x, y)); ok && c.onAngle != nil {
		c.onAngle(angle)
	}
}

// PointerUp ends a drag wherever the pointer is released.
func (c *Controller) PointerUp() {
	c.dragging = false
}

// toBacking maps client coordinates onto backing pixels.
func (c *Controller) toBacking(x, y float64) vectors.Point {
	r := c.surface.Rect()
	sx, sy := c.surface.Scale()
	return vectors.P((x-r.Left)*sx, (y-r.Top)*sy)
}
