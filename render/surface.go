package render

import (
	"image"
	"math"
)

// Rect is the displayed placement of a surface in client (CSS pixel)
// coordinates.
type Rect struct {
	Left, Top, Width, Height float64
}

// Contains reports whether the client point lies on the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Left+r.Width && y >= r.Top && y < r.Top+r.Height
}

// Surface is a raster drawing target sized to its container. Its backing
// store holds displayed size × device pixel ratio pixels; drawing code works
// in logical (displayed) units and the canvas scales by the ratio.
//
// A zero Surface is detached; Draw calls on it are no-ops.
type Surface struct {
	rect Rect
	dpr  float64
	img  *image.RGBA
}

// NewSurface returns a surface attached with the given displayed rect.
func NewSurface(rect Rect, dpr float64) *Surface {
	s := &Surface{}
	s.Resize(rect, dpr)
	return s
}

// Resize recomputes the backing store from the displayed size and the pixel
// ratio. The pixels are cleared, as a canvas is when its size is assigned.
func (s *Surface) Resize(rect Rect, dpr float64) {
	if dpr <= 0 || math.IsNaN(dpr) {
		dpr = 1
	}
	s.rect = rect
	s.dpr = dpr

	w := int(math.Round(rect.Width * dpr))
	h := int(math.Round(rect.Height * dpr))
	if w <= 0 || h <= 0 {
		s.img = nil
		return
	}
	if s.img != nil && s.img.Rect.Dx() == w && s.img.Rect.Dy() == h {
		clear(s.img.Pix)
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Detach drops the backing store.
func (s *Surface) Detach() {
	s.img = nil
}

// Attached reports whether the surface currently has pixels to draw on.
func (s *Surface) Attached() bool {
	return s != nil && s.img != nil
}

func (s *Surface) Rect() Rect { return s.rect }

func (s *Surface) DPR() float64 {
	if s.dpr <= 0 {
		return 1
	}
	return s.dpr
}

// BackingSize is the pixel size of the backing store.
func (s *Surface) BackingSize() (int, int) {
	if !s.Attached() {
		return 0, 0
	}
	return s.img.Rect.Dx(), s.img.Rect.Dy()
}

// LogicalSize is the backing size expressed in displayed pixels.
func (s *Surface) LogicalSize() (float64, float64) {
	w, h := s.BackingSize()
	return float64(w) / s.DPR(), float64(h) / s.DPR()
}

// Scale maps displayed (client) lengths to backing pixels on each axis.
func (s *Surface) Scale() (float64, float64) {
	w, h := s.BackingSize()
	if s.rect.Width <= 0 || s.rect.Height <= 0 {
		return 1, 1
	}
	return float64(w) / s.rect.Width, float64(h) / s.rect.Height
}

// Image exposes the backing store. It is nil while detached.
func (s *Surface) Image() *image.RGBA {
	if s == nil {
		return nil
	}
	return s.img
}
