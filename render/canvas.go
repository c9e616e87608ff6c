package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/echoflaresat/lux/colors"
	"github.com/echoflaresat/lux/vectors"
)

// Canvas paints anti-aliased shapes onto a surface. Coordinates are logical
// pixels; scale converts them to backing pixels.
type Canvas struct {
	dst   *image.RGBA
	scale float64
	z     vector.Rasterizer
	faces *faceCache
}

func newCanvas(s *Surface, faces *faceCache) *Canvas {
	return &Canvas{dst: s.Image(), scale: s.DPR(), faces: faces}
}

func (c *Canvas) px(p vectors.Point) (float32, float32) {
	return float32(p.X() * c.scale), float32(p.Y() * c.scale)
}

// Clear resets every pixel to transparent.
func (c *Canvas) Clear() {
	clear(c.dst.Pix)
}

func (c *Canvas) deviceRect(x, y, w, h float64) image.Rectangle {
	x0 := int(math.Round(x * c.scale))
	y0 := int(math.Round(y * c.scale))
	x1 := int(math.Round((x + w) * c.scale))
	y1 := int(math.Round((y + h) * c.scale))
	return image.Rect(x0, y0, x1, y1).Intersect(c.dst.Rect)
}

// FillRect composites col over the rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col colors.Color4) {
	r := c.deviceRect(x, y, w, h)
	if r.Empty() {
		return
	}
	draw.Draw(c.dst, r, image.NewUniform(col), image.Point{}, draw.Over)
}

// FillVerticalGradient composites a top-to-bottom gradient over the rectangle.
func (c *Canvas) FillVerticalGradient(x, y, w, h float64, g Gradient) {
	r := c.deviceRect(x, y, w, h)
	if r.Empty() {
		return
	}
	span := float64(r.Dy())
	for row := r.Min.Y; row < r.Max.Y; row++ {
		t := (float64(row-r.Min.Y) + 0.5) / span
		line := image.Rect(r.Min.X, row, r.Max.X, row+1)
		draw.Draw(c.dst, line, image.NewUniform(g.At(t)), image.Point{}, draw.Over)
	}
}

// FillPolygon fills a closed polygon with a solid color.
func (c *Canvas) FillPolygon(pts []vectors.Point, col colors.Color4) {
	c.fillWith(pts, image.NewUniform(col))
}

func (c *Canvas) fillWith(pts []vectors.Point, src image.Image) {
	if len(pts) < 3 {
		return
	}
	b := c.dst.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	c.z.DrawOp = draw.Over
	c.z.MoveTo(c.px(pts[0]))
	for _, p := range pts[1:] {
		c.z.LineTo(c.px(p))
	}
	c.z.ClosePath()
	c.z.Draw(c.dst, b, src, image.Point{})
}

// StrokeLine draws a butt-capped segment of the given width.
func (c *Canvas) StrokeLine(a, b vectors.Point, width float64, col colors.Color4) {
	if q := segmentQuad(a, b, width); q != nil {
		c.FillPolygon(q, col)
	}
}

// StrokeDashed draws a segment as alternating dashes and gaps.
func (c *Canvas) StrokeDashed(a, b vectors.Point, width, dash, gap float64, col colors.Color4) {
	d := b.Sub(a)
	length := d.Len()
	if length == 0 || dash <= 0 {
		return
	}
	dir := d.Mul(1 / length)
	for pos := 0.0; pos < length; pos += dash + gap {
		end := math.Min(pos+dash, length)
		c.StrokeLine(a.Add(dir.Mul(pos)), a.Add(dir.Mul(end)), width, col)
	}
}

// GlowLine draws a segment with a soft halo of the given blur radius beneath
// it.
func (c *Canvas) GlowLine(a, b vectors.Point, width, blur float64, col, glow colors.Color4) {
	const passes = 4
	for i := passes; i >= 1; i-- {
		w := width + blur*float64(i)/passes
		c.StrokeLine(a, b, w, glow.MulAlpha(1.0/passes))
	}
	c.StrokeLine(a, b, width, col)
}

// StrokeArc draws the arc of radius r around center, sweeping clockwise on
// screen from start to end (radians, 0 along +x).
func (c *Canvas) StrokeArc(center vectors.Point, r, start, end, width float64, col colors.Color4) {
	if end <= start || r <= 0 {
		return
	}
	n := int(math.Ceil((end - start) * r / 2))
	if n < 8 {
		n = 8
	}
	outer := r + width/2
	inner := math.Max(r-width/2, 0)
	pts := make([]vectors.Point, 0, 2*(n+1))
	for i := 0; i <= n; i++ {
		a := start + (end-start)*float64(i)/float64(n)
		pts = append(pts, vectors.OnArc(center, outer, a))
	}
	for i := n; i >= 0; i-- {
		a := start + (end-start)*float64(i)/float64(n)
		pts = append(pts, vectors.OnArc(center, inner, a))
	}
	c.FillPolygon(pts, col)
}

// FillCircle fills a disc.
func (c *Canvas) FillCircle(center vectors.Point, r float64, col colors.Color4) {
	c.fillWith(circlePoints(center, r), image.NewUniform(col))
}

// FillCircleGradient fills a disc with a radial gradient centred on it.
func (c *Canvas) FillCircleGradient(center vectors.Point, r float64, g Gradient) {
	cx, cy := c.px(center)
	src := &radialSource{
		cx:     float64(cx),
		cy:     float64(cy),
		r:      r * c.scale,
		g:      g,
		bounds: c.dst.Bounds(),
	}
	c.fillWith(circlePoints(center, r), src)
}

func circlePoints(center vectors.Point, r float64) []vectors.Point {
	n := int(math.Ceil(2 * math.Pi * r / 2))
	if n < 16 {
		n = 16
	}
	pts := make([]vectors.Point, n)
	for i := range pts {
		pts[i] = vectors.OnArc(center, r, 2*math.Pi*float64(i)/float64(n))
	}
	return pts
}

func segmentQuad(a, b vectors.Point, width float64) []vectors.Point {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 || width <= 0 {
		return nil
	}
	n := vectors.P(-d.Y(), d.X()).Mul(width / 2 / l)
	return []vectors.Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
}

// Stop is one color stop of a gradient.
type Stop struct {
	At    float64
	Color colors.Color4
}

// Gradient is an ordered list of stops over t in [0,1].
type Gradient []Stop

// At interpolates the gradient at t.
func (g Gradient) At(t float64) colors.Color4 {
	if len(g) == 0 {
		return colors.Color4{}
	}
	if t <= g[0].At {
		return g[0].Color
	}
	for i := 1; i < len(g); i++ {
		if t <= g[i].At {
			span := g[i].At - g[i-1].At
			if span <= 0 {
				return g[i].Color
			}
			return g[i-1].Color.Mix(g[i].Color, (t-g[i-1].At)/span)
		}
	}
	return g[len(g)-1].Color
}

// radialSource is an image.Image evaluating a gradient by distance from a
// centre, in backing pixels.
type radialSource struct {
	cx, cy, r float64
	g         Gradient
	bounds    image.Rectangle
}

func (s *radialSource) ColorModel() color.Model { return color.RGBA64Model }

func (s *radialSource) Bounds() image.Rectangle { return s.bounds }

func (s *radialSource) At(x, y int) color.Color {
	dx := float64(x) + 0.5 - s.cx
	dy := float64(y) + 0.5 - s.cy
	t := 1.0
	if s.r > 0 {
		t = math.Sqrt(dx*dx+dy*dy) / s.r
	}
	return s.g.At(t)
}
