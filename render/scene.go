package render

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/echoflaresat/lux/colors"
	"github.com/echoflaresat/lux/optics"
	"github.com/echoflaresat/lux/vectors"
)

// Scene constants in logical pixels.
const (
	RayLengthFraction = 0.45
	ArcRadius         = 50.0
	ArcLabelOffset    = 20.0
	RayWidth          = 3.0
	GlowBlur          = 20.0
	NormalInset       = 40.0
)

// Inputs are the three scalars a frame is computed from.
type Inputs struct {
	N1    float64 `json:"n1"`
	N2    float64 `json:"n2"`
	Angle float64 `json:"angle"`
}

// Outcome says which second ray a frame shows.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeRefracted
	OutcomeReflected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRefracted:
		return "refracted"
	case OutcomeReflected:
		return "reflected"
	}
	return "none"
}

// Geometry is the screen layout of one frame in logical pixels.
type Geometry struct {
	Width, Height float64
	Center        vectors.Point
	RayLength     float64

	// Source is the far end of the incident ray, where the emitter sits.
	Source vectors.Point

	Outcome      Outcome
	OutcomeEnd   vectors.Point
	OutcomeAngle float64
}

// Layout places the rays of a frame of the given logical size.
func Layout(in Inputs, res optics.Result, width, height float64) Geometry {
	g := Geometry{
		Width:     width,
		Height:    height,
		Center:    vectors.P(width/2, height/2),
		RayLength: math.Min(width, height) * RayLengthFraction,
	}
	theta1 := optics.Radians(in.Angle)
	g.Source = vectors.FromNormal(g.Center, theta1, g.RayLength, vectors.Left, vectors.Upper)

	switch {
	case res.IsTIR:
		g.Outcome = OutcomeReflected
		g.OutcomeAngle = optics.ReflectedAngle(in.Angle)
		g.OutcomeEnd = vectors.FromNormal(g.Center, optics.Radians(g.OutcomeAngle), g.RayLength, vectors.Right, vectors.Upper)
	case res.RefractedAngle != nil:
		g.Outcome = OutcomeRefracted
		g.OutcomeAngle = *res.RefractedAngle
		g.OutcomeEnd = vectors.FromNormal(g.Center, optics.Radians(g.OutcomeAngle), g.RayLength, vectors.Right, vectors.Lower)
	}
	return g
}

// arcSweep returns the start and end (radians, canvas convention) of the
// angle arc for a ray. The incident arc opens upper-left of the normal, the
// refracted arc lower-right and the reflected arc upper-right.
func arcSweep(o Outcome, angleRad float64, incident bool) (float64, float64) {
	switch {
	case incident:
		return -math.Pi/2 - angleRad, -math.Pi / 2
	case o == OutcomeRefracted:
		return math.Pi/2 - angleRad, math.Pi / 2
	default:
		return -math.Pi / 2, -math.Pi/2 + angleRad
	}
}

// Renderer paints the two-medium scene. A Renderer keeps font faces between
// frames and is not safe for concurrent use.
type Renderer struct {
	Theme  Theme
	logger *slog.Logger
	faces  *faceCache
}

func NewRenderer(theme Theme, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{Theme: theme, logger: logger, faces: newFaceCache()}
}

// Close releases cached font faces.
func (r *Renderer) Close() {
	r.faces.Close()
}

// Draw computes the refraction for in and paints a frame. It does nothing when
// the surface is not attached.
func (r *Renderer) Draw(s *Surface, in Inputs) {
	r.DrawResult(s, in, optics.Refract(in.N1, in.N2, in.Angle))
}

// DrawResult paints a frame for a precomputed result.
func (r *Renderer) DrawResult(s *Surface, in Inputs, res optics.Result) {
	if !s.Attached() {
		return
	}
	c := newCanvas(s, r.faces)
	w, h := s.LogicalSize()
	g := Layout(in, res, w, h)
	th := r.Theme

	c.Clear()
	c.FillRect(0, 0, w, h/2, th.Medium1)
	c.FillRect(0, h/2, w, h/2, th.Medium2)
	c.FillVerticalGradient(0, 0, w, h/2, th.Medium1Shade)
	c.FillVerticalGradient(0, h/2, w, h/2, th.Medium2Shade)

	c.StrokeLine(vectors.P(0, h/2), vectors.P(w, h/2), 2, th.Interface)

	c.StrokeDashed(vectors.P(g.Center.X(), NormalInset), vectors.P(g.Center.X(), h-NormalInset), 2, 8, 8, th.Normal)
	r.label(c, "Normal", vectors.P(g.Center.X(), 28), TextStyle{Size: 12, Align: AlignCenter, Color: th.Text})

	c.GlowLine(g.Source, g.Center, RayWidth, GlowBlur, th.Incident, th.IncidentGlow)
	r.drawSource(c, g.Source, optics.Radians(in.Angle))

	switch g.Outcome {
	case OutcomeReflected:
		c.GlowLine(g.Center, g.OutcomeEnd, RayWidth, GlowBlur, th.Reflected, th.ReflectedGlow)
		r.drawAngleArc(c, g.Center, g.OutcomeAngle, g.Outcome, false, th.Reflected)
	case OutcomeRefracted:
		c.GlowLine(g.Center, g.OutcomeEnd, RayWidth, GlowBlur, th.Refracted, th.RefractedGlow)
		r.drawAngleArc(c, g.Center, g.OutcomeAngle, g.Outcome, false, th.Refracted)
	}
	r.drawAngleArc(c, g.Center, in.Angle, g.Outcome, true, th.Incident)

	labelStyle := TextStyle{Size: 14, Weight: Bold, Color: th.MediumLabel}
	r.label(c, fmt.Sprintf("Medium 1 (n1 = %.2f)", in.N1), vectors.P(20, 30), labelStyle)
	r.label(c, fmt.Sprintf("Medium 2 (n2 = %.2f)", in.N2), vectors.P(20, h-15), labelStyle)
}

func (r *Renderer) label(c *Canvas, s string, p vectors.Point, st TextStyle) {
	if err := c.Text(s, p, st); err != nil {
		r.logger.Warn("failed to draw label", "text", s, "error", err)
	}
}

func (r *Renderer) drawAngleArc(c *Canvas, center vectors.Point, angleDeg float64, o Outcome, incident bool, col colors.Color4) {
	start, end := arcSweep(o, optics.Radians(angleDeg), incident)
	c.StrokeArc(center, ArcRadius, start, end, 2, col)

	mid := (start + end) / 2
	at := vectors.OnArc(center, ArcRadius+ArcLabelOffset, mid)
	r.label(c, fmt.Sprintf("%.1f°", angleDeg), at, TextStyle{
		Size:     14,
		Weight:   Bold,
		Align:    AlignCenter,
		Baseline: BaselineMiddle,
		Color:    col,
	})
}

// drawSource paints the emitter glyph at p, turned to face the interface.
func (r *Renderer) drawSource(c *Canvas, p vectors.Point, angleRad float64) {
	th := r.Theme
	turn := angleRad + math.Pi
	local := func(x, y float64) vectors.Point {
		return p.Add(vectors.Rotate(vectors.P(x, y), turn))
	}

	c.FillCircle(p, 18, th.SourceHalo)
	c.FillCircleGradient(p, 12, th.SourceBody)
	c.FillPolygon([]vectors.Point{
		local(-6, -12),
		local(6, -12),
		local(4, -20),
		local(-4, -20),
	}, th.SourceTip)
	c.FillCircle(local(0, -12), 4, th.SourceLens)
}
