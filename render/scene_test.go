package render

import (
	"bytes"
	"image/color"
	"math"
	"testing"

	"github.com/echoflaresat/lux/optics"
	"github.com/echoflaresat/lux/vectors"
)

const eps = 1e-9

func near(a, b vectors.Point) bool {
	return math.Abs(a.X()-b.X()) < 1e-6 && math.Abs(a.Y()-b.Y()) < 1e-6
}

func along(a, b vectors.Point, t float64) vectors.Point {
	return a.Add(b.Sub(a).Mul(t))
}

func pixelAt(s *Surface, p vectors.Point) color.RGBA {
	x := int(p.X() * s.DPR())
	y := int(p.Y() * s.DPR())
	return s.Image().RGBAAt(x, y)
}

func TestLayoutNormalIncidence(t *testing.T) {
	in := Inputs{N1: 1.33, N2: 1.33, Angle: 0}
	g := Layout(in, optics.Refract(in.N1, in.N2, in.Angle), 400, 300)

	if !near(g.Center, vectors.P(200, 150)) {
		t.Fatalf("center = %v", g.Center)
	}
	if math.Abs(g.RayLength-135) > eps {
		t.Fatalf("ray length = %v, want 135", g.RayLength)
	}
	if !near(g.Source, vectors.P(200, 15)) {
		t.Errorf("source = %v, want straight above the centre", g.Source)
	}
	if g.Outcome != OutcomeRefracted {
		t.Fatalf("outcome = %v", g.Outcome)
	}
	if !near(g.OutcomeEnd, vectors.P(200, 285)) {
		t.Errorf("refracted end = %v, want straight below the centre", g.OutcomeEnd)
	}
}

func TestLayoutTIR(t *testing.T) {
	in := Inputs{N1: 1.5, N2: 1.0, Angle: 60}
	res := optics.Refract(in.N1, in.N2, in.Angle)
	g := Layout(in, res, 400, 300)

	if g.Outcome != OutcomeReflected {
		t.Fatalf("outcome = %v, want reflected", g.Outcome)
	}
	if g.OutcomeAngle != 60 {
		t.Errorf("reflected angle = %v", g.OutcomeAngle)
	}
	// Reflection mirrors the source across the normal.
	mirror := vectors.P(2*g.Center.X()-g.Source.X(), g.Source.Y())
	if !near(g.OutcomeEnd, mirror) {
		t.Errorf("reflected end = %v, want %v", g.OutcomeEnd, mirror)
	}
}

func TestLayoutUsesShortSide(t *testing.T) {
	in := Inputs{N1: 1, N2: 1, Angle: 10}
	g := Layout(in, optics.Refract(1, 1, 10), 1000, 200)
	if math.Abs(g.RayLength-90) > eps {
		t.Fatalf("ray length = %v, want 90", g.RayLength)
	}
}

func TestArcSweep(t *testing.T) {
	th := optics.Radians(30)
	cases := []struct {
		name       string
		outcome    Outcome
		incident   bool
		start, end float64
	}{
		{"incident", OutcomeRefracted, true, -math.Pi/2 - th, -math.Pi / 2},
		{"refracted", OutcomeRefracted, false, math.Pi/2 - th, math.Pi / 2},
		{"reflected", OutcomeReflected, false, -math.Pi / 2, -math.Pi/2 + th},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, e := arcSweep(c.outcome, th, c.incident)
			if math.Abs(s-c.start) > eps || math.Abs(e-c.end) > eps {
				t.Fatalf("sweep = (%v, %v), want (%v, %v)", s, e, c.start, c.end)
			}
		})
	}
}

func TestDrawDetachedIsNoop(t *testing.T) {
	r := NewRenderer(DefaultTheme(), nil)
	defer r.Close()

	var nilSurface *Surface
	r.Draw(nilSurface, Inputs{N1: 1.5, N2: 1, Angle: 30})

	s := NewSurface(Rect{Width: 0, Height: 300}, 1)
	r.Draw(s, Inputs{N1: 1.5, N2: 1, Angle: 30})
	if s.Attached() {
		t.Fatal("zero-width surface should stay detached")
	}

	s = NewSurface(Rect{Width: 40, Height: 30}, 1)
	s.Detach()
	r.Draw(s, Inputs{N1: 1.5, N2: 1, Angle: 30})
	if s.Image() != nil {
		t.Fatal("detached surface gained pixels")
	}
}

func TestDrawRefractedRay(t *testing.T) {
	for _, dpr := range []float64{1, 2} {
		r := NewRenderer(DefaultTheme(), nil)
		s := NewSurface(Rect{Width: 400, Height: 300}, dpr)
		in := Inputs{N1: 1.0, N2: 1.5, Angle: 30}
		r.Draw(s, in)
		r.Close()

		w, h := s.LogicalSize()
		g := Layout(in, optics.Refract(in.N1, in.N2, in.Angle), w, h)
		px := pixelAt(s, along(g.Center, g.OutcomeEnd, 0.8))
		if px.G < 150 || px.R > 100 {
			t.Errorf("dpr %v: refracted ray pixel = %v, want green", dpr, px)
		}

		inc := pixelAt(s, along(g.Source, g.Center, 0.7))
		if inc.R < 200 || inc.G > 120 {
			t.Errorf("dpr %v: incident ray pixel = %v, want red", dpr, inc)
		}
	}
}

func TestDrawReflectedRayUnderTIR(t *testing.T) {
	r := NewRenderer(DefaultTheme(), nil)
	defer r.Close()
	s := NewSurface(Rect{Width: 400, Height: 300}, 1)
	in := Inputs{N1: 1.5, N2: 1.0, Angle: 60}
	r.Draw(s, in)

	g := Layout(in, optics.Refract(in.N1, in.N2, in.Angle), 400, 300)
	px := pixelAt(s, along(g.Center, g.OutcomeEnd, 0.8))
	if px.R < 200 || px.B > 60 || px.G < 120 {
		t.Errorf("reflected ray pixel = %v, want orange", px)
	}

	// Where a refracted ray would run, medium 2 shows through.
	below := vectors.FromNormal(g.Center, optics.Radians(60), g.RayLength*0.8, vectors.Right, vectors.Lower)
	bg := pixelAt(s, below)
	if bg.B <= bg.R || bg.G > 100 {
		t.Errorf("pixel below the interface = %v, want medium 2", bg)
	}
}

func TestDrawMediaBackground(t *testing.T) {
	r := NewRenderer(DefaultTheme(), nil)
	defer r.Close()
	s := NewSurface(Rect{Width: 400, Height: 300}, 1)
	r.Draw(s, Inputs{N1: 1.5, N2: 1.0, Angle: 30})

	top := s.Image().RGBAAt(380, 80)
	bottom := s.Image().RGBAAt(380, 220)
	if top.A != 0xff || bottom.A != 0xff {
		t.Fatalf("background not opaque: %v %v", top, bottom)
	}
	if bottom.B <= top.B {
		t.Errorf("medium 2 %v should be bluer than medium 1 %v", bottom, top)
	}
}

func TestDrawIsDeterministic(t *testing.T) {
	in := Inputs{N1: 2.42, N2: 1.33, Angle: 44.5}
	var frames [][]byte
	for i := 0; i < 2; i++ {
		r := NewRenderer(DefaultTheme(), nil)
		s := NewSurface(Rect{Width: 320, Height: 240}, 1.5)
		r.Draw(s, in)
		r.Draw(s, in)
		r.Close()
		frames = append(frames, append([]byte(nil), s.Image().Pix...))
	}
	if !bytes.Equal(frames[0], frames[1]) {
		t.Fatal("same inputs produced different frames")
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeNone.String() != "none" || OutcomeRefracted.String() != "refracted" || OutcomeReflected.String() != "reflected" {
		t.Fatal("unexpected outcome names")
	}
}
