package render

import "testing"

func TestSurfaceResize(t *testing.T) {
	cases := []struct {
		name         string
		rect         Rect
		dpr          float64
		wantW, wantH int
	}{
		{"plain", Rect{Width: 640, Height: 480}, 1, 640, 480},
		{"retina", Rect{Width: 640, Height: 480}, 2, 1280, 960},
		{"fractional", Rect{Width: 333, Height: 201}, 1.5, 500, 302},
		{"bad ratio", Rect{Width: 100, Height: 50}, 0, 100, 50},
		{"empty", Rect{Width: 0, Height: 50}, 1, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewSurface(c.rect, c.dpr)
			w, h := s.BackingSize()
			if w != c.wantW || h != c.wantH {
				t.Fatalf("backing = %dx%d, want %dx%d", w, h, c.wantW, c.wantH)
			}
			if s.Attached() != (w > 0) {
				t.Fatalf("attached = %v for %dx%d", s.Attached(), w, h)
			}
		})
	}
}

func TestSurfaceScale(t *testing.T) {
	s := NewSurface(Rect{Left: 10, Top: 20, Width: 400, Height: 300}, 2)
	sx, sy := s.Scale()
	if sx != 2 || sy != 2 {
		t.Fatalf("scale = %v,%v", sx, sy)
	}
	lw, lh := s.LogicalSize()
	if lw != 400 || lh != 300 {
		t.Fatalf("logical = %v,%v", lw, lh)
	}
	if !s.Rect().Contains(10, 20) || s.Rect().Contains(410, 20) {
		t.Fatal("Contains is half-open on the rect")
	}
}

func TestSurfaceResizeClears(t *testing.T) {
	s := NewSurface(Rect{Width: 4, Height: 4}, 1)
	s.Image().Pix[0] = 0xff
	s.Resize(Rect{Width: 4, Height: 4}, 1)
	if s.Image().Pix[0] != 0 {
		t.Fatal("resize should clear the backing store")
	}
	s.Detach()
	if s.Attached() {
		t.Fatal("detached surface reports attached")
	}
	w, h := s.BackingSize()
	if w != 0 || h != 0 {
		t.Fatalf("detached backing = %dx%d", w, h)
	}
}
