package render

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/echoflaresat/lux/colors"
	"github.com/echoflaresat/lux/vectors"
)

// Weight selects a font file.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// Align is the horizontal anchor of a text run.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Baseline is the vertical anchor of a text run.
type Baseline int

const (
	BaselineAlphabetic Baseline = iota
	BaselineMiddle
)

// TextStyle describes how a label is set.
type TextStyle struct {
	Size     float64
	Weight   Weight
	Align    Align
	Baseline Baseline
	Color    colors.Color4
}

// Parsed fonts are shared; faces are not safe for concurrent use and live in
// a per-renderer cache.
var (
	regularFont = sync.OnceValues(func() (*opentype.Font, error) { return opentype.Parse(goregular.TTF) })
	boldFont    = sync.OnceValues(func() (*opentype.Font, error) { return opentype.Parse(gobold.TTF) })
)

type faceKey struct {
	weight Weight
	size   float64
}

type faceCache struct {
	faces map[faceKey]font.Face
}

func newFaceCache() *faceCache {
	return &faceCache{faces: make(map[faceKey]font.Face)}
}

func (fc *faceCache) face(w Weight, size float64) (font.Face, error) {
	key := faceKey{w, size}
	if f, ok := fc.faces[key]; ok {
		return f, nil
	}
	load := regularFont
	if w == Bold {
		load = boldFont
	}
	otf, err := load()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	f, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	fc.faces[key] = f
	return f, nil
}

func (fc *faceCache) Close() {
	for k, f := range fc.faces {
		f.Close()
		delete(fc.faces, k)
	}
}

// Text draws s anchored at p. Glyphs are set at the backing resolution so
// they stay sharp on dense displays.
func (c *Canvas) Text(s string, p vectors.Point, st TextStyle) error {
	face, err := c.faces.face(st.Weight, st.Size*c.scale)
	if err != nil {
		return err
	}
	d := &font.Drawer{
		Dst:  c.dst,
		Src:  image.NewUniform(st.Color),
		Face: face,
	}
	x := p.X() * c.scale
	y := p.Y() * c.scale
	if st.Align == AlignCenter {
		x -= float64(d.MeasureString(s)) / 64 / 2
	}
	if st.Baseline == BaselineMiddle {
		m := face.Metrics()
		y += float64(m.Ascent-m.Descent) / 64 / 2
	}
	d.Dot = fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
	d.DrawString(s)
	return nil
}
