package server

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/echoflaresat/lux/optics"
	"github.com/echoflaresat/lux/render"
	"github.com/echoflaresat/lux/shell"
)

// inputsFromQuery reads n1, n2 and angle, defaulting missing ones to the
// simulator's start values.
func inputsFromQuery(q url.Values) (render.Inputs, error) {
	in := render.Inputs{N1: optics.DefaultN1, N2: optics.DefaultN2, Angle: optics.DefaultAngle}
	fields := []struct {
		f   shell.Field
		dst *float64
	}{
		{shell.FieldN1, &in.N1},
		{shell.FieldN2, &in.N2},
		{shell.FieldAngle, &in.Angle},
	}
	for _, fd := range fields {
		text := q.Get(string(fd.f))
		if text == "" {
			continue
		}
		v, err := shell.ParseValue(fd.f, text)
		if err != nil {
			return render.Inputs{}, err
		}
		*fd.dst = v
	}
	return in, nil
}

type frameSize struct {
	width, height float64
	dpr           float64
}

func frameSizeFromQuery(q url.Values, maxBacking int) (frameSize, error) {
	size := frameSize{width: 800, height: 600, dpr: 1}
	for name, dst := range map[string]*float64{"w": &size.width, "h": &size.height, "dpr": &size.dpr} {
		text := q.Get(name)
		if text == "" {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil || v <= 0 {
			return frameSize{}, fmt.Errorf("invalid %s %q", name, text)
		}
		*dst = v
	}
	if err := checkBacking(size.width, size.height, size.dpr, maxBacking); err != nil {
		return frameSize{}, err
	}
	return size, nil
}

// checkBacking rejects sizes whose backing store would exceed maxBacking
// pixels on either side. A non-positive ratio counts as 1, as in
// render.Surface.
func checkBacking(width, height, dpr float64, maxBacking int) error {
	if dpr <= 0 || math.IsNaN(dpr) {
		dpr = 1
	}
	limit := float64(maxBacking)
	if !(width*dpr <= limit) || !(height*dpr <= limit) {
		return fmt.Errorf("frame larger than %d pixels", maxBacking)
	}
	return nil
}
