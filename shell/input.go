package shell

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/echoflaresat/lux/optics"
)

// ParseValue checks text typed into a field's number box. Anything that is
// not a finite number inside the field's range is rejected.
func ParseValue(f Field, text string) (float64, error) {
	lo, hi, err := f.Bounds()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidInput, f, text)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%w: %s %v not in [%v, %v]", ErrOutOfRange, f, v, lo, hi)
	}
	return v, nil
}

// SetFromText applies typed text to a field. Rejected text leaves the state
// untouched.
func (s *State) SetFromText(f Field, text string) error {
	v, err := ParseValue(f, text)
	if err != nil {
		return err
	}
	return s.Set(f, v)
}

// ApplyPreset sets an index field to a named medium.
func (s *State) ApplyPreset(f Field, name string) error {
	if f != FieldN1 && f != FieldN2 {
		return fmt.Errorf("%w: presets apply to n1 and n2, not %q", ErrUnknownField, string(f))
	}
	m, ok := optics.PresetByName(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return s.Set(f, m.Index)
}
