package optics

import (
	"fmt"
	"math"
	"strings"
)

// Ranges accepted by the controls. The physics functions themselves accept
// any positive index.
const (
	MinIndex  = 1.0
	MaxIndex  = 2.5
	IndexStep = 0.01

	MinAngle  = 0.0
	MaxAngle  = 89.0
	AngleStep = 0.5

	DefaultN1    = 1.5
	DefaultN2    = 1.0
	DefaultAngle = 30.0

	// presetTolerance is how close an index must be to count as a preset.
	presetTolerance = 0.05
)

// Medium is a named refractive index.
type Medium struct {
	Name  string  `json:"name"`
	Index float64 `json:"n"`
}

// Presets lists the quick-pick media in display order.
var Presets = []Medium{
	{Name: "Air", Index: 1.0},
	{Name: "Water", Index: 1.33},
	{Name: "Glass", Index: 1.5},
	{Name: "Diamond", Index: 2.42},
}

// PresetByName looks up a preset, ignoring case.
func PresetByName(name string) (Medium, bool) {
	for _, m := range Presets {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return Medium{}, false
}

// ActivePreset returns the first preset within 0.05 of n.
func ActivePreset(n float64) (Medium, bool) {
	for _, m := range Presets {
		if math.Abs(n-m.Index) < presetTolerance {
			return m, true
		}
	}
	return Medium{}, false
}

// MediumName gives a friendly name for a refractive index, falling back to
// the formatted value.
func MediumName(n float64) string {
	switch {
	case n < 1.01:
		return "Vacuum"
	case n < 1.05:
		return "Air"
	case n >= 1.30 && n <= 1.35:
		return "Water"
	case n >= 1.45 && n <= 1.55:
		return "Glass"
	case n >= 2.35 && n <= 2.50:
		return "Diamond"
	}
	return fmt.Sprintf("n = %.2f", n)
}
