package shell

import (
	"fmt"

	"github.com/echoflaresat/lux/optics"
	"github.com/echoflaresat/lux/render"
)

const (
	TIRWarning = "Total Internal Reflection"
	SnellsLaw  = "n₁ sin(θ₁) = n₂ sin(θ₂)"
	DragHint   = "Drag the light source on the canvas to change the angle"
)

// PresetButton is one quick-pick medium; Active marks the one matching the
// current index.
type PresetButton struct {
	Name   string  `json:"name"`
	Index  float64 `json:"n"`
	Active bool    `json:"active"`
}

// IndexControl is the slider, number box and presets for one medium.
type IndexControl struct {
	Label   string         `json:"label"`
	Value   float64        `json:"value"`
	Text    string         `json:"text"`
	Medium  string         `json:"medium"`
	Presets []PresetButton `json:"presets"`
}

// PanelView is everything the control panel shows for one set of inputs.
type PanelView struct {
	N1            IndexControl `json:"n1"`
	N2            IndexControl `json:"n2"`
	Angle         float64      `json:"angle"`
	AngleText     string       `json:"angleText"`
	AngleLabel    string       `json:"angleLabel"`
	TIR           bool         `json:"tir"`
	Warning       string       `json:"warning,omitempty"`
	CriticalAngle string       `json:"criticalAngle,omitempty"`
	SnellsLaw     string       `json:"snellsLaw"`
	Hint          string       `json:"hint"`
}

func Panel(in render.Inputs) PanelView {
	p := PanelView{
		N1:         indexControl("Medium 1 (n₁)", in.N1),
		N2:         indexControl("Medium 2 (n₂)", in.N2),
		Angle:      in.Angle,
		AngleText:  fmt.Sprintf("%.1f", in.Angle),
		AngleLabel: fmt.Sprintf("%.1f°", in.Angle),
		TIR:        optics.IsTIR(in.N1, in.N2, in.Angle),
		SnellsLaw:  SnellsLaw,
		Hint:       DragHint,
	}
	if p.TIR {
		p.Warning = TIRWarning
	}
	if c, ok := optics.CriticalAngle(in.N1, in.N2); ok {
		p.CriticalAngle = fmt.Sprintf("%.1f°", c)
	}
	return p
}

func indexControl(label string, n float64) IndexControl {
	c := IndexControl{
		Label:  label,
		Value:  n,
		Text:   fmt.Sprintf("%.2f", n),
		Medium: optics.MediumName(n),
	}
	active, hasActive := optics.ActivePreset(n)
	for _, m := range optics.Presets {
		c.Presets = append(c.Presets, PresetButton{
			Name:   m.Name,
			Index:  m.Index,
			Active: hasActive && m.Name == active.Name,
		})
	}
	return c
}
