package server

import (
	"github.com/echoflaresat/lux/optics"
	"github.com/echoflaresat/lux/render"
	"github.com/echoflaresat/lux/shell"
)

// Client message types.
const (
	msgPointerDown = "pointerdown"
	msgPointerMove = "pointermove"
	msgPointerUp   = "pointerup"
	msgResize      = "resize"
	msgSet         = "set"
	msgPreset      = "preset"
	msgPing        = "ping"
)

// clientMessage is any message the page sends. Pointer coordinates are
// client coordinates; resize carries the canvas rect and the pixel ratio.
type clientMessage struct {
	Type string `json:"type"`

	X float64 `json:"x"`
	Y float64 `json:"y"`

	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	DPR    float64 `json:"dpr"`

	Field string   `json:"field"`
	Value *float64 `json:"value,omitempty"`
	Text  string   `json:"text,omitempty"`
	Name  string   `json:"name,omitempty"`
}

func (m clientMessage) rect() render.Rect {
	return render.Rect{Left: m.Left, Top: m.Top, Width: m.Width, Height: m.Height}
}

type stateMessage struct {
	Type   string          `json:"type"`
	Inputs render.Inputs   `json:"inputs"`
	Result optics.Result   `json:"result"`
	Panel  shell.PanelView `json:"panel"`
}

func newStateMessage(in render.Inputs) stateMessage {
	return stateMessage{
		Type:   "state",
		Inputs: in,
		Result: optics.Refract(in.N1, in.N2, in.Angle),
		Panel:  shell.Panel(in),
	}
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type pongMessage struct {
	Type string `json:"type"`
}
