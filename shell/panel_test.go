package shell

import (
	"testing"

	"github.com/echoflaresat/lux/optics"
	"github.com/echoflaresat/lux/render"
)

func TestPanelDefaults(t *testing.T) {
	p := Panel(render.Inputs{N1: 1.5, N2: 1.0, Angle: 30})
	if p.TIR || p.Warning != "" {
		t.Fatalf("30° glass to air is not TIR: %+v", p)
	}
	if p.CriticalAngle != "41.8°" {
		t.Fatalf("critical angle = %q", p.CriticalAngle)
	}
	if p.N1.Medium != "Glass" || p.N2.Medium != "Vacuum" {
		t.Fatalf("media = %q, %q", p.N1.Medium, p.N2.Medium)
	}
	if p.N1.Text != "1.50" || p.AngleText != "30.0" || p.AngleLabel != "30.0°" {
		t.Fatalf("texts = %q %q %q", p.N1.Text, p.AngleText, p.AngleLabel)
	}
	active := ""
	for _, b := range p.N1.Presets {
		if b.Active {
			active += b.Name
		}
	}
	if active != "Glass" {
		t.Fatalf("active n1 preset = %q", active)
	}
}

func TestPanelTIR(t *testing.T) {
	p := Panel(render.Inputs{N1: 1.5, N2: 1.0, Angle: 60})
	if !p.TIR || p.Warning != TIRWarning {
		t.Fatalf("want TIR warning: %+v", p)
	}
}

func TestPanelNoCriticalAngle(t *testing.T) {
	p := Panel(render.Inputs{N1: 1.0, N2: 1.5, Angle: 80})
	if p.TIR || p.CriticalAngle != "" {
		t.Fatalf("air to glass: %+v", p)
	}
	for _, b := range p.N2.Presets {
		if b.Active != (b.Name == "Glass") {
			t.Fatalf("preset %s active = %v", b.Name, b.Active)
		}
	}
	if q := Panel(render.Inputs{N1: 1.2, N2: 1.2}); q.N1.Medium != "n = 1.20" {
		t.Fatalf("unnamed medium = %q", q.N1.Medium)
	}
}

func TestPresetIndicesActivateTheirButton(t *testing.T) {
	for i, m := range optics.Presets {
		s := NewState()
		s.SetN1(m.Index)
		s.SetN2(m.Index)
		p := Panel(s.Snapshot())
		for _, ctl := range []IndexControl{p.N1, p.N2} {
			if ctl.Value != m.Index {
				t.Errorf("%s: value = %v, want %v", m.Name, ctl.Value, m.Index)
			}
			if !ctl.Presets[i].Active {
				t.Errorf("%s: %s button not active", m.Name, ctl.Label)
			}
		}
	}
}
