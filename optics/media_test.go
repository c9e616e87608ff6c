package optics

import "testing"

func TestMediumName(t *testing.T) {
	cases := []struct {
		n    float64
		want string
	}{
		{1.0, "Vacuum"},
		{1.0003, "Vacuum"},
		{1.02, "Air"},
		{1.2, "n = 1.20"},
		{1.33, "Water"},
		{1.35, "Water"},
		{1.5, "Glass"},
		{1.6, "n = 1.60"},
		{2.42, "Diamond"},
		{2.5, "Diamond"},
	}
	for _, c := range cases {
		if got := MediumName(c.n); got != c.want {
			t.Errorf("MediumName(%v) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestPresets(t *testing.T) {
	m, ok := PresetByName("diamond")
	if !ok || m.Index != 2.42 {
		t.Fatalf("PresetByName(diamond) = %+v, %v", m, ok)
	}
	if _, ok := PresetByName("obsidian"); ok {
		t.Fatal("unexpected preset")
	}

	if m, ok := ActivePreset(1.34); !ok || m.Name != "Water" {
		t.Fatalf("ActivePreset(1.34) = %+v, %v", m, ok)
	}
	if m, ok := ActivePreset(1.04); !ok || m.Name != "Air" {
		t.Fatalf("ActivePreset(1.04) = %+v, %v", m, ok)
	}
	if _, ok := ActivePreset(2.0); ok {
		t.Fatal("2.0 should not match a preset")
	}
}
