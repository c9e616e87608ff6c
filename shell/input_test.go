package shell

import (
	"errors"
	"testing"
)

func TestSetFromText(t *testing.T) {
	cases := []struct {
		name    string
		field   Field
		text    string
		wantErr error
		want    float64
	}{
		{"index", FieldN1, "1.33", nil, 1.33},
		{"padded", FieldN2, " 2.42 ", nil, 2.42},
		{"angle", FieldAngle, "45.5", nil, 45.5},
		{"angle bound", FieldAngle, "89", nil, 89},
		{"empty", FieldN1, "", ErrInvalidInput, 0},
		{"letters", FieldN1, "abc", ErrInvalidInput, 0},
		{"nan", FieldN2, "NaN", ErrInvalidInput, 0},
		{"inf", FieldAngle, "Inf", ErrInvalidInput, 0},
		{"index too low", FieldN1, "0.99", ErrOutOfRange, 0},
		{"index too high", FieldN2, "2.51", ErrOutOfRange, 0},
		{"angle too high", FieldAngle, "90", ErrOutOfRange, 0},
		{"negative angle", FieldAngle, "-1", ErrOutOfRange, 0},
		{"bad field", Field("theta"), "1", ErrUnknownField, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewState()
			before := s.Snapshot()
			err := s.SetFromText(c.field, c.text)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("err = %v, want %v", err, c.wantErr)
				}
				if s.Snapshot() != before {
					t.Fatal("rejected text changed the state")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			in := s.Snapshot()
			got := map[Field]float64{FieldN1: in.N1, FieldN2: in.N2, FieldAngle: in.Angle}[c.field]
			if got != c.want {
				t.Fatalf("%s = %v, want %v", c.field, got, c.want)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	s := NewState()
	if err := s.ApplyPreset(FieldN2, "water"); err != nil {
		t.Fatal(err)
	}
	if err := s.ApplyPreset(FieldN1, "Diamond"); err != nil {
		t.Fatal(err)
	}
	in := s.Snapshot()
	if in.N1 != 2.42 || in.N2 != 1.33 {
		t.Fatalf("state = %+v", in)
	}
	if err := s.ApplyPreset(FieldN1, "Quartz"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("unknown preset err = %v", err)
	}
	if err := s.ApplyPreset(FieldAngle, "Air"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("angle preset err = %v", err)
	}
}
