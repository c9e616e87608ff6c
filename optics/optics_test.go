package optics

import (
	"math"
	"testing"
)

const tol = 1e-9

func nearly(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestRadiansDegrees(t *testing.T) {
	if !nearly(Radians(180), math.Pi, 1e-15) {
		t.Fatalf("Radians(180) = %v", Radians(180))
	}
	if !nearly(Degrees(math.Pi/2), 90, 1e-12) {
		t.Fatalf("Degrees(pi/2) = %v", Degrees(math.Pi/2))
	}
	for _, d := range []float64{0, 12.5, 41.81, 89} {
		if got := Degrees(Radians(d)); !nearly(got, d, 1e-12) {
			t.Fatalf("round trip %v -> %v", d, got)
		}
	}
}

func TestCriticalAngleUndefinedWhenNotDenser(t *testing.T) {
	cases := [][2]float64{{1.0, 1.0}, {1.0, 1.5}, {1.33, 2.42}, {2.5, 2.5}}
	for _, c := range cases {
		if _, ok := CriticalAngle(c[0], c[1]); ok {
			t.Fatalf("critical angle for n1=%v n2=%v should not exist", c[0], c[1])
		}
	}
}

func TestCriticalAngleDenser(t *testing.T) {
	for n1 := 1.01; n1 <= 2.5; n1 += 0.07 {
		for n2 := 1.0; n2 < n1; n2 += 0.11 {
			got, ok := CriticalAngle(n1, n2)
			if !ok {
				t.Fatalf("critical angle missing for n1=%v n2=%v", n1, n2)
			}
			want := math.Asin(n2/n1) * 180 / math.Pi
			if !nearly(got, want, 1e-9) {
				t.Fatalf("critical(%v,%v) = %v, want %v", n1, n2, got, want)
			}
			if got <= 0 || got >= 90 {
				t.Fatalf("critical(%v,%v) = %v outside (0,90)", n1, n2, got)
			}
		}
	}
}

func TestTIRInclusiveAtCriticalAngle(t *testing.T) {
	for _, c := range [][2]float64{{1.5, 1.0}, {2.42, 1.0}, {1.33, 1.0}, {2.5, 2.42}} {
		critical, ok := CriticalAngle(c[0], c[1])
		if !ok {
			t.Fatalf("expected critical angle for %v", c)
		}
		if !IsTIR(c[0], c[1], critical) {
			t.Fatalf("IsTIR at critical angle %v should be true for %v", critical, c)
		}
		if _, ok := RefractedAngle(c[0], c[1], critical); ok {
			t.Fatalf("no refracted ray expected at the critical angle for %v", c)
		}
	}
}

func TestTIRMonotonic(t *testing.T) {
	for _, c := range [][2]float64{{1.5, 1.0}, {2.42, 1.33}, {1.0, 1.5}, {1.2, 1.2}} {
		seen := false
		for a := 0.0; a < 90; a += 0.25 {
			tir := IsTIR(c[0], c[1], a)
			if seen && !tir {
				t.Fatalf("TIR went from true to false at %v for %v", a, c)
			}
			seen = seen || tir
		}
	}
}

func TestSnellRoundTrip(t *testing.T) {
	for _, n1 := range []float64{1.0, 1.33, 1.5, 2.0, 2.42} {
		for _, n2 := range []float64{1.0, 1.33, 1.5, 2.42, 2.5} {
			for a := 0.0; a < 90; a += 1.5 {
				res := Refract(n1, n2, a)
				if res.IsTIR {
					continue
				}
				theta2 := *res.RefractedAngle
				lhs := n1 * math.Sin(Radians(a))
				rhs := n2 * math.Sin(Radians(theta2))
				if !nearly(lhs, rhs, 1e-9) {
					t.Fatalf("Snell mismatch n1=%v n2=%v a=%v: %v != %v", n1, n2, a, lhs, rhs)
				}
			}
		}
	}
}

func TestRefractInvariants(t *testing.T) {
	for _, n1 := range []float64{1.0, 1.33, 1.5, 2.42} {
		for _, n2 := range []float64{1.0, 1.33, 1.5, 2.42} {
			for a := 0.0; a <= 89; a += 0.5 {
				res := Refract(n1, n2, a)
				if res.IsTIR && res.RefractedAngle != nil {
					t.Fatalf("TIR with refracted angle for %v %v %v", n1, n2, a)
				}
				if !res.IsTIR && res.RefractedAngle == nil {
					t.Fatalf("neither TIR nor refraction for %v %v %v", n1, n2, a)
				}
				if (res.CriticalAngle == nil) != (n1 <= n2) {
					t.Fatalf("critical angle presence wrong for n1=%v n2=%v", n1, n2)
				}
				if res.IsTIR != IsTIR(n1, n2, a) {
					t.Fatalf("Refract and IsTIR disagree for %v %v %v", n1, n2, a)
				}
			}
		}
	}
}

func TestScenarios(t *testing.T) {
	t.Run("glass to air below critical", func(t *testing.T) {
		res := Refract(1.5, 1.0, 30)
		if res.IsTIR {
			t.Fatal("unexpected TIR")
		}
		want := math.Asin(0.75) * 180 / math.Pi
		if !nearly(*res.RefractedAngle, want, tol) || !nearly(*res.RefractedAngle, 48.59, 0.01) {
			t.Fatalf("refracted = %v, want %v", *res.RefractedAngle, want)
		}
		if !nearly(*res.CriticalAngle, 41.81, 0.01) {
			t.Fatalf("critical = %v, want ~41.81", *res.CriticalAngle)
		}
	})

	t.Run("glass to air above critical", func(t *testing.T) {
		res := Refract(1.5, 1.0, 50)
		if !res.IsTIR || res.RefractedAngle != nil {
			t.Fatalf("expected TIR, got %+v", res)
		}
	})

	t.Run("air to glass never reflects", func(t *testing.T) {
		for a := 0.0; a <= 89; a += 0.5 {
			res := Refract(1.0, 1.5, a)
			if res.CriticalAngle != nil || res.IsTIR {
				t.Fatalf("unexpected TIR at %v: %+v", a, res)
			}
		}
	})

	t.Run("diamond to air around critical", func(t *testing.T) {
		critical, _ := CriticalAngle(2.42, 1.0)
		if !nearly(critical, 24.41, 0.01) {
			t.Fatalf("critical = %v, want ~24.41", critical)
		}
		res := Refract(2.42, 1.0, 24.4)
		if res.IsTIR {
			t.Fatal("24.4 should still refract")
		}
		if *res.RefractedAngle < 85 || *res.RefractedAngle >= 90 {
			t.Fatalf("refracted = %v, want close to 90", *res.RefractedAngle)
		}
		if !IsTIR(2.42, 1.0, 24.5) {
			t.Fatal("24.5 should be TIR")
		}
	})
}

func TestReflectedAngle(t *testing.T) {
	for _, a := range []float64{0, 1e-9, 24.5, 45, 89, 90} {
		if ReflectedAngle(a) != a {
			t.Fatalf("ReflectedAngle(%v) = %v", a, ReflectedAngle(a))
		}
	}
}

func TestClampLerp(t *testing.T) {
	if Clamp(95.0, 0, 89) != 89 || Clamp(-3.0, 0, 89) != 0 || Clamp(12.0, 0, 89) != 12 {
		t.Fatal("Clamp float wrong")
	}
	if Clamp(7, 1, 5) != 5 {
		t.Fatal("Clamp int wrong")
	}
	if Lerp(2, 4, 0.5) != 3 || Lerp(2, 4, 0) != 2 || Lerp(2, 4, 1) != 4 {
		t.Fatal("Lerp wrong")
	}
}
