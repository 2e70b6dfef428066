package embedding

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	v := Normalize(Vector{3, 4})
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if math.Abs(norm-1) > 1e-6 {
		t.Errorf("expected unit norm, got %f", norm)
	}

	// Zero vector stays zero instead of dividing by zero.
	z := Normalize(Vector{0, 0})
	if z[0] != 0 || z[1] != 0 {
		t.Errorf("expected zero vector unchanged, got %v", z)
	}
}

func TestDot(t *testing.T) {
	cases := []struct {
		name string
		a, b Vector
		want float64
	}{
		{"identical unit", Vector{1, 0}, Vector{1, 0}, 1},
		{"orthogonal", Vector{1, 0}, Vector{0, 1}, 0},
		{"opposite", Vector{1, 0}, Vector{-1, 0}, -1},
		{"mismatched length", Vector{1, 0}, Vector{1}, 0},
		{"empty", Vector{}, Vector{}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Dot(tc.a, tc.b); math.Abs(got-tc.want) > 1e-6 {
				t.Errorf("Dot(%v, %v) = %f, want %f", tc.a, tc.b, got, tc.want)
			}
		})
	}
}
