package window

import (
	"math"
	"testing"
)

func TestGenerateLengthAndRange(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeHamming} {
		t.Run(Info(typ).Name, func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}
			for i, v := range w {
				if math.IsNaN(v) || v < 0 || v > 1 {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
			}
		})
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("Generate(0) = %v, want nil", w)
	}
	if w := Generate(TypeHann, 1); len(w) != 1 || w[0] != 1 {
		t.Fatalf("Generate(1) = %v, want [1]", w)
	}
}

func TestHannSymmetric(t *testing.T) {
	w := Generate(TypeHann, 9)
	for i := range w {
		if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
			t.Fatalf("asymmetric at %d: %v vs %v", i, w[i], w[len(w)-1-i])
		}
	}
	if math.Abs(w[4]-1) > 1e-12 {
		t.Fatalf("center = %v, want 1", w[4])
	}
}

func TestHannPeriodic(t *testing.T) {
	w := Generate(TypeHann, 4, WithPeriodic())
	want := []float64{0, 0.5, 1, 0.5}
	for i := range want {
		if math.Abs(w[i]-want[i]) > 1e-12 {
			t.Fatalf("w[%d] = %v, want %v", i, w[i], want[i])
		}
	}
}

func TestPeriodicMeanMatchesCoherentGain(t *testing.T) {
	w := Generate(TypeHann, 1024, WithPeriodic())
	sum := 0.0
	for _, c := range w {
		sum += c
	}
	if g := sum / float64(len(w)); math.Abs(g-Info(TypeHann).CoherentGain) > 1e-9 {
		t.Fatalf("mean = %v, want 0.5", g)
	}
}

func TestInfoUnknown(t *testing.T) {
	if Info(Type(99)).Name != "Unknown" {
		t.Fatal("unknown type should report Unknown")
	}
}
