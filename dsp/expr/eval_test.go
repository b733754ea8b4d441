package expr

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-patgen/dsp/core"
)

func mustParse(t *testing.T, text string) Expr {
	t.Helper()
	e, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", text, err)
	}
	return e
}

func TestEvalSine(t *testing.T) {
	e := mustParse(t, "sin(2*pi*t*1000)")
	if got := e.Eval(0, 1000, 1); got != 0.5 {
		t.Fatalf("Eval(0) = %v, want 0.5", got)
	}
	if got := e.Eval(0.25e-3, 1000, 1); !core.NearlyEqual(got, 1.0, 1e-12) {
		t.Fatalf("Eval(quarter period) = %v, want 1.0", got)
	}
	if got := e.Eval(0.75e-3, 1000, 1); math.Abs(got) > 1e-12 {
		t.Fatalf("Eval(three quarter period) = %v, want 0", got)
	}
}

func TestEvalCosine(t *testing.T) {
	e := mustParse(t, "cos(2*pi*t*1000)")
	if got := e.Eval(0, 1000, 1); got != 1.0 {
		t.Fatalf("Eval(0) = %v, want 1", got)
	}
	if got := e.Eval(0.5e-3, 1000, 1); math.Abs(got) > 1e-12 {
		t.Fatalf("Eval(half period) = %v, want 0", got)
	}
}

func TestEvalRamp(t *testing.T) {
	e := mustParse(t, "t")
	total := 8e-6
	tests := []struct {
		t, want float64
	}{
		{0, 0},
		{2e-6, 0.25},
		{4e-6, 0.5},
		{10e-6, 0.25},
	}
	for _, tt := range tests {
		if got := e.Eval(tt.t, 1, total); !core.NearlyEqual(got, tt.want, 1e-9) {
			t.Fatalf("Eval(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
	if got := e.Eval(1, 1, 0); got != 0 {
		t.Fatalf("Eval with zero duration = %v, want 0", got)
	}
}

func TestEvalConstant(t *testing.T) {
	e := mustParse(t, "0.7")
	if got := e.Eval(123, 456, 789); got != 0.7 {
		t.Fatalf("Eval() = %v, want 0.7", got)
	}
}

func TestLevelThreshold(t *testing.T) {
	if mustParse(t, "0.5").Level(0, 1, 1) != 1 {
		t.Fatal("0.5 must read high")
	}
	if mustParse(t, "0.4999").Level(0, 1, 1) != 0 {
		t.Fatal("0.4999 must read low")
	}
}

func TestEvaluate(t *testing.T) {
	v, err := Evaluate("sin(2*pi*t*1000)", 0, 1000, 1)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if v != 0.5 {
		t.Fatalf("Evaluate() = %v, want 0.5", v)
	}
	if _, err := Evaluate("bogus", 0, 1, 1); err == nil {
		t.Fatal("expected error for invalid text")
	}
}
