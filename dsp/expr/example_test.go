package expr_test

import (
	"fmt"

	"github.com/cwbudde/algo-patgen/dsp/expr"
)

func ExampleParse() {
	text := "sin(2*pi*t*1000)"
	e, err := expr.Parse(text)
	if err != nil {
		panic(err)
	}
	freq := expr.ExtractFrequency(text)

	fmt.Printf("%v %.0f %.2f %.2f\n", e.Kind(), freq, e.Eval(0, freq, 1), e.Eval(0.25e-3, freq, 1))

	// Output:
	// sin 1000 0.50 1.00
}
