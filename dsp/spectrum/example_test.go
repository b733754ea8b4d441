package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-patgen/dsp/spectrum"
)

func ExamplePeakBin() {
	p := spectrum.Power([]complex128{complex(1, 0), complex(0, 3), complex(2, 0)})
	k, err := spectrum.PeakBin(p, 0, len(p))
	if err != nil {
		panic(err)
	}
	fmt.Printf("bin=%d power=%.0f\n", k, p[k])

	// Output:
	// bin=1 power=9
}
