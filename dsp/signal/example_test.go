package signal_test

import (
	"fmt"

	"github.com/cwbudde/algo-patgen/dsp/signal"
)

func ExampleDutyPulse() {
	x, err := signal.DutyPulse(4, 50, 8)
	if err != nil {
		panic(err)
	}
	fmt.Println(x)

	// Output:
	// [1 1 0 0 1 1 0 0]
}

func ExamplePRBS7() {
	fmt.Println(signal.PRBS7()[:10])

	// Output:
	// [1 1 1 1 1 1 1 0 0 0]
}
