// Package pattern implements the digital test-pattern engine: a generation
// configuration (bit width, sample rate, I/O standard, mode, duty cycle,
// target frequency, expression) paired with a channel x step grid, and the
// Generate operation that fills the grid for the selected mode.
//
// Modes:
//
//   - Manual: nothing is computed; cells are edited with Set.
//   - PWM and Clock: a duty-cycle pulse train at the target frequency.
//   - PRBS: the PRBS7 maximal-length sequence tiled over the steps.
//   - Expression: a restricted time expression thresholded at 0.5.
//
// Every channel receives the same waveform. Validation failures are returned
// before the grid is touched, and a frequency that cannot complete a cycle
// within the grid is adjusted and reported in the Result rather than written
// back into the configuration.
//
// An Engine is not safe for concurrent use; callers that share one across
// goroutines must serialise access themselves.
package pattern
