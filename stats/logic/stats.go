// Package logic computes time-domain statistics of a 0/1 level sequence:
// duty cycle, edge counts and run lengths.
package logic

// Stats holds statistics of one channel of logic levels.
type Stats struct {
	Length      int     `json:"length"`
	Ones        int     `json:"ones"`
	Zeros       int     `json:"zeros"`
	DutyCycle   float64 `json:"duty_cycle"`   // percent of steps at 1
	Transitions int     `json:"transitions"`  // Rising + Falling
	Rising      int     `json:"rising"`
	Falling     int     `json:"falling"`
	LongestHigh int     `json:"longest_high"` // longest run of 1s
	LongestLow  int     `json:"longest_low"`  // longest run of 0s
	FirstRising int     `json:"first_rising"` // index of the first 0->1 edge, -1 if none
}

func emptyStats() Stats {
	return Stats{FirstRising: -1}
}

// Calculate computes all statistics in one pass.
func Calculate(levels []uint8) Stats {
	if len(levels) == 0 {
		return emptyStats()
	}

	s := Stats{Length: len(levels), FirstRising: -1}

	run := 0
	prev := level(levels[0])
	for i, raw := range levels {
		v := level(raw)
		if v == 1 {
			s.Ones++
		}

		if i > 0 && v != prev {
			if v == 1 {
				s.Rising++
				if s.FirstRising < 0 {
					s.FirstRising = i
				}
			} else {
				s.Falling++
			}
			run = 0
		}
		run++
		if v == 1 {
			s.LongestHigh = max(s.LongestHigh, run)
		} else {
			s.LongestLow = max(s.LongestLow, run)
		}
		prev = v
	}

	s.Zeros = s.Length - s.Ones
	s.Transitions = s.Rising + s.Falling
	s.DutyCycle = 100 * float64(s.Ones) / float64(s.Length)

	return s
}

// DutyCycle returns the percentage of steps at 1.
func DutyCycle(levels []uint8) float64 {
	if len(levels) == 0 {
		return 0
	}
	ones := 0
	for _, v := range levels {
		ones += int(level(v))
	}
	return 100 * float64(ones) / float64(len(levels))
}

// Transitions counts level changes between adjacent steps.
func Transitions(levels []uint8) int {
	n := 0
	for i := 1; i < len(levels); i++ {
		if level(levels[i]) != level(levels[i-1]) {
			n++
		}
	}
	return n
}

// Bipolar maps levels to +1 (high) and -1 (low) for spectral analysis.
func Bipolar(levels []uint8) []float64 {
	out := make([]float64, len(levels))
	for i, v := range levels {
		if level(v) == 1 {
			out[i] = 1
		} else {
			out[i] = -1
		}
	}
	return out
}

func level(v uint8) uint8 {
	if v != 0 {
		return 1
	}
	return 0
}
