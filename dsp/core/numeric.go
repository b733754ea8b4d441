package core

import "math"

const defaultEpsilon = 1e-12

// ClampInt limits value to the inclusive range [min, max].
func ClampInt(value, min, max int) int {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// RoundHalfUp rounds x to the nearest integer, with ties going towards
// positive infinity (2.5 -> 3, -2.5 -> -2).
//
// Step counts are derived with this rule rather than math.Round so that
// negative half values behave the same way as the positive ones.
func RoundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
