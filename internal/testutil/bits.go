// Package testutil holds helpers shared by the pattern tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"
)

// Bits parses a string of '0' and '1' into levels. Spaces and underscores
// are ignored so long vectors can be grouped. It panics on any other rune.
func Bits(s string) []uint8 {
	out := make([]uint8, 0, len(s))
	for i, r := range s {
		switch r {
		case '0':
			out = append(out, 0)
		case '1':
			out = append(out, 1)
		case ' ', '_':
		default:
			panic(fmt.Sprintf("testutil.Bits: invalid rune %q at %d", r, i))
		}
	}
	return out
}

// BitString formats levels as a string of '0' and '1'.
func BitString(levels []uint8) string {
	var b strings.Builder
	b.Grow(len(levels))
	for _, v := range levels {
		if v != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Square returns n levels of a pulse train: period steps per cycle, the
// first high of them set.
func Square(period, high, n int) []uint8 {
	out := make([]uint8, n)
	if period <= 0 {
		return out
	}
	for i := range out {
		if i%period < high {
			out[i] = 1
		}
	}
	return out
}

// RequireBits fails t unless got matches the bit string want.
func RequireBits(t testing.TB, got []uint8, want string) {
	t.Helper()
	if g, w := BitString(got), BitString(Bits(want)); g != w {
		t.Fatalf("bits mismatch:\n got  %s\n want %s", g, w)
	}
}
