package signal

// PRBS7Length is the period of the PRBS7 sequence, 2^7 - 1.
const PRBS7Length = 127

const (
	prbs7Width = 7
	prbs7Seed  = 0x7F
)

// LFSR is a Fibonacci linear-feedback shift register. The output bit is the
// register's most significant bit; after each output the register shifts
// left and the XOR of the tapped bits enters at bit 0.
type LFSR struct {
	state uint32
	width uint
	taps  []uint
}

// NewPRBS7 returns the 7-bit register for x^7 + x^6 + 1 (taps at bits 6 and
// 5) initialised to all ones.
func NewPRBS7() *LFSR {
	return &LFSR{
		state: prbs7Seed,
		width: prbs7Width,
		taps:  []uint{6, 5},
	}
}

// State returns the current register contents.
func (l *LFSR) State() uint32 {
	return l.state
}

// Next emits the current output bit and advances the register once.
func (l *LFSR) Next() uint8 {
	out := uint8(l.state >> (l.width - 1) & 1)

	var fb uint32
	for _, tap := range l.taps {
		fb ^= l.state >> tap & 1
	}
	l.state = (l.state<<1 | fb) & (1<<l.width - 1)

	return out
}

// Read fills dst with successive output bits.
func (l *LFSR) Read(dst []uint8) {
	for i := range dst {
		dst[i] = l.Next()
	}
}

// PRBS7 returns one full period of the PRBS7 sequence starting from the
// all-ones register. It begins 1111111000.
func PRBS7() []uint8 {
	out := make([]uint8, PRBS7Length)
	NewPRBS7().Read(out)
	return out
}

// PRBS7Tiled returns length values of the PRBS7 sequence, wrapping around
// after each period.
func PRBS7Tiled(length int) ([]uint8, error) {
	return Tile(PRBS7(), length)
}
