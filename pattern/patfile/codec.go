package patfile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-patgen/pattern"
)

// Magic opens every pattern file.
const Magic = "PATG"

// Version is the format version written by Encode.
const Version byte = 1

// Ext is the conventional file extension.
const Ext = ".pat"

// maxDimension bounds channel and step counts read from a file so a corrupt
// header cannot trigger a huge allocation.
const maxDimension = 1 << 20

var (
	// ErrBadMagic reports a file that does not start with Magic or carries an
	// unknown version.
	ErrBadMagic = errors.New("not a pattern file")
	// ErrTruncated reports a file that ends before all fields are read.
	ErrTruncated = errors.New("truncated pattern file")
	// ErrCorrupt reports fields that decode but do not describe a valid pattern.
	ErrCorrupt = errors.New("corrupt pattern file")
)

// Encode writes s to w.
func Encode(w io.Writer, s pattern.State) error {
	if len(s.Cells) != s.Channels*s.Steps {
		return fmt.Errorf("%w: %d cells for a %dx%d grid", pattern.ErrInvalidDimension, len(s.Cells), s.Channels, s.Steps)
	}

	bw := bufio.NewWriter(w)
	enc := encoder{w: bw}
	enc.bytes([]byte(Magic))
	enc.bytes([]byte{Version})
	enc.int32(int32(s.Config.MaxChannels))
	enc.int32(int32(s.Channels))
	enc.int32(int32(s.Steps))
	enc.float64(s.Config.SampleRateMHz)
	enc.string(s.Config.IOStandard.String())
	enc.string(s.Config.Mode.String())
	enc.float64(s.Config.DutyCycle)
	enc.float64(s.Config.TargetFrequencyHz)
	enc.string(s.Config.Expression)
	enc.bytes(s.Cells)
	if enc.err != nil {
		return fmt.Errorf("write pattern: %w", enc.err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write pattern: %w", err)
	}
	return nil
}

// Decode reads one pattern from r. The returned state has not been checked
// against the engine's configuration rules; FromState does that.
func Decode(r io.Reader) (pattern.State, error) {
	dec := decoder{r: bufio.NewReader(r)}

	magic := dec.bytes(len(Magic) + 1)
	if dec.err != nil {
		return pattern.State{}, dec.err
	}
	if string(magic[:len(Magic)]) != Magic {
		return pattern.State{}, fmt.Errorf("%w: magic %q", ErrBadMagic, magic[:len(Magic)])
	}
	if magic[len(Magic)] != Version {
		return pattern.State{}, fmt.Errorf("%w: unsupported version %d", ErrBadMagic, magic[len(Magic)])
	}

	var s pattern.State
	s.Config.MaxChannels = pattern.BitWidth(dec.int32())
	s.Channels = int(dec.int32())
	s.Steps = int(dec.int32())
	s.Config.SampleRateMHz = dec.float64()
	ioName := dec.string()
	modeName := dec.string()
	s.Config.DutyCycle = dec.float64()
	s.Config.TargetFrequencyHz = dec.float64()
	s.Config.Expression = dec.string()
	if dec.err != nil {
		return pattern.State{}, dec.err
	}

	var err error
	if s.Config.IOStandard, err = pattern.ParseIOStandard(ioName); err != nil {
		return pattern.State{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if s.Config.Mode, err = pattern.ParseMode(modeName); err != nil {
		return pattern.State{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if s.Channels < 1 || s.Steps < 1 || s.Channels > maxDimension || s.Steps > maxDimension ||
		s.Channels*s.Steps > maxDimension {
		return pattern.State{}, fmt.Errorf("%w: grid %dx%d", ErrCorrupt, s.Channels, s.Steps)
	}

	s.Cells = dec.bytes(s.Channels * s.Steps)
	if dec.err != nil {
		return pattern.State{}, dec.err
	}
	for i, v := range s.Cells {
		if v > 1 {
			return pattern.State{}, fmt.Errorf("%w: cell %d holds %d", ErrCorrupt, i, v)
		}
	}
	return s, nil
}

// Read decodes a pattern from r and builds an engine from it.
func Read(r io.Reader, opts ...pattern.Option) (*pattern.Engine, error) {
	s, err := Decode(r)
	if err != nil {
		return nil, err
	}
	e, err := pattern.FromState(s, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return e, nil
}

// Write encodes the engine's current state to w.
func Write(w io.Writer, e *pattern.Engine) error {
	return Encode(w, e.State())
}

type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) bytes(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) int32(v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	e.bytes(b[:])
}

func (e *encoder) float64(v float64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(v))
	e.bytes(b[:])
}

func (e *encoder) string(s string) {
	if len(s) > math.MaxUint16 {
		if e.err == nil {
			e.err = fmt.Errorf("string field too long: %d bytes", len(s))
		}
		return
	}
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(len(s)))
	e.bytes(b[:])
	e.bytes([]byte(s))
}

type decoder struct {
	r   io.Reader
	err error
}

func (d *decoder) bytes(n int) []byte {
	if d.err != nil {
		return nil
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(d.r, b); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			d.err = ErrTruncated
		} else {
			d.err = fmt.Errorf("read pattern: %w", err)
		}
		return nil
	}
	return b
}

func (d *decoder) int32() int32 {
	b := d.bytes(4)
	if b == nil {
		return 0
	}
	return int32(binary.BigEndian.Uint32(b))
}

func (d *decoder) float64() float64 {
	b := d.bytes(8)
	if b == nil {
		return 0
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b))
}

func (d *decoder) string() string {
	b := d.bytes(2)
	if b == nil {
		return ""
	}
	return string(d.bytes(int(binary.BigEndian.Uint16(b))))
}
