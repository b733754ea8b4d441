package pattern_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-patgen/pattern"
)

func TestNewDefaults(t *testing.T) {
	e, err := pattern.New()
	require.NoError(t, err)

	assert.Equal(t, pattern.DefaultConfig(), e.Config())
	assert.Equal(t, 4, e.Channels())
	assert.Equal(t, 8, e.Steps())
	assert.InDelta(t, 1000.0, e.StepDuration(), 1e-9)
	for _, row := range e.Cells() {
		assert.Equal(t, []uint8{0, 0, 0, 0, 0, 0, 0, 0}, row)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opt  pattern.Option
	}{
		{"zero sample rate", pattern.WithSampleRateMHz(0)},
		{"negative sample rate", pattern.WithSampleRateMHz(-1)},
		{"duty above 100", pattern.WithDutyCycle(100.5)},
		{"duty below 0", pattern.WithDutyCycle(-1)},
		{"zero frequency", pattern.WithTargetFrequency(0)},
		{"bit width", pattern.WithBitWidth(12)},
		{"mode", pattern.WithMode(pattern.Mode(42))},
		{"io standard", pattern.WithIOStandard(pattern.IOStandard(-1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pattern.New(tt.opt)
			require.ErrorIs(t, err, pattern.ErrInvalidConfigValue)
		})
	}
}

func TestNewRejectsInvalidShape(t *testing.T) {
	_, err := pattern.New(pattern.WithShape(0, 8))
	require.ErrorIs(t, err, pattern.ErrInvalidDimension)

	_, err = pattern.New(pattern.WithShape(4, 0))
	require.ErrorIs(t, err, pattern.ErrInvalidDimension)
}

func TestChannelsClampedToBitWidth(t *testing.T) {
	e, err := pattern.New(pattern.WithBitWidth(pattern.Width8), pattern.WithShape(12, 4))
	require.NoError(t, err)
	assert.Equal(t, 8, e.Channels())

	require.NoError(t, e.Resize(40, 4))
	assert.Equal(t, 8, e.Channels())

	require.NoError(t, e.SetMaxChannels(pattern.Width32))
	require.NoError(t, e.Resize(40, 4))
	assert.Equal(t, 32, e.Channels())

	e.Set(31, 3, 1)
	require.NoError(t, e.SetMaxChannels(pattern.Width16))
	assert.Equal(t, 16, e.Channels())
	assert.Equal(t, pattern.Width16, e.Config().MaxChannels)

	require.ErrorIs(t, e.SetMaxChannels(pattern.BitWidth(7)), pattern.ErrInvalidConfigValue)
	assert.Equal(t, 16, e.Channels())
}

func TestResizeRoundTrip(t *testing.T) {
	e, err := pattern.New(pattern.WithShape(2, 4))
	require.NoError(t, err)
	e.Set(0, 0, 1)
	e.Set(1, 3, 1)

	require.NoError(t, e.Resize(3, 6))
	assert.Equal(t, [][]uint8{
		{1, 0, 0, 0, 0, 0},
		{0, 0, 0, 1, 0, 0},
		{0, 0, 0, 0, 0, 0},
	}, e.Cells())

	require.NoError(t, e.Resize(2, 4))
	assert.Equal(t, [][]uint8{{1, 0, 0, 0}, {0, 0, 0, 1}}, e.Cells())

	require.ErrorIs(t, e.Resize(0, 4), pattern.ErrInvalidDimension)
	assert.Equal(t, 2, e.Channels())
}

func TestClear(t *testing.T) {
	e, err := pattern.New()
	require.NoError(t, err)
	e.Randomize(7)
	e.Clear()
	for _, row := range e.Cells() {
		for _, v := range row {
			assert.Zero(t, v)
		}
	}
}

func TestRandomizeIsSeeded(t *testing.T) {
	a, err := pattern.New(pattern.WithShape(8, 64))
	require.NoError(t, err)
	b, err := pattern.New(pattern.WithShape(8, 64))
	require.NoError(t, err)

	a.Randomize(99)
	b.Randomize(99)
	assert.Equal(t, a.Cells(), b.Cells())

	b.Randomize(100)
	assert.NotEqual(t, a.Cells(), b.Cells())
}

func TestSetGet(t *testing.T) {
	e, err := pattern.New()
	require.NoError(t, err)

	e.Set(1, 2, 5)
	assert.Equal(t, uint8(1), e.Get(1, 2))
	e.Set(1, 2, 0)
	assert.Equal(t, uint8(0), e.Get(1, 2))

	e.Set(10, 2, 1)
	assert.Equal(t, uint8(0), e.Get(10, 2))
	_, ok := e.Lookup(10, 2)
	assert.False(t, ok)
	_, ok = e.Lookup(3, 7)
	assert.True(t, ok)
}

func TestSetStrict(t *testing.T) {
	e, err := pattern.New()
	require.NoError(t, err)

	require.NoError(t, e.SetStrict(0, 0, 1))
	assert.Equal(t, uint8(1), e.Get(0, 0))
	require.ErrorIs(t, e.SetStrict(0, 1, 2), pattern.ErrNonBinaryValue)
	require.ErrorIs(t, e.SetStrict(4, 0, 1), pattern.ErrInvalidDimension)
	assert.Equal(t, uint8(0), e.Get(0, 1))
}

func TestCellsAreCopies(t *testing.T) {
	e, err := pattern.New()
	require.NoError(t, err)

	cells := e.Cells()
	cells[0][0] = 1
	assert.Equal(t, uint8(0), e.Get(0, 0))

	ch := e.Channel(0)
	ch[0] = 1
	assert.Equal(t, uint8(0), e.Get(0, 0))
	assert.Nil(t, e.Channel(9))
}

func TestSettersValidate(t *testing.T) {
	e, err := pattern.New()
	require.NoError(t, err)

	require.ErrorIs(t, e.SetSampleRateMHz(0), pattern.ErrInvalidConfigValue)
	require.ErrorIs(t, e.SetDutyCycle(101), pattern.ErrInvalidConfigValue)
	require.ErrorIs(t, e.SetTargetFrequency(-5), pattern.ErrInvalidConfigValue)
	require.ErrorIs(t, e.SetMode(pattern.Mode(9)), pattern.ErrInvalidConfigValue)
	require.ErrorIs(t, e.SetIOStandard(pattern.IOStandard(9)), pattern.ErrInvalidConfigValue)
	assert.Equal(t, pattern.DefaultConfig(), e.Config())

	require.NoError(t, e.SetSampleRateMHz(100))
	require.NoError(t, e.SetDutyCycle(25))
	require.NoError(t, e.SetTargetFrequency(2000))
	require.NoError(t, e.SetMode(pattern.ModeClock))
	require.NoError(t, e.SetIOStandard(pattern.IOLVDS))
	e.SetExpression("t")

	cfg := e.Config()
	assert.Equal(t, 100.0, cfg.SampleRateMHz)
	assert.Equal(t, 25.0, cfg.DutyCycle)
	assert.Equal(t, 2000.0, cfg.TargetFrequencyHz)
	assert.Equal(t, pattern.ModeClock, cfg.Mode)
	assert.Equal(t, pattern.IOLVDS, cfg.IOStandard)
	assert.Equal(t, "t", cfg.Expression)
	assert.InDelta(t, 10.0, e.StepDuration(), 1e-9)
}

func TestCanGenerate(t *testing.T) {
	e, err := pattern.New()
	require.NoError(t, err)
	assert.False(t, e.CanGenerate())

	require.NoError(t, e.SetMode(pattern.ModePWM))
	assert.True(t, e.CanGenerate())
	require.NoError(t, e.SetTargetFrequency(600_000))
	assert.False(t, e.CanGenerate())

	require.NoError(t, e.SetMode(pattern.ModePRBS))
	assert.True(t, e.CanGenerate())

	require.NoError(t, e.SetMode(pattern.ModeExpression))
	assert.False(t, e.CanGenerate())
	e.SetExpression("  ")
	assert.False(t, e.CanGenerate())
	e.SetExpression("t")
	assert.True(t, e.CanGenerate())
}

func TestWithLoggerNilKeepsDefault(t *testing.T) {
	e, err := pattern.New(pattern.WithLogger(nil), pattern.WithMode(pattern.ModePRBS))
	require.NoError(t, err)
	_, err = e.Generate()
	require.NoError(t, err)
}

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
