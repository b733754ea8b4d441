package pattern_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-patgen/pattern"
)

func TestParseMode(t *testing.T) {
	for _, m := range pattern.Modes() {
		got, err := pattern.ParseMode(" " + m.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := pattern.ParseMode("prbs")
	require.NoError(t, err)
	assert.Equal(t, pattern.ModePRBS, got)

	_, err = pattern.ParseMode("sawtooth")
	require.ErrorIs(t, err, pattern.ErrInvalidConfigValue)
	assert.Equal(t, "Mode(9)", pattern.Mode(9).String())
}

func TestModePeriodic(t *testing.T) {
	assert.True(t, pattern.ModePWM.Periodic())
	assert.True(t, pattern.ModeClock.Periodic())
	assert.False(t, pattern.ModePRBS.Periodic())
	assert.False(t, pattern.ModeExpression.Periodic())
	assert.False(t, pattern.ModeManual.Periodic())
}

func TestIOStandards(t *testing.T) {
	assert.Equal(t, "TTL: 0V (low), 5V (high)", pattern.IOTTL.Description())
	assert.Equal(t, "LVTTL: 0V (low), 3.3V (high)", pattern.IOLVTTL.Description())
	assert.Equal(t, "LVCMOS: 0V (low), 1.8V-3.3V (high)", pattern.IOLVCMOS.Description())
	assert.Equal(t, "LVDS: Differential, ~1.2V common mode", pattern.IOLVDS.Description())

	lv := pattern.IOLVDS.Levels()
	assert.True(t, lv.Differential)
	assert.Equal(t, 1.2, lv.CommonModeV)
	assert.Equal(t, 5.0, pattern.IOTTL.Levels().HighMaxV)

	std, err := pattern.ParseIOStandard("lvcmos")
	require.NoError(t, err)
	assert.Equal(t, pattern.IOLVCMOS, std)
	_, err = pattern.ParseIOStandard("ECL")
	require.ErrorIs(t, err, pattern.ErrInvalidConfigValue)
}

func TestParseBitWidth(t *testing.T) {
	for in, want := range map[string]pattern.BitWidth{
		"8":      pattern.Width8,
		"16-bit": pattern.Width16,
		" 32 ":   pattern.Width32,
	} {
		got, err := pattern.ParseBitWidth(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := pattern.ParseBitWidth("24")
	require.ErrorIs(t, err, pattern.ErrInvalidConfigValue)
	assert.Equal(t, "16-bit", pattern.Width16.String())
}

func TestConfigJSONUsesNames(t *testing.T) {
	cfg := pattern.DefaultConfig()
	cfg.Mode = pattern.ModeClock
	cfg.IOStandard = pattern.IOLVDS

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"mode":"Clock"`)
	assert.Contains(t, string(data), `"io_standard":"LVDS"`)

	var back pattern.Config
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, cfg, back)
}
