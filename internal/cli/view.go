package cli

import (
	"strings"

	"github.com/cwbudde/algo-patgen/internal/render"
	"github.com/cwbudde/algo-patgen/pattern"
)

// patternView is the JSON form of an engine. Cells are ints so they
// encode as arrays rather than base64.
type patternView struct {
	Config         pattern.Config `json:"config"`
	Channels       int            `json:"channels"`
	Steps          int            `json:"steps"`
	StepDurationNS float64        `json:"step_duration_ns"`
	Cells          [][]int        `json:"cells"`
	// CanGenerate is false when Generate would leave the grid as is.
	CanGenerate    bool           `json:"can_generate"`
}

func newPatternView(e *pattern.Engine) patternView {
	rows := e.Cells()
	cells := make([][]int, len(rows))
	for ch, row := range rows {
		cells[ch] = make([]int, len(row))
		for s, v := range row {
			cells[ch][s] = int(v)
		}
	}
	return patternView{
		Config:         e.Config(),
		Channels:       e.Channels(),
		Steps:          e.Steps(),
		StepDurationNS: e.StepDuration(),
		Cells:          cells,
		CanGenerate:    e.CanGenerate(),
	}
}

type resultView struct {
	Mode                pattern.Mode `json:"mode"`
	Status              string       `json:"status"`
	Warning             bool         `json:"warning"`
	StepsPerCycle       int          `json:"steps_per_cycle,omitempty"`
	HighSteps           int          `json:"high_steps,omitempty"`
	FrequencyHz         float64      `json:"frequency_hz,omitempty"`
	Adjusted            bool         `json:"adjusted"`
	AdjustedFrequencyHz float64      `json:"adjusted_frequency_hz,omitempty"`
}

func newResultView(r pattern.Result) resultView {
	return resultView{
		Mode:                r.Mode,
		Status:              r.Status,
		Warning:             r.Warning,
		StepsPerCycle:       r.StepsPerCycle,
		HighSteps:           r.HighSteps,
		FrequencyHz:         r.FrequencyHz,
		Adjusted:            r.Adjusted,
		AdjustedFrequencyHz: r.AdjustedFrequencyHz,
	}
}

// patternText is the text rendering shared by generate, show and set.
func patternText(r *render.Renderer, e *pattern.Engine) string {
	var b strings.Builder
	b.WriteString(r.Header(e))
	b.WriteString("\n")
	b.WriteString(r.Grid(e))
	b.WriteString("\n")
	b.WriteString(r.Waveform(e))
	return b.String()
}
