// Package render formats engines, generation results and measurements as
// terminal text. Colour is applied with lipgloss and can be disabled, in
// which case the output is plain and stable enough for golden files.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-patgen/measure/pulse"
	"github.com/cwbudde/algo-patgen/pattern"
)

// Waveform glyphs.
const (
	HighGlyph = "‾"
	LowGlyph  = "_"
)

// Theme holds the styles of a coloured rendering.
type Theme struct {
	High    lipgloss.Style
	Low     lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
}

// DefaultTheme is a minimal palette: bright highs, dim lows.
func DefaultTheme() Theme {
	return Theme{
		High:    lipgloss.NewStyle().Foreground(lipgloss.Color("#fff")).Bold(true),
		Low:     lipgloss.NewStyle().Foreground(lipgloss.Color("#555")),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#888")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd75f")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaf00")).Bold(true),
	}
}

// Renderer turns patterns into text.
type Renderer struct {
	color bool
	theme Theme
}

// New returns a Renderer. With color false no escape sequences are emitted.
func New(color bool) *Renderer {
	return &Renderer{color: color, theme: DefaultTheme()}
}

// WithTheme returns a copy of r using t.
func (r *Renderer) WithTheme(t Theme) *Renderer {
	c := *r
	c.theme = t
	return &c
}

func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}

func channelLabel(ch int) string {
	return fmt.Sprintf("CH%-2d ", ch)
}

const labelWidth = 5

// Header describes the engine configuration, one field per line.
func (r *Renderer) Header(e *pattern.Engine) string {
	cfg := e.Config()

	var b strings.Builder
	field := func(name, value string) {
		b.WriteString(r.paint(r.theme.Label, fmt.Sprintf("%-14s", name+":")))
		b.WriteString(" ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	field("Mode", cfg.Mode.String())
	field("I/O standard", cfg.IOStandard.Description())
	field("Sample rate", number(cfg.SampleRateMHz)+" MHz")
	field("Shape", fmt.Sprintf("%s x %s (%s)",
		plural(e.Channels(), "channel"), plural(e.Steps(), "step"), cfg.MaxChannels))
	switch {
	case cfg.Mode.Periodic():
		field("Frequency", number(cfg.TargetFrequencyHz)+" Hz")
		field("Duty cycle", number(cfg.DutyCycle)+" %")
	case cfg.Mode == pattern.ModeExpression:
		field("Expression", cfg.Expression)
	}
	field("Time per step", fmt.Sprintf("%.2f ns", e.StepDuration()))
	return b.String()
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// Grid renders the cells as 0/1 digits, one channel per line, under a
// step index ruler (index mod 10).
func (r *Renderer) Grid(e *pattern.Engine) string {
	var b strings.Builder

	ruler := make([]string, e.Steps())
	for s := range ruler {
		ruler[s] = strconv.Itoa(s % 10)
	}
	b.WriteString(strings.Repeat(" ", labelWidth))
	b.WriteString(r.paint(r.theme.Muted, strings.Join(ruler, " ")))
	b.WriteString("\n")

	for ch, row := range e.Cells() {
		b.WriteString(r.paint(r.theme.Label, channelLabel(ch)))
		for s, v := range row {
			if s > 0 {
				b.WriteString(" ")
			}
			if v == 1 {
				b.WriteString(r.paint(r.theme.High, "1"))
			} else {
				b.WriteString(r.paint(r.theme.Low, "0"))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Waveform renders each channel as a line of high and low glyphs.
func (r *Renderer) Waveform(e *pattern.Engine) string {
	var b strings.Builder
	for ch, row := range e.Cells() {
		b.WriteString(r.paint(r.theme.Label, channelLabel(ch)))
		var line strings.Builder
		for _, v := range row {
			if v == 1 {
				line.WriteString(HighGlyph)
			} else {
				line.WriteString(LowGlyph)
			}
		}
		b.WriteString(r.paint(r.theme.High, line.String()))
		b.WriteString("\n")
	}
	return b.String()
}

// Status renders a generation result; warnings are highlighted.
func (r *Renderer) Status(res pattern.Result) string {
	switch {
	case res.Warning:
		return r.paint(r.theme.Warning, res.Status)
	case res.Mode == pattern.ModeManual:
		return r.paint(r.theme.Muted, res.Status)
	default:
		return r.paint(r.theme.Success, res.Status)
	}
}

// Measurements writes one table row per channel.
func (r *Renderer) Measurements(w io.Writer, ms []pulse.Measurement) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Channel\tDuty [%%]\tEdges\tLongest High\tLongest Low\tDominant [Hz]\tTarget [Hz]\tTarget Power\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-------\t--------\t-----\t------------\t-----------\t-------------\t-----------\t------------\n"); err != nil {
		return err
	}
	for _, m := range ms {
		target, power := "-", "-"
		if m.TargetHz > 0 {
			target = fmt.Sprintf("%.0f", m.TargetHz)
			power = fmt.Sprintf("%.2f", m.TargetPower)
		}
		if _, err := fmt.Fprintf(tw, "%d\t%.1f\t%d\t%d\t%d\t%.0f\t%s\t%s\n",
			m.Channel,
			m.DutyCycle,
			m.Transitions,
			m.LongestHigh,
			m.LongestLow,
			m.DominantHz,
			target,
			power,
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Standards writes the I/O standards with their voltage levels.
func (r *Renderer) Standards(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Standard\tLow [V]\tHigh [V]\tDescription\n"); err != nil {
		return err
	}
	for _, std := range pattern.IOStandards() {
		lv := std.Levels()
		low, high := fmt.Sprintf("%.1f", lv.LowV), formatHigh(lv)
		if lv.Differential {
			low = "-"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", std, low, high, std.Description()); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func formatHigh(lv pattern.VoltageLevels) string {
	switch {
	case lv.Differential:
		return fmt.Sprintf("%.1f cm", lv.CommonModeV)
	case lv.HighMinV != lv.HighMaxV:
		return fmt.Sprintf("%.1f-%.1f", lv.HighMinV, lv.HighMaxV)
	default:
		return fmt.Sprintf("%.1f", lv.HighMaxV)
	}
}
