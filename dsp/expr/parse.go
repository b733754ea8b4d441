package expr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/cwbudde/algo-patgen/dsp/core"
)

var (
	// ErrEmptyExpression is returned for blank expression text.
	ErrEmptyExpression = errors.New("expression must not be empty")
	// ErrInvalidExpression is returned for text outside the grammar.
	ErrInvalidExpression = errors.New("invalid expression")
)

// SyntaxError reports expression text that does not match the grammar.
type SyntaxError struct {
	// Text is the expression as given by the caller.
	Text string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid expression %q: use sin(2*pi*t*freq), cos(2*pi*t*freq), t, or a constant", e.Text)
}

// Unwrap lets errors.Is match ErrInvalidExpression.
func (e *SyntaxError) Unwrap() error {
	return ErrInvalidExpression
}

// Kind identifies the form of a parsed expression.
type Kind int

const (
	KindSine Kind = iota + 1
	KindCosine
	KindRamp
	KindConstant
)

func (k Kind) String() string {
	switch k {
	case KindSine:
		return "sin"
	case KindCosine:
		return "cos"
	case KindRamp:
		return "ramp"
	case KindConstant:
		return "constant"
	default:
		return "unknown"
	}
}

var piText = strconv.FormatFloat(math.Pi, 'g', -1, 64)

// Expr is a parsed expression.
type Expr struct {
	kind  Kind
	value float64
	text  string
}

// Kind returns the expression form.
func (e Expr) Kind() Kind { return e.kind }

// Text returns the normalised expression text.
func (e Expr) Text() string { return e.text }

// Value returns the constant of a KindConstant expression and 0 otherwise.
func (e Expr) Value() float64 { return e.value }

// IsBlank reports whether text is empty once whitespace is ignored.
func IsBlank(text string) bool {
	return strings.TrimFunc(text, unicode.IsSpace) == ""
}

// compact applies NFKC, lowercases and drops all whitespace.
func compact(text string) string {
	text = strings.ToLower(norm.NFKC.String(text))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

// Normalize returns text in the canonical form matched by Parse.
func Normalize(text string) string {
	return strings.ReplaceAll(compact(text), "pi", piText)
}

// Parse parses text into an Expr.
func Parse(text string) (Expr, error) {
	if IsBlank(text) {
		return Expr{}, ErrEmptyExpression
	}

	s := Normalize(text)
	switch {
	case isCall(s, "sin"):
		return Expr{kind: KindSine, text: s}, nil
	case isCall(s, "cos"):
		return Expr{kind: KindCosine, text: s}, nil
	case s == "t":
		return Expr{kind: KindRamp, text: s}, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !core.IsFinite(v) {
		return Expr{}, &SyntaxError{Text: text}
	}
	return Expr{kind: KindConstant, value: v, text: s}, nil
}

// isCall matches name(<non-empty argument>).
func isCall(s, name string) bool {
	prefix := name + "("
	return len(s) > len(prefix)+1 && strings.HasPrefix(s, prefix) && strings.HasSuffix(s, ")")
}

// ExtractFrequency returns the frequency multiplier embedded in text as
// "*t*<number>". Whitespace is ignored; the segment following the first
// "*t*" (up to a second "*t*", if any) has its closing parentheses removed
// and is parsed as a float. Zero and negative values are returned as is.
// It returns 1.0 when no finite multiplier can be parsed.
func ExtractFrequency(text string) float64 {
	const fallback = 1.0

	s := compact(text)
	parts := strings.Split(s, "*t*")
	if len(parts) < 2 || parts[1] == "" {
		return fallback
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(parts[1], ")", ""), 64)
	if err != nil || !core.IsFinite(v) {
		return fallback
	}
	return v
}
