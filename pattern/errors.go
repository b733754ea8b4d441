package pattern

import (
	"errors"

	"github.com/cwbudde/algo-patgen/dsp/buffer"
	"github.com/cwbudde/algo-patgen/dsp/expr"
)

var (
	// ErrInvalidDimension reports a non-positive channel or step count.
	ErrInvalidDimension = buffer.ErrInvalidDimension
	// ErrInvalidConfigValue reports a configuration value outside its domain.
	ErrInvalidConfigValue = errors.New("invalid configuration value")
	// ErrNyquistViolation reports a target frequency above half the sample rate.
	ErrNyquistViolation = errors.New("frequency exceeds Nyquist limit")
	// ErrEmptyExpression reports blank expression text in Expression mode.
	ErrEmptyExpression = expr.ErrEmptyExpression
	// ErrInvalidExpression reports expression text outside the grammar.
	ErrInvalidExpression = expr.ErrInvalidExpression
	// ErrNonBinaryValue reports a cell value other than 0 or 1 where strict
	// input is required (restored state, manual edits from text).
	ErrNonBinaryValue = errors.New("cell value must be 0 or 1")
)
