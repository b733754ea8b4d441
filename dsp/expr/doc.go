// Package expr parses and evaluates the small expression language used to
// describe a pattern channel as a function of time.
//
// Input is case- and whitespace-insensitive and Unicode-normalised (NFKC);
// every "pi" is replaced by its numeric value before matching. Exactly one of
// the following forms is accepted:
//
//	sin(2*pi*t*<freq>)   0.5 * (1 + sin(2*pi*freq*t))
//	cos(2*pi*t*<freq>)   0.5 * (1 + cos(2*pi*freq*t))
//	t                    ramp from 0 to 1 over the pattern duration
//	<constant>           the constant itself
//
// The argument of sin and cos is not interpreted: the frequency used for the
// phase is passed to Eval, normally the value found by ExtractFrequency.
// It is a minimal grammar, not a general expression parser.
package expr
