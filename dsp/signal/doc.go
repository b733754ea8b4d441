// Package signal generates the periodic 0/1 sequences that digital test
// patterns are built from: duty-cycle pulse trains for PWM and clock lines,
// and the PRBS7 maximal-length sequence.
package signal
