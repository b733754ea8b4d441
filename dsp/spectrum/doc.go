// Package spectrum provides spectrum-domain helpers for analysing generated
// patterns: power and magnitude of FFT bins, peak-bin search, and a Goertzel
// single-frequency detector that accepts logic levels directly.
//
// The package does not implement an FFT itself; bins come from algo-fft.
package spectrum
