// Package pulse measures generated pattern channels.
//
// Each channel is summarised by its logic statistics (duty cycle, edges,
// run lengths), the dominant frequency found by an FFT of the bipolar,
// mean-removed channel, and the Goertzel power at the frequency the pattern
// was generated for.
package pulse
