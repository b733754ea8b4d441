// Package patfile reads and writes pattern files.
//
// A file starts with the magic "PATG" and a format version byte, followed by
// big-endian fields:
//
//	int32   max channels (bit width)
//	int32   channels
//	int32   steps
//	float64 sample rate in MHz
//	string  I/O standard name
//	string  mode name
//	float64 duty cycle in percent
//	float64 target frequency in Hz
//	string  expression
//	[channels*steps]byte cells, channel-major
//
// Strings are a uint16 byte length followed by UTF-8 bytes.
package patfile
