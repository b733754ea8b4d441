// Package buffer provides the channel x step grid of logic levels that
// holds a digital test pattern. Every cell is exactly 0 or 1 and the grid
// shape always matches its channel and step counts; reshaping preserves the
// overlapping rectangle and zeroes everything else.
//
// A Grid is not safe for concurrent use.
package buffer
