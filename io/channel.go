// Package io provides the integer channels and memory image codecs used to
// feed and observe intcode machines.
//
// Channels carry whole signed integers: Tape adapts an io.Reader and
// io.Writer to decimal text, Queue is an in-memory FIFO for wiring machines
// together, and Rom holds a loaded memory image.
package io

import (
	"iter"
)

// Channel defines the interface for all integer channels.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns an iterator that yields values from the channel.
	Receive() iter.Seq[int64]
	// Send writes a single value to the channel.
	Send(value int64) error
}
