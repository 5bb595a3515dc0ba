package io

import (
	"io"
	"iter"
	"slices"
)

// Rom is a read-only memory image, loaded once and copied for each run.
type Rom struct {
	Data []int64
}

var _ Channel = (*Rom)(nil)

// Load replaces the image with one parsed from a reader.
func (rc *Rom) Load(r io.Reader) (err error) {
	data, err := ParseImage(r)
	if err != nil {
		return
	}

	rc.Data = data
	return
}

// Image returns a fresh copy of the memory image.
func (rc *Rom) Image() []int64 {
	return slices.Clone(rc.Data)
}

// Patch returns a copy of the memory image with cells replaced, given as
// address and value pairs.
func (rc *Rom) Patch(patches ...[2]int64) (image []int64, err error) {
	image = rc.Image()
	for _, patch := range patches {
		addr, value := patch[0], patch[1]
		if addr < 0 || addr >= int64(len(image)) {
			image = nil
			err = ErrAddress
			return
		}
		image[addr] = value
	}

	return
}

// Rewind is a no-op, as a Rom has no position.
func (rc *Rom) Rewind() {
}

// Receive yields every cell of the image.
func (rc *Rom) Receive() iter.Seq[int64] {
	return slices.Values(rc.Data)
}

// Send fails, as a Rom is read-only.
func (rc *Rom) Send(value int64) error {
	return ErrChannelFull
}
