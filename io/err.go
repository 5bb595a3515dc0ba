package io

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull = errors.New(f("channel full"))
	ErrNoInput     = errors.New(f("tape has no input"))
	ErrNoOutput    = errors.New(f("tape has no output"))

	// Image errors
	ErrImageEmpty = errors.New(f("memory image empty"))
	ErrAddress    = errors.New(f("address out of range"))
)

// ErrParse is a token that is not a decimal integer.
type ErrParse struct {
	Index int    // Index of the token.
	Token string // Offending text.
}

func (err *ErrParse) Error() string {
	return f("value %d '%v' is not a number", err.Index, err.Token)
}
