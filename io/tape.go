package io

import (
	"bufio"
	"io"
	"iter"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Tape provides sequential I/O of decimal integers.
// It wraps an io.Reader for input, where values are separated by commas or
// whitespace, and an io.Writer for output, where each value is written on
// its own line.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	scanner *bufio.Scanner
	count   int
	err     error
}

var _ Channel = (*Tape)(nil)

// isSeparator reports whether r separates tape values.
func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// scanValues is a bufio.SplitFunc for separated tokens.
func scanValues(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) {
		r, width := utf8.DecodeRune(data[start:])
		if !isSeparator(r) {
			break
		}
		start += width
	}

	for n := start; n < len(data); {
		r, width := utf8.DecodeRune(data[n:])
		if isSeparator(r) {
			return n + width, data[start:n], nil
		}
		n += width
	}

	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}

	return start, nil, nil
}

// Rewind discards any buffered input and errors.
// The underlying reader is not rewound, as that is not possible on a tape.
func (tc *Tape) Rewind() {
	tc.scanner = nil
	tc.count = 0
	tc.err = nil
}

// Err returns the first error encountered while receiving.
func (tc *Tape) Err() error {
	return tc.err
}

// Receive returns an iterator that yields values from the input stream,
// reading as needed. The iterator stops at end of input, or at the first
// error, which is then available from Err.
func (tc *Tape) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		if tc.Input == nil {
			tc.err = ErrNoInput
			return
		}
		if tc.scanner == nil {
			tc.scanner = bufio.NewScanner(tc.Input)
			tc.scanner.Split(scanValues)
		}
		for tc.err == nil && tc.scanner.Scan() {
			token := tc.scanner.Text()
			value, err := strconv.ParseInt(token, 10, 64)
			if err != nil {
				tc.err = &ErrParse{Index: tc.count, Token: token}
				return
			}
			tc.count++
			if !yield(value) {
				return
			}
		}
		if tc.err == nil {
			tc.err = tc.scanner.Err()
		}
	}
}

// Send writes a value to the output stream, on its own line.
func (tc *Tape) Send(value int64) (err error) {
	if tc.Output == nil {
		err = ErrNoOutput
		return
	}

	_, err = io.WriteString(tc.Output, strconv.FormatInt(value, 10)+"\n")

	return
}
