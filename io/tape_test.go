package io

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{
		Input: strings.NewReader("5, -3\n42\t7,,8"),
	}

	var values []int64
	for value := range tape.Receive() {
		values = append(values, value)
	}
	assert.NoError(tape.Err())
	assert.Equal([]int64{5, -3, 42, 7, 8}, values)

	// The tape does not rewind the reader.
	tape.Rewind()
	values = nil
	for value := range tape.Receive() {
		values = append(values, value)
	}
	assert.Nil(values)
}

func TestTape_Partial(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{
		Input: strings.NewReader("1 2 3"),
	}

	for value := range tape.Receive() {
		assert.Equal(int64(1), value)
		break
	}

	var values []int64
	for value := range tape.Receive() {
		values = append(values, value)
	}
	assert.Equal([]int64{2, 3}, values)
}

func TestTape_Error(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{
		Input: strings.NewReader("1 two 3"),
	}

	var values []int64
	for value := range tape.Receive() {
		values = append(values, value)
	}
	assert.Equal([]int64{1}, values)

	var parseErr *ErrParse
	assert.True(errors.As(tape.Err(), &parseErr))
	assert.Equal(1, parseErr.Index)
	assert.Equal("two", parseErr.Token)

	tape = &Tape{}
	for range tape.Receive() {
		t.Fatal("no input expected")
	}
	assert.ErrorIs(tape.Err(), ErrNoInput)
	assert.ErrorIs(tape.Send(1), ErrNoOutput)
}

func TestTape_Send(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tape := &Tape{Output: output}

	assert.NoError(tape.Send(139629729))
	assert.NoError(tape.Send(-1))
	assert.Equal("139629729\n-1\n", output.String())
}

func TestQueue(t *testing.T) {
	assert := assert.New(t)

	queue := &Queue{}
	assert.Equal(0, queue.Len())

	_, ok := queue.Next()
	assert.False(ok)

	assert.NoError(queue.Send(9))
	assert.NoError(queue.Send(0))
	assert.Equal(2, queue.Len())

	value, ok := queue.Next()
	assert.True(ok)
	assert.Equal(int64(9), value)

	assert.NoError(queue.Send(5))

	var values []int64
	for value := range queue.Receive() {
		values = append(values, value)
	}
	assert.Equal([]int64{0, 5}, values)
	assert.Equal(0, queue.Len())

	queue.Send(1)
	queue.Rewind()
	assert.Equal(0, queue.Len())
}
