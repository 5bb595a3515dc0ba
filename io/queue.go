package io

import (
	"iter"
)

// Queue is an unbounded in-memory FIFO of values.
type Queue struct {
	Data []int64
}

var _ Channel = (*Queue)(nil)

// Rewind empties the queue.
func (qc *Queue) Rewind() {
	qc.Data = nil
}

// Len returns the number of queued values.
func (qc *Queue) Len() int {
	return len(qc.Data)
}

// Next removes and returns the oldest value.
// Its signature matches cpu.Input.
func (qc *Queue) Next() (value int64, ok bool) {
	if len(qc.Data) == 0 {
		return
	}

	value = qc.Data[0]
	qc.Data = qc.Data[1:]
	ok = true
	return
}

// Receive yields, and removes, values until the queue is empty.
func (qc *Queue) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		for {
			value, ok := qc.Next()
			if !ok || !yield(value) {
				return
			}
		}
	}
}

// Send appends a value.
func (qc *Queue) Send(value int64) (err error) {
	qc.Data = append(qc.Data, value)
	return
}
