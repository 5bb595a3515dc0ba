// Package cpu implements the interpreter and assembler for intcode programs.
//
// An intcode machine has a single linear memory of signed 64-bit cells that
// holds both the program and its data, and an instruction pointer (IP) into
// that memory. Each instruction cell encodes an opcode in its two low decimal
// digits, and one parameter mode per operand in the hundreds, thousands and
// ten-thousands digits. Operands are either position mode (the parameter is
// an address) or immediate mode (the parameter is the value).
//
// A Cpu may be run to completion, or driven one burst at a time with Resume,
// stopping at each output value so that several machines can be chained into
// a feedback loop.
//
// The assembler provides a small textual language for intcode, supporting
// labels, equates, data words, and compile-time expression evaluation.
package cpu
