package cpu

import (
	"fmt"
	"strings"
)

// CodeOp is an instruction operation.
type CodeOp int

const (
	OP_ADD  = CodeOp(1)  // add
	OP_MUL  = CodeOp(2)  // mul
	OP_IN   = CodeOp(3)  // in
	OP_OUT  = CodeOp(4)  // out
	OP_JNZ  = CodeOp(5)  // jnz
	OP_JZ   = CodeOp(6)  // jz
	OP_LT   = CodeOp(7)  // lt
	OP_EQ   = CodeOp(8)  // eq
	OP_HALT = CodeOp(99) // halt
)

// opInfo describes the operand layout of an operation.
type opInfo struct {
	name   string
	params int
	write  int // 1-based index of the write target parameter, 0 if none.
}

var _op_info = map[CodeOp]opInfo{
	OP_ADD:  {"add", 3, 3},
	OP_MUL:  {"mul", 3, 3},
	OP_IN:   {"in", 1, 1},
	OP_OUT:  {"out", 1, 0},
	OP_JNZ:  {"jnz", 2, 0},
	OP_JZ:   {"jz", 2, 0},
	OP_LT:   {"lt", 3, 3},
	OP_EQ:   {"eq", 3, 3},
	OP_HALT: {"halt", 0, 0},
}

// String returns the mnemonic of the operation.
func (op CodeOp) String() string {
	info, ok := _op_info[op]
	if !ok {
		return fmt.Sprintf("op(%d)", int(op))
	}
	return info.name
}

// Params returns the number of parameters that follow the operation.
func (op CodeOp) Params() int {
	return _op_info[op].params
}

// Writes returns the 1-based index of the parameter written by the
// operation, or 0 if the operation writes no memory.
func (op CodeOp) Writes() int {
	return _op_info[op].write
}

// Width returns the number of memory cells used by the instruction.
func (op CodeOp) Width() int {
	return 1 + op.Params()
}

// CodeMode is a parameter mode.
type CodeMode int

const (
	MODE_POSITION  = CodeMode(0) // pos
	MODE_IMMEDIATE = CodeMode(1) // imm
)

func (mode CodeMode) String() string {
	switch mode {
	case MODE_POSITION:
		return "pos"
	case MODE_IMMEDIATE:
		return "imm"
	}
	return fmt.Sprintf("mode(%d)", int(mode))
}

// CodeSet selects the instruction set understood by the decoder.
type CodeSet int

const (
	SET_FULL  = CodeSet(0) // full
	SET_BASIC = CodeSet(1) // basic
)

func (set CodeSet) String() string {
	switch set {
	case SET_FULL:
		return "full"
	case SET_BASIC:
		return "basic"
	}
	return fmt.Sprintf("set(%d)", int(set))
}

// Has returns true if the operation is part of the instruction set.
func (set CodeSet) Has(op CodeOp) bool {
	switch set {
	case SET_BASIC:
		return op == OP_ADD || op == OP_MUL || op == OP_HALT
	case SET_FULL:
		_, ok := _op_info[op]
		return ok
	}
	return false
}

// Decode splits an instruction cell into its operation and parameter modes.
func (set CodeSet) Decode(word int64) (code Code, err error) {
	code.Word = word

	if set == SET_BASIC {
		// No parameter modes; the whole cell is the operation.
		code.Op = CodeOp(word)
	} else {
		code.Op = CodeOp(word % 100)
		scale := int64(100)
		for n := range code.Modes {
			mode := CodeMode((word / scale) % 10)
			if mode != MODE_POSITION && mode != MODE_IMMEDIATE {
				err = ErrModeInvalid
				return
			}
			code.Modes[n] = mode
			scale *= 10
		}
	}

	if !set.Has(code.Op) {
		err = ErrOpcodeUnknown
		return
	}

	return
}

// Decode decodes an instruction cell using the full instruction set.
func Decode(word int64) (code Code, err error) {
	return SET_FULL.Decode(word)
}

// Code is a decoded instruction cell.
type Code struct {
	Word  int64       // Raw cell value.
	Op    CodeOp      // Operation.
	Modes [3]CodeMode // Parameter modes, in parameter order.
}

// MakeCode creates an instruction from an operation and parameter modes.
// Missing modes are position mode.
func MakeCode(op CodeOp, modes ...CodeMode) Code {
	code := Code{Op: op}
	word := int64(op)
	scale := int64(100)
	for n, mode := range modes {
		code.Modes[n] = mode
		word += int64(mode) * scale
		scale *= 10
	}
	code.Word = word
	return code
}

// Format renders the instruction with its raw parameters in assembler syntax.
func (code Code) Format(params ...int64) string {
	words := []string{code.Op.String()}
	for n, param := range params {
		if code.Modes[n] == MODE_IMMEDIATE {
			words = append(words, fmt.Sprintf("#%d", param))
		} else {
			words = append(words, fmt.Sprintf("%d", param))
		}
	}
	return strings.Join(words, " ")
}

// String returns the operation and the modes of its parameters.
func (code Code) String() string {
	str := code.Op.String()
	for _, mode := range code.Modes[:code.Op.Params()] {
		str += "." + mode.String()
	}
	return str
}
