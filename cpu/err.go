package cpu

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrImageEmpty     = errors.New(f("memory image empty"))
	ErrHalted         = errors.New(f("cpu halted"))
	ErrAddress        = errors.New(f("address out of range"))
	ErrInputExhausted = errors.New(f("input exhausted"))
	ErrOverflow       = errors.New(f("integer overflow"))

	// Instruction decode errors
	ErrOpcodeUnknown      = errors.New(f("opcode unknown"))
	ErrModeInvalid        = errors.New(f("parameter mode invalid"))
	ErrModeImmediateWrite = errors.New(f("immediate mode write target"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrEquateRecursive    = errors.New(f(".equ recursive"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrFault is a fatal run time fault, located at the instruction that
// raised it.
type ErrFault struct {
	Ip   int64 // Address of the faulting instruction.
	Word int64 // Raw instruction cell, if it could be fetched.
	Err  error
}

func (err *ErrFault) Error() string {
	return f("ip %d (%d) %v", err.Ip, err.Word, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

// ErrAccess records the offending address of a bounds fault.
type ErrAccess int64

func (ea ErrAccess) Error() string {
	return f("address %d out of range", int64(ea))
}

func (ea ErrAccess) Is(err error) bool {
	return err == ErrAddress
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
