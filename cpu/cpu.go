// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/sirupsen/logrus"
)

// Input supplies the next input value, or false when none remain.
// It has the shape of the next function returned by iter.Pull.
type Input func() (value int64, ok bool)

// NoInput is an Input that is always exhausted.
func NoInput() (value int64, ok bool) {
	return
}

// OutcomeKind classifies the result of a single step.
type OutcomeKind int

const (
	OUTCOME_CONTINUE = OutcomeKind(0) // continue
	OUTCOME_OUTPUT   = OutcomeKind(1) // output
	OUTCOME_HALT     = OutcomeKind(2) // halt
)

func (kind OutcomeKind) String() string {
	switch kind {
	case OUTCOME_CONTINUE:
		return "continue"
	case OUTCOME_OUTPUT:
		return "output"
	case OUTCOME_HALT:
		return "halt"
	}
	return fmt.Sprintf("outcome(%d)", int(kind))
}

// Outcome is the result of a single step.
type Outcome struct {
	Kind  OutcomeKind
	Value int64 // Output value, valid for OUTCOME_OUTPUT.
}

// Cpu is the simulation context for a single intcode machine.
type Cpu struct {
	Verbose bool           // Set to enable per-step trace logging.
	Log     *logrus.Logger // Trace sink. Uses the logrus standard logger if nil.
	Set     CodeSet        // Instruction set to decode.

	Ip    int64 // Current instruction pointer.
	Ticks int   // Executed instruction counter.

	memory []int64
	halted bool
}

// NewCpu creates a new CPU with a private copy of the memory image.
func NewCpu(image []int64) (cpu *Cpu, err error) {
	if len(image) == 0 {
		err = ErrImageEmpty
		return
	}

	cpu = &Cpu{
		memory: slices.Clone(image),
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() string {
	state := "running"
	if cpu.halted {
		state = "halted"
	}
	return fmt.Sprintf("ip: %d ticks: %d size: %d %v", cpu.Ip, cpu.Ticks, len(cpu.memory), state)
}

// Memory returns a copy of the current memory.
func (cpu *Cpu) Memory() []int64 {
	return slices.Clone(cpu.memory)
}

// Len returns the size of memory, in cells.
func (cpu *Cpu) Len() int {
	return len(cpu.memory)
}

// Halted returns true once the halt instruction has executed.
func (cpu *Cpu) Halted() bool {
	return cpu.halted
}

// Peek reads a memory cell.
func (cpu *Cpu) Peek(addr int64) (value int64, err error) {
	return cpu.load(addr)
}

// Poke writes a memory cell, typically to inject parameters before a run.
func (cpu *Cpu) Poke(addr int64, value int64) (err error) {
	return cpu.store(addr, value)
}

func (cpu *Cpu) logger() *logrus.Logger {
	if cpu.Log != nil {
		return cpu.Log
	}
	return logrus.StandardLogger()
}

func (cpu *Cpu) load(addr int64) (value int64, err error) {
	if addr < 0 || addr >= int64(len(cpu.memory)) {
		err = ErrAccess(addr)
		return
	}
	value = cpu.memory[addr]
	return
}

func (cpu *Cpu) store(addr int64, value int64) (err error) {
	if addr < 0 || addr >= int64(len(cpu.memory)) {
		err = ErrAccess(addr)
		return
	}
	cpu.memory[addr] = value
	return
}

// param returns the raw parameter n (1-based) of the current instruction.
func (cpu *Cpu) param(n int) (int64, error) {
	return cpu.load(cpu.Ip + int64(n))
}

// getValue resolves parameter n as an operand value.
func (cpu *Cpu) getValue(code Code, n int) (value int64, err error) {
	value, err = cpu.param(n)
	if err != nil {
		return
	}

	if code.Modes[n-1] == MODE_POSITION {
		value, err = cpu.load(value)
	}

	return
}

// getTarget resolves parameter n as a write address.
func (cpu *Cpu) getTarget(code Code, n int) (addr int64, err error) {
	if code.Modes[n-1] != MODE_POSITION {
		err = ErrModeImmediateWrite
		return
	}

	return cpu.param(n)
}

// FetchCode fetches and decodes the instruction at the IP.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	word, err := cpu.load(cpu.Ip)
	if err != nil {
		return
	}

	code, err = cpu.Set.Decode(word)

	return
}

// Step executes a single instruction.
//
// The machine state is unchanged if a fault is returned.
func (cpu *Cpu) Step(input Input) (outcome Outcome, err error) {
	if cpu.halted {
		err = ErrHalted
		return
	}

	ip := cpu.Ip
	code, err := cpu.FetchCode()
	defer func() {
		if err != nil {
			err = &ErrFault{Ip: ip, Word: code.Word, Err: err}
		}
	}()
	if err != nil {
		return
	}

	if cpu.Verbose {
		cpu.logger().WithFields(logrus.Fields{
			"ip":   ip,
			"code": code.String(),
		}).Debug("cpu: step")
	}

	next_ip := ip + int64(code.Op.Width())

	switch code.Op {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		var a, b, dst int64
		a, err = cpu.getValue(code, 1)
		if err != nil {
			return
		}
		b, err = cpu.getValue(code, 2)
		if err != nil {
			return
		}
		dst, err = cpu.getTarget(code, 3)
		if err != nil {
			return
		}
		var output int64
		output, err = doAlu(code.Op, a, b)
		if err != nil {
			return
		}
		err = cpu.store(dst, output)
		if err != nil {
			return
		}
		if cpu.Verbose {
			cpu.logger().WithFields(logrus.Fields{"addr": dst, "value": output}).Debug("cpu: store")
		}
	case OP_IN:
		var dst int64
		dst, err = cpu.getTarget(code, 1)
		if err != nil {
			return
		}
		if dst < 0 || dst >= int64(len(cpu.memory)) {
			err = ErrAccess(dst)
			return
		}
		value, ok := input()
		if !ok {
			err = ErrInputExhausted
			return
		}
		cpu.memory[dst] = value
		if cpu.Verbose {
			cpu.logger().WithFields(logrus.Fields{"addr": dst, "value": value}).Debug("cpu: input")
		}
	case OP_OUT:
		var value int64
		value, err = cpu.getValue(code, 1)
		if err != nil {
			return
		}
		outcome = Outcome{Kind: OUTCOME_OUTPUT, Value: value}
		if cpu.Verbose {
			cpu.logger().WithField("value", value).Debug("cpu: output")
		}
	case OP_JNZ, OP_JZ:
		var cond, target int64
		cond, err = cpu.getValue(code, 1)
		if err != nil {
			return
		}
		target, err = cpu.getValue(code, 2)
		if err != nil {
			return
		}
		if (code.Op == OP_JNZ) == (cond != 0) {
			next_ip = target
		}
	case OP_HALT:
		cpu.halted = true
		cpu.Ticks++
		outcome = Outcome{Kind: OUTCOME_HALT}
		if cpu.Verbose {
			cpu.logger().WithField("ticks", cpu.Ticks).Debug("cpu: halt")
		}
		return
	default:
		err = ErrOpcodeUnknown
		return
	}

	cpu.Ip = next_ip
	cpu.Ticks++

	return
}

// doAlu performs an arithmetic or comparison operation.
// Signed overflow is a fault.
func doAlu(op CodeOp, a, b int64) (output int64, err error) {
	switch op {
	case OP_ADD:
		output = a + b
		if (a > 0 && b > 0 && output < 0) || (a < 0 && b < 0 && output >= 0) {
			err = ErrOverflow
		}
	case OP_MUL:
		output = a * b
		if a != 0 && (output/a != b || (a == -1 && b == math.MinInt64)) {
			err = ErrOverflow
		}
	case OP_LT:
		if a < b {
			output = 1
		}
	case OP_EQ:
		if a == b {
			output = 1
		}
	default:
		err = ErrOpcodeUnknown
	}

	return
}

// Resume runs until the next output value or a halt.
//
// The memory and IP are preserved between calls, so a machine can be
// driven in bursts, one output at a time.
func (cpu *Cpu) Resume(input Input) (value int64, halted bool, err error) {
	for {
		var outcome Outcome
		outcome, err = cpu.Step(input)
		if err != nil {
			return
		}
		switch outcome.Kind {
		case OUTCOME_OUTPUT:
			value = outcome.Value
			return
		case OUTCOME_HALT:
			halted = true
			return
		}
	}
}

// RunSeq runs to completion, drawing input lazily from a sequence.
// The memory and outputs at the time of the halt or fault are returned.
func (cpu *Cpu) RunSeq(inputs iter.Seq[int64]) (memory []int64, outputs []int64, err error) {
	next, stop := iter.Pull(inputs)
	defer stop()

	for {
		var value int64
		var halted bool
		value, halted, err = cpu.Resume(next)
		if err != nil || halted {
			break
		}
		outputs = append(outputs, value)
	}

	memory = cpu.Memory()

	return
}

// Run runs to completion with a fixed list of inputs.
func (cpu *Cpu) Run(inputs []int64) (memory []int64, outputs []int64, err error) {
	return cpu.RunSeq(slices.Values(inputs))
}
