// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives an intcode machine from a program listing,
// feeding it input from a tape and writing its output back to the tape.
package emulator

import (
	"errors"
	"iter"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
)

// Emulator state. CPU + program listing + tape IO.
type Emulator struct {
	Verbose  bool           // If set, enables verbose logging.
	*cpu.Cpu                // Reference to the CPU simulation.
	Program  *cpu.Program   // Reference to the currently running program listing.
	Set      cpu.CodeSet    // Instruction set for the CPU.
	Log      *logrus.Logger // Log sink. Uses the logrus standard logger if nil.

	Tape    io.Tape    // Tape IO channel.
	Outputs []int64    // Values output since the last reset.
	Patches [][2]int64 // Address and value pairs applied at reset.

	next func() (int64, bool)
	stop func()
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
	}

	return
}

func (emu *Emulator) logger() *logrus.Logger {
	if emu.Log != nil {
		return emu.Log
	}
	return logrus.StandardLogger()
}

// Close the emulator, releasing the tape input.
func (emu *Emulator) Close() (err error) {
	if emu.stop != nil {
		emu.stop()
		emu.stop = nil
		emu.next = nil
	}

	return
}

// Reset the emulator: load a fresh CPU from the program image, apply
// patches, and restart tape input.
func (emu *Emulator) Reset() (err error) {
	emu.Close()

	rom := io.Rom{Data: emu.Program.Image()}
	image, err := rom.Patch(emu.Patches...)
	if err != nil {
		return
	}

	emu.Cpu, err = cpu.NewCpu(image)
	if err != nil {
		return
	}

	emu.Cpu.Set = emu.Set
	emu.Cpu.Log = emu.Log
	emu.Outputs = nil

	emu.Tape.Rewind()
	if emu.Tape.Input != nil {
		emu.next, emu.stop = iter.Pull(emu.Tape.Receive())
	}

	if emu.Verbose {
		emu.logger().WithFields(logrus.Fields{
			"size":    len(image),
			"set":     emu.Set.String(),
			"patches": len(emu.Patches),
		}).Debug("emulator: reset")
	}

	return
}

// input supplies the CPU from the tape.
func (emu *Emulator) input() (value int64, ok bool) {
	if emu.next == nil {
		return
	}
	return emu.next()
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	if emu.Cpu == nil {
		return 0
	}
	return emu.Cpu.Ticks
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	if emu.Cpu == nil {
		return 0
	}

	dbg := emu.Program.Debug(int(emu.Cpu.Ip))
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Cpu == nil {
		err = ErrNotReset
		return
	}

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	outcome, err := emu.Cpu.Step(emu.input)
	if err != nil {
		if errors.Is(err, cpu.ErrInputExhausted) && emu.Tape.Err() != nil {
			err = errors.Join(err, emu.Tape.Err())
		}
		return
	}

	switch outcome.Kind {
	case cpu.OUTCOME_OUTPUT:
		emu.Outputs = append(emu.Outputs, outcome.Value)
		if emu.Tape.Output != nil {
			err = emu.Tape.Send(outcome.Value)
		}
	case cpu.OUTCOME_HALT:
		done = true
		emu.Close()
	}

	return
}

// Run ticks the emulator until the program halts or faults.
func (emu *Emulator) Run() (err error) {
	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			return err
		}
	}

	return
}
