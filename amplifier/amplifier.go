// Package amplifier chains copies of an intcode program into amplifier
// stages, each configured by a phase setting, and searches for the phase
// ordering that produces the strongest signal.
package amplifier

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/io"
)

// Chain is a set of amplifier stages running the same program.
type Chain struct {
	Verbose bool           // If set, logs the signal between stages.
	Log     *logrus.Logger // Log sink. Uses the logrus standard logger if nil.
	Image   []int64        // Program run by every stage.
	Set     cpu.CodeSet    // Instruction set of every stage.
}

// Result is the best signal found by a search, and the phases producing it.
type Result struct {
	Signal int64
	Phases []int64
}

func (chain *Chain) logger() *logrus.Logger {
	if chain.Log != nil {
		return chain.Log
	}
	return logrus.StandardLogger()
}

// stages creates one CPU per phase, each with its own copy of the image and
// an input queue primed with its phase setting.
func (chain *Chain) stages(phases []int64) (cpus []*cpu.Cpu, queues []io.Queue, err error) {
	if len(phases) == 0 {
		err = ErrNoPhases
		return
	}

	cpus = make([]*cpu.Cpu, len(phases))
	queues = make([]io.Queue, len(phases))
	for n, phase := range phases {
		cpus[n], err = cpu.NewCpu(chain.Image)
		if err != nil {
			err = &ErrStage{Stage: n, Phase: phase, Err: err}
			return
		}
		cpus[n].Set = chain.Set
		cpus[n].Log = chain.Log
		queues[n].Send(phase)
	}

	return
}

// Series runs each stage to completion in turn. Each stage reads its phase
// then the signal, starting from 0, and its first output is the signal for
// the next stage.
func (chain *Chain) Series(phases []int64) (signal int64, err error) {
	cpus, queues, err := chain.stages(phases)
	if err != nil {
		return
	}

	for n, stage := range cpus {
		queues[n].Send(signal)
		var outputs []int64
		_, outputs, err = stage.RunSeq(queues[n].Receive())
		if err == nil && len(outputs) == 0 {
			err = ErrNoSignal
		}
		if err != nil {
			err = &ErrStage{Stage: n, Phase: phases[n], Err: err}
			return
		}
		signal = outputs[0]
		if chain.Verbose {
			chain.logger().WithFields(logrus.Fields{"stage": n, "signal": signal}).Debug("amplifier: series")
		}
	}

	return
}

// Feedback runs the stages in a loop, where the output of the last stage
// feeds the first. Stages run in turn, one output at a time, until every
// stage has halted. A stage waiting on input is retried on the next round.
// The last signal output by the final stage is returned.
func (chain *Chain) Feedback(phases []int64) (signal int64, err error) {
	cpus, queues, err := chain.stages(phases)
	if err != nil {
		return
	}

	queues[0].Send(0)

	last := len(cpus) - 1
	seen := false
	for {
		running := 0
		progress := false
		var stalled error
		for n, stage := range cpus {
			if stage.Halted() {
				continue
			}
			running++
			value, halted, rerr := stage.Resume(queues[n].Next)
			if errors.Is(rerr, cpu.ErrInputExhausted) {
				if stalled == nil {
					stalled = &ErrStage{Stage: n, Phase: phases[n], Err: rerr}
				}
				continue
			}
			if rerr != nil {
				err = &ErrStage{Stage: n, Phase: phases[n], Err: rerr}
				return
			}
			progress = true
			if halted {
				continue
			}
			queues[(n+1)%len(cpus)].Send(value)
			if n == last {
				signal = value
				seen = true
				if chain.Verbose {
					chain.logger().WithField("signal", signal).Debug("amplifier: feedback")
				}
			}
		}
		if running == 0 {
			break
		}
		if !progress {
			err = stalled
			return
		}
	}

	if !seen {
		err = &ErrStage{Stage: last, Phase: phases[last], Err: ErrNoSignal}
	}

	return
}

// maximize runs every ordering of phases and keeps the strongest signal.
func (chain *Chain) maximize(phases []int64, run func([]int64) (int64, error)) (best Result, err error) {
	if len(phases) == 0 {
		err = ErrNoPhases
		return
	}

	found := false
	for perm := range internal.Permutations(phases) {
		var signal int64
		signal, err = run(perm)
		if err != nil {
			return
		}
		if !found || signal > best.Signal {
			best = Result{Signal: signal, Phases: perm}
			found = true
		}
	}

	return
}

// MaxSeries finds the phase ordering with the strongest series signal.
func (chain *Chain) MaxSeries(phases []int64) (best Result, err error) {
	return chain.maximize(phases, chain.Series)
}

// MaxFeedback finds the phase ordering with the strongest feedback signal.
func (chain *Chain) MaxFeedback(phases []int64) (best Result, err error) {
	return chain.maximize(phases, chain.Feedback)
}
