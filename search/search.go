// Package search finds the parameters of an intcode program that produce a
// wanted result.
//
// The parameters, a noun and a verb, are injected into memory cells 1 and 2
// before the run, and the result is read back from cell 0 after the halt.
package search

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/io"
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrNotFound = errors.New(f("no noun and verb produce the target"))
)

const (
	ADDR_RESULT = 0 // Result cell.
	ADDR_NOUN   = 1 // Noun cell.
	ADDR_VERB   = 2 // Verb cell.

	DEFAULT_LIMIT = 99 // Default upper bound of nouns and verbs.
)

// Searcher runs a program with injected parameters.
type Searcher struct {
	Verbose bool           // If set, logs every attempt.
	Log     *logrus.Logger // Log sink. Uses the logrus standard logger if nil.
	Rom     io.Rom         // Program image.
	Set     cpu.CodeSet    // Instruction set.
	Limit   int64          // Upper bound of nouns and verbs, DEFAULT_LIMIT if zero.
}

func (sr *Searcher) logger() *logrus.Logger {
	if sr.Log != nil {
		return sr.Log
	}
	return logrus.StandardLogger()
}

// Run patches the noun and verb into a copy of the program, runs it, and
// returns the result cell.
func (sr *Searcher) Run(noun, verb int64) (result int64, err error) {
	image, err := sr.Rom.Patch([2]int64{ADDR_NOUN, noun}, [2]int64{ADDR_VERB, verb})
	if err != nil {
		return
	}

	machine, err := cpu.NewCpu(image)
	if err != nil {
		return
	}
	machine.Set = sr.Set

	memory, _, err := machine.Run(nil)
	if err != nil {
		return
	}

	result = memory[ADDR_RESULT]

	if sr.Verbose {
		sr.logger().WithFields(logrus.Fields{
			"noun":   noun,
			"verb":   verb,
			"result": result,
		}).Debug("search: run")
	}

	return
}

// NounVerb finds the first noun and verb, in increasing order of noun then
// verb, for which the program produces target. Runs that fault are skipped.
func (sr *Searcher) NounVerb(target int64) (noun, verb int64, err error) {
	limit := sr.Limit
	if limit == 0 {
		limit = DEFAULT_LIMIT
	}

	for n, v := range internal.Product(internal.Range(0, limit), internal.Range(0, limit)) {
		result, rerr := sr.Run(n, v)
		if rerr != nil {
			if errors.Is(rerr, io.ErrAddress) {
				// The image is too small to inject parameters.
				err = rerr
				return
			}
			continue
		}
		if result == target {
			noun, verb = n, v
			return
		}
	}

	err = ErrNotFound
	return
}
