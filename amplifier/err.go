package amplifier

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrNoPhases = errors.New(f("no phase settings"))
	ErrNoSignal = errors.New(f("stage produced no signal"))
)

// ErrStage locates a failure within a chain of amplifiers.
type ErrStage struct {
	Stage int
	Phase int64
	Err   error
}

func (err *ErrStage) Error() string {
	return f("stage %d phase %d %v", err.Stage, err.Phase, err.Err)
}

func (err *ErrStage) Unwrap() error {
	return err.Err
}
