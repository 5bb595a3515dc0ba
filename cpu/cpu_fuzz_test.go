package cpu

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

const fuzzSteps = 256

// fuzzRun steps a machine until it halts, faults, or runs out of steps.
func fuzzRun(image []int64, inputs []int64) (memory []int64, outputs []int64, err error) {
	cpu, err := NewCpu(image)
	if err != nil {
		return
	}

	input := func() (value int64, ok bool) {
		if len(inputs) == 0 {
			return
		}
		value, inputs = inputs[0], inputs[1:]
		return value, true
	}

	for range fuzzSteps {
		var outcome Outcome
		outcome, err = cpu.Step(input)
		if err != nil || outcome.Kind == OUTCOME_HALT {
			break
		}
		if outcome.Kind == OUTCOME_OUTPUT {
			outputs = append(outputs, outcome.Value)
		}
	}

	memory = cpu.Memory()
	return
}

func FuzzCpu(f *testing.F) {
	f.Add([]byte{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, int64(0))
	f.Add([]byte{3, 9, 8, 9, 10, 9, 4, 9, 99, 255, 8}, int64(8))
	f.Add([]byte{3, 0, 4, 0, 99}, int64(-3))
	f.Add([]byte{}, int64(0))

	f.Fuzz(func(t *testing.T, data []byte, input int64) {
		assert := assert.New(t)

		image := make([]int64, len(data))
		for n, b := range data {
			image[n] = int64(int8(b))
			if b >= 0xc0 {
				// Bias towards instructions with parameter modes.
				image[n] = int64(b-0xc0)%9 + 1 + 100*int64(b&0x7)
			}
		}

		inputs := []int64{input, input + 1}

		memory, outputs, err := fuzzRun(image, inputs)
		if len(image) == 0 {
			assert.ErrorIs(err, ErrImageEmpty)
			return
		}

		// Deterministic.
		memory2, outputs2, err2 := fuzzRun(image, inputs)
		assert.Equal(memory, memory2)
		assert.Equal(outputs, outputs2)
		assert.Equal(err, err2)

		// Memory never grows or shrinks.
		assert.Equal(len(image), len(memory))

		// Faults are always classified.
		if err != nil {
			var fault *ErrFault
			assert.True(errors.As(err, &fault))
			assert.True(slices.ContainsFunc([]error{
				ErrAddress, ErrOpcodeUnknown, ErrModeInvalid,
				ErrModeImmediateWrite, ErrInputExhausted, ErrOverflow,
			}, func(target error) bool { return errors.Is(err, target) }), err.Error())
		}
	})
}
