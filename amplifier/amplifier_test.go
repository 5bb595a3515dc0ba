package amplifier

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/cpu"
)

var seriesTable = [](struct {
	name   string
	image  []int64
	phases []int64
	signal int64
}){
	{"series_1",
		[]int64{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0},
		[]int64{4, 3, 2, 1, 0}, 43210},
	{"series_2",
		[]int64{3, 23, 3, 24, 1002, 24, 10, 24, 1002, 23, -1, 23, 101, 5, 23, 23, 1, 24, 23, 23, 4, 23, 99, 0, 0},
		[]int64{0, 1, 2, 3, 4}, 54321},
	{"series_3",
		[]int64{3, 31, 3, 32, 1002, 32, 10, 32, 1001, 31, -2, 31, 1007, 31, 0, 33, 1002, 33, 7, 33, 1, 33, 31, 31, 1, 32, 31, 31, 4, 31, 99, 0, 0, 0},
		[]int64{1, 0, 4, 3, 2}, 65210},
}

var feedbackTable = [](struct {
	name   string
	image  []int64
	phases []int64
	signal int64
}){
	{"feedback_1",
		[]int64{3, 26, 1001, 26, -4, 26, 3, 27, 1002, 27, 2, 27, 1, 27, 26, 27, 4, 27, 1001, 28, -1, 28, 1005, 28, 6, 99, 0, 0, 5},
		[]int64{9, 8, 7, 6, 5}, 139629729},
	{"feedback_2",
		[]int64{3, 52, 1001, 52, -5, 52, 3, 53, 1, 52, 56, 54, 1007, 54, 5, 55, 1005, 55, 26, 1001, 54, -5, 54, 1105, 1, 12, 1, 53, 54, 53, 1008, 54, 0, 55, 1001, 55, 1, 55, 2, 53, 55, 53, 4, 53, 1001, 56, -1, 56, 1005, 56, 6, 99, 0, 0, 0, 0, 10},
		[]int64{9, 7, 8, 5, 6}, 18216},
}

func TestSeries(t *testing.T) {
	assert := assert.New(t)

	for _, entry := range seriesTable {
		chain := &Chain{Image: entry.image}

		signal, err := chain.Series(entry.phases)
		assert.NoError(err, entry.name)
		assert.Equal(entry.signal, signal, entry.name)

		best, err := chain.MaxSeries([]int64{0, 1, 2, 3, 4})
		assert.NoError(err, entry.name)
		assert.Equal(Result{Signal: entry.signal, Phases: entry.phases}, best, entry.name)
	}
}

func TestFeedback(t *testing.T) {
	assert := assert.New(t)

	for _, entry := range feedbackTable {
		chain := &Chain{Image: entry.image}

		signal, err := chain.Feedback(entry.phases)
		assert.NoError(err, entry.name)
		assert.Equal(entry.signal, signal, entry.name)

		// The stages run on copies of the image.
		assert.Equal(int64(0), entry.image[len(entry.image)-2])
	}

	chain := &Chain{Image: feedbackTable[0].image}
	best, err := chain.MaxFeedback([]int64{5, 6, 7, 8, 9})
	assert.NoError(err)
	assert.Equal(Result{Signal: 139629729, Phases: []int64{9, 8, 7, 6, 5}}, best)
}

func TestFeedbackWaiting(t *testing.T) {
	assert := assert.New(t)

	source := []string{
		"       in   phase",
		"       jnz  phase #sum",
		"       in   a        ; phase 0 forwards a signal, then a constant",
		"       out  a",
		"       out  #7",
		"       in   a",
		"       out  a",
		"       halt",
		"sum:   in   a        ; other phases wait for two values",
		"       in   b",
		"       add  a b a",
		"       out  a",
		"       halt",
		"phase: .data 0",
		"a:     .data 0",
		"b:     .data 0",
	}

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(source, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	chain := &Chain{Image: prog.Image()}
	signal, err := chain.Feedback([]int64{0, 1})
	assert.NoError(err)
	assert.Equal(int64(7), signal)

	// Every stage wants a third input, so no stage can make progress.
	chain = &Chain{Image: []int64{3, 0, 3, 0, 3, 0, 4, 0, 99}}
	_, err = chain.Feedback([]int64{1, 2})
	assert.ErrorIs(err, cpu.ErrInputExhausted)

	var stage *ErrStage
	if assert.True(errors.As(err, &stage)) {
		assert.Equal(0, stage.Stage)
		assert.Equal(int64(1), stage.Phase)
	}
}

func TestChainErrors(t *testing.T) {
	assert := assert.New(t)

	chain := &Chain{Image: seriesTable[0].image}

	_, err := chain.Series(nil)
	assert.ErrorIs(err, ErrNoPhases)
	_, err = chain.Feedback(nil)
	assert.ErrorIs(err, ErrNoPhases)
	_, err = chain.MaxSeries(nil)
	assert.ErrorIs(err, ErrNoPhases)

	chain = &Chain{}
	_, err = chain.Series([]int64{0})
	assert.ErrorIs(err, cpu.ErrImageEmpty)

	// Reads both inputs, but outputs nothing.
	chain = &Chain{Image: []int64{3, 0, 3, 0, 99}}
	_, err = chain.Series([]int64{0, 1})
	assert.ErrorIs(err, ErrNoSignal)

	var stage *ErrStage
	if assert.True(errors.As(err, &stage)) {
		assert.Equal(0, stage.Stage)
		assert.Equal(int64(0), stage.Phase)
	}

	// Halts without output.
	chain = &Chain{Image: []int64{3, 0, 99}}
	_, err = chain.Feedback([]int64{5, 6})
	assert.ErrorIs(err, ErrNoSignal)

	// Wants a third input.
	chain = &Chain{Image: []int64{3, 0, 3, 0, 3, 0, 4, 0, 99}}
	_, err = chain.Series([]int64{1, 2})
	assert.ErrorIs(err, cpu.ErrInputExhausted)

	// The basic set has no input.
	chain = &Chain{Image: seriesTable[0].image, Set: cpu.SET_BASIC}
	_, err = chain.Series([]int64{4, 3, 2, 1, 0})
	assert.ErrorIs(err, cpu.ErrOpcodeUnknown)
}
