package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Words: []string{"in", "5"}, Codes: []int64{3, 5}},
			{LineNo: 2, Ip: 2, Words: []string{"out", "5"}, Codes: []int64{4, 5}},
			{LineNo: 4, Ip: 4, Words: []string{"halt"}, Codes: []int64{99}},
		},
	}

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.Opcode.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(3)
	assert.NotNil(dbg.Opcode)
	assert.Equal(2, dbg.Opcode.LineNo)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(4)
	assert.Equal(4, dbg.Opcode.LineNo)

	dbg = prog.Debug(5)
	assert.Nil(dbg.Opcode)
	assert.Equal(0, dbg.Index)

	assert.Equal([]int64{3, 5, 4, 5, 99}, prog.Image())
}

func TestProgram_Image(t *testing.T) {
	assert := assert.New(t)

	image := []int64{1, 0, 0, 0, 99}
	prog := NewProgram(image)
	assert.Equal(image, prog.Image())
	assert.Equal(0, prog.Debug(4).LineNo)
	assert.Equal(4, prog.Debug(4).Index)

	assert.Nil(NewProgram(nil).Image())
}

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	var ips []int
	var texts []string
	for ip, text := range Disassemble([]int64{1002, 4, 3, 4, 33, 104, -7, 99, 1101, 1}) {
		ips = append(ips, ip)
		texts = append(texts, text)
	}

	assert.Equal([]int{0, 4, 5, 7, 8, 9}, ips)
	assert.Equal([]string{
		"mul 4 #3 4",
		".data 33",
		"out #-7",
		"halt",
		".data 1101",
		".data 1",
	}, texts)
}
