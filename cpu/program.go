package cpu

import (
	"fmt"
	"iter"
)

// Opcode is a line of assembled code with its source location and the
// memory cells generated for it.
type Opcode struct {
	LineNo int      // Source line, 0 for raw images.
	Ip     int      // Address of the first generated cell.
	Words  []string // Source words.
	Codes  []int64  // Generated cells.
}

// Program is an assembled program listing.
type Program struct {
	Opcodes []Opcode
}

// NewProgram wraps a raw memory image as a program without source lines.
func NewProgram(image []int64) *Program {
	if len(image) == 0 {
		return &Program{}
	}

	return &Program{
		Opcodes: []Opcode{{Ip: 0, Codes: image}},
	}
}

type Debug struct {
	*Opcode
	Index int
}

// Debug finds the opcode that generated the cell at ip.
func (prog *Program) Debug(ip int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if ip >= op.Ip && ip < op.Ip+len(op.Codes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  ip - op.Ip,
			}
			break
		}
	}

	return
}

// Image flattens the program into a memory image.
func (prog *Program) Image() (image []int64) {
	for ip, cell := range prog.Cells() {
		for len(image) < ip {
			image = append(image, 0)
		}
		image = append(image, cell)
	}

	return
}

// Cells iterates over every generated cell, by address.
func (prog *Program) Cells() iter.Seq2[int, int64] {
	return func(yield func(ip int, cell int64) bool) {
		for _, op := range prog.Opcodes {
			for n, cell := range op.Codes {
				if !yield(op.Ip+n, cell) {
					return
				}
			}
		}
	}
}

// Disassemble iterates over a memory image as a listing of address and
// assembler text. Cells that do not decode as a complete instruction are
// listed as data.
func Disassemble(image []int64) iter.Seq2[int, string] {
	return func(yield func(ip int, text string) bool) {
		ip := 0
		for ip < len(image) {
			code, err := Decode(image[ip])
			width := code.Op.Width()
			if err != nil || ip+width > len(image) {
				if !yield(ip, fmt.Sprintf(".data %d", image[ip])) {
					return
				}
				ip++
				continue
			}
			if !yield(ip, code.Format(image[ip+1:ip+width]...)) {
				return
			}
			ip += width
		}
	}
}
