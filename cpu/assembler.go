// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":    "0",
	"OP_ADD":    fmt.Sprintf("%d", OP_ADD),
	"OP_MUL":    fmt.Sprintf("%d", OP_MUL),
	"OP_IN":     fmt.Sprintf("%d", OP_IN),
	"OP_OUT":    fmt.Sprintf("%d", OP_OUT),
	"OP_JNZ":    fmt.Sprintf("%d", OP_JNZ),
	"OP_JZ":     fmt.Sprintf("%d", OP_JZ),
	"OP_LT":     fmt.Sprintf("%d", OP_LT),
	"OP_EQ":     fmt.Sprintf("%d", OP_EQ),
	"OP_HALT":   fmt.Sprintf("%d", OP_HALT),
	"IMMEDIATE": fmt.Sprintf("%d", MODE_IMMEDIATE),
}

// opMap maps mnemonics to operations.
var opMap = map[string]CodeOp{}

func init() {
	for op, info := range _op_info {
		opMap[info.name] = op
	}
}

// Assembler is a two pass assembler for intcode.
//
// Each line holds optional labels, then an instruction or directive:
//
//	loop:  add  count #-1 count   ; position and #immediate operands
//	       jnz  count #loop
//	       halt
//	count: .data 10
//	       .equ  LIMIT $(2*5)
//
// Operands are numbers, labels, equates, 'c' character constants, or
// $(...) expressions evaluated as Starlark over the labels and equates.
type Assembler struct {
	Verbose bool           // If set, verbosely logs the assembler actions.
	Log     *logrus.Logger // Log sink. Uses the logrus standard logger if nil.
	Opcode  []Opcode       // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.

	lines     []string         // Source text of each opcode.
	resolving map[string]bool  // Equates being resolved.
	values    map[string]int64 // Equates resolved for the current line.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

func (asm *Assembler) logger() *logrus.Logger {
	if asm.Log != nil {
		return asm.Log
	}
	return logrus.StandardLogger()
}

// splitWords splits a line on spaces and commas, keeping $(...)
// expressions and character constants whole.
func splitWords(line string) (words []string) {
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	depth := 0
	for n := 0; n < len(line); n++ {
		c := line[n]
		switch {
		case depth == 0 && c == '$' && n+1 < len(line) && line[n+1] == '(':
			depth = 1
			word.WriteString("$(")
			n++
		case depth > 0:
			switch c {
			case '(':
				depth++
			case ')':
				depth--
			}
			word.WriteByte(c)
		case c == '\'':
			end := n + 1
			for end < len(line) && line[end] != '\'' {
				if line[end] == '\\' {
					end++
				}
				end++
			}
			if end >= len(line) {
				word.WriteString(line[n:])
				n = len(line)
				break
			}
			word.WriteString(line[n : end+1])
			n = end
		case c == ' ' || c == '\t' || c == ',':
			flush()
		default:
			word.WriteByte(c)
		}
	}
	flush()

	return
}

// stripComment removes a trailing ; comment. A ; inside a character
// constant is not a comment.
func stripComment(text string) string {
	quoted := false
	for n := 0; n < len(text); n++ {
		switch c := text[n]; {
		case quoted && c == '\\':
			n++
		case c == '\'':
			quoted = !quoted
		case !quoted && c == ';':
			return text[:n]
		}
	}

	return text
}

// charOf returns the value of a 'c' character constant.
func charOf(word string) (value int64, ok bool) {
	if len(word) < 3 || word[0] != '\'' || word[len(word)-1] != '\'' {
		return
	}

	str := word[1 : len(word)-1]
	if str[0] == '\\' {
		switch str[1:] {
		case "\\":
			str = "\\"
		case "n":
			str = "\n"
		case "r":
			str = "\r"
		case "t":
			str = "\t"
		case "'":
			str = "'"
		default:
			return
		}
	}

	runes := []rune(str)
	if len(runes) != 1 {
		return
	}

	return int64(runes[0]), true
}

// valueOf returns the value of a single operand word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		return asm.parenEval(word[2 : len(word)-1])
	}

	if value, ok := charOf(word); ok {
		return value, nil
	}

	if ip, ok := asm.Label[word]; ok {
		value = int64(ip)
		return
	}

	if equate, ok := asm.Equate[word]; ok {
		if value, ok := asm.values[word]; ok {
			return value, nil
		}
		if asm.resolving[word] {
			err = ErrEquateRecursive
			return
		}
		asm.resolving[word] = true
		defer delete(asm.resolving, word)
		value, err = asm.valueOf(equate)
		if err != nil {
			return
		}
		asm.values[word] = value
		return
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations.
// Only the labels and equates named by the expression are resolved.
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}

	ast, err := opts.ParseExpr("expr", expr, 0)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseExpression(expr), err)
		return
	}

	pred := starlark.StringDict{}
	syntax.Walk(ast, func(node syntax.Node) bool {
		ident, ok := node.(*syntax.Ident)
		if !ok || err != nil {
			return err == nil
		}
		if _, ok := pred[ident.Name]; ok {
			return true
		}
		if ip, ok := asm.Label[ident.Name]; ok {
			pred[ident.Name] = starlark.MakeInt(ip)
			return true
		}
		if _, ok := asm.Equate[ident.Name]; ok {
			var v int64
			v, err = asm.valueOf(ident.Name)
			pred[ident.Name] = starlark.MakeInt64(v)
		}
		return err == nil
	})
	if err != nil {
		return
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// currentIp gets the address of the next generated cell.
func (asm *Assembler) currentIp() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Ip + len(last.Codes)
}

// parseLine records labels, equates, and the layout of a single line.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	words := splitWords(line)

	// .equ CONST VALUE
	if len(words) > 0 && words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.currentIp()
		words = words[1:]
	}

	if len(words) == 0 {
		return
	}

	var width int
	if words[0] == ".data" {
		width = len(words) - 1
		if width == 0 {
			err = ErrOpcodeValueMissing
			return
		}
	} else {
		op, ok := opMap[words[0]]
		if !ok {
			err = ErrInstructionInvalid
			return
		}
		switch {
		case len(words)-1 < op.Params():
			err = ErrOpcodeValueMissing
			return
		case len(words)-1 > op.Params():
			err = ErrOpcodeExtraArgs
			return
		}
		width = op.Width()
	}

	asm.Opcode = append(asm.Opcode, Opcode{
		LineNo: lineno,
		Ip:     asm.currentIp(),
		Words:  words,
		Codes:  make([]int64, width),
	})
	asm.lines = append(asm.lines, line)

	return
}

// parseWords generates the cells of a single opcode.
func (asm *Assembler) parseWords(op *Opcode) (err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", op.LineNo)
	clear(asm.values)

	if op.Words[0] == ".data" {
		for n, word := range op.Words[1:] {
			op.Codes[n], err = asm.valueOf(word)
			if err != nil {
				return
			}
		}
		return
	}

	code := opMap[op.Words[0]]
	var modes []CodeMode
	for n, word := range op.Words[1:] {
		mode := MODE_POSITION
		if strings.HasPrefix(word, "#") {
			if n+1 == code.Writes() {
				err = ErrModeImmediateWrite
				return
			}
			mode = MODE_IMMEDIATE
			word = word[1:]
		}
		modes = append(modes, mode)
		op.Codes[n+1], err = asm.valueOf(word)
		if err != nil {
			return
		}
	}
	op.Codes[0] = MakeCode(code, modes...).Word

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Opcode = nil
	asm.lines = nil
	asm.Label = make(map[string]int, 16)
	asm.resolving = make(map[string]bool)
	asm.values = make(map[string]int64)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			asm.logger().WithField("line", lineno).Debug(text)
		}

		line = strings.TrimSpace(stripComment(text))

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	// Second pass, now that all labels are known.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]
		err = asm.parseWords(op)
		if err != nil {
			lineno = op.LineNo
			line = asm.lines[n]
			return
		}
		if asm.Verbose {
			asm.logger().WithFields(logrus.Fields{
				"ip":    op.Ip,
				"codes": op.Codes,
			}).Debug(strings.Join(op.Words, " "))
		}
	}

	prog = &Program{
		Opcodes: asm.Opcode,
	}

	return
}
