package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass assembler for the machine's instruction
// set.
type Assembler struct {
	Verbose   bool        // If set, verbosely logs the assembler actions.
	Statement []Statement // List of generated statements.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to absolute addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// registerMap maps register names to operand bytes.
var registerMap = map[string]uint8{
	"r0": 0,
	"r1": 1,
	"r2": 2,
	"r3": 3,
}

// mnemonicMap maps mnemonics to opcodes, derived from the opcode table.
var mnemonicMap = func() (mn map[string]Opcode) {
	mn = make(map[string]Opcode, len(opcodeTable))
	for op, info := range opcodeTable {
		mn[info.Name] = op
	}
	return
}()

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}
	value = int(v64)

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v, verr := asm.valueOf(str)
		if verr != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
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
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)

	return
}

// parseLine expands $() expressions and equates, consumes .equ
// directives and label definitions, and returns the remaining words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	words = slices.DeleteFunc(strings.Split(line, " "), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
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
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentAddr()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// currentAddr gets the absolute address of the next emitted byte.
func (asm *Assembler) currentAddr() int {
	if len(asm.Statement) == 0 {
		return PROGRAM_BASE
	}

	last := asm.Statement[len(asm.Statement)-1]

	return last.Addr + len(last.Bytes)
}

// parseWords assembles a single statement from its words.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	op, ok := mnemonicMap[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}
	info, _ := op.Info()

	st := Statement{
		LineNo: lineno,
		Addr:   asm.currentAddr(),
		Words:  slices.Clone(words),
		Bytes:  []byte{uint8(op)},
	}

	args := words[1:]
	for _, kind := range info.Operands {
		if len(args) == 0 {
			err = ErrOperandMissing
			return
		}
		word := args[0]
		args = args[1:]

		switch kind {
		case 'r':
			index, is_reg := registerMap[word]
			if !is_reg {
				err = ErrRegisterExpected
				return
			}
			st.Bytes = append(st.Bytes, index)
		case 'v':
			var value int
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			if value < 0 || value > 0xff {
				err = ErrValueInvalid
				return
			}
			st.Bytes = append(st.Bytes, uint8(value))
		case 'a':
			value, verr := asm.valueOf(word)
			if verr != nil {
				// Not a number: a label reference, linked after the
				// full listing is parsed.
				st.LinkLabel = word
				st.LinkOffset = len(st.Bytes)
				st.Bytes = append(st.Bytes, 0, 0)
				continue
			}
			if value < 0 || value >= MEMORY_SIZE {
				err = ErrTargetInvalid
				return
			}
			st.Bytes = append(st.Bytes, uint8(value>>8), uint8(value))
		}
	}

	if len(args) != 0 {
		err = ErrOpcodeExtraArgs
		return
	}

	asm.Statement = append(asm.Statement, st)

	return
}

// Parse parses an input stream into a Program containing statements.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Statement = asm.Statement[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	// Final linking of jump labels.
	for n := range asm.Statement {
		st := &asm.Statement[n]

		if len(st.LinkLabel) == 0 {
			continue
		}
		addr, ok := asm.Label[st.LinkLabel]
		if !ok {
			err = ErrLabelMissing(st.LinkLabel)
			return
		}
		st.Bytes[st.LinkOffset] = uint8(addr >> 8)
		st.Bytes[st.LinkOffset+1] = uint8(addr)
	}

	prog = &Program{
		Statements: slices.Clone(asm.Statement),
	}

	return
}
