// Copyright 2026, Mark Halls <mark.halls.8@gmail.com>

package cpu

import (
	"bufio"
	"errors"
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

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// opcodeMap maps mnemonics to instruction bytes.
var opcodeMap = map[string]Opcode{
	"nop":  NOP,
	"hlt":  HLT,
	"ldi":  LDI,
	"ld":   LD,
	"st":   ST,
	"push": PUSH,
	"pop":  POP,
	"prn":  PRN,
	"pra":  PRA,
	"add":  ADD,
	"sub":  SUB,
	"mul":  MUL,
	"div":  DIV,
	"mod":  MOD,
	"inc":  INC,
	"dec":  DEC,
	"cmp":  CMP,
	"and":  AND,
	"not":  NOT,
	"or":   OR,
	"xor":  XOR,
	"shl":  SHL,
	"shr":  SHR,
	"addi": ADDI,
	"call": CALL,
	"ret":  RET,
	"jmp":  JMP,
	"jeq":  JEQ,
	"jne":  JNE,
}

// immOperand returns the operand position carrying an immediate value,
// or 0 when every operand is a register.
func immOperand(op Opcode) int {
	switch op {
	case LDI:
		return 2
	case ADDI:
		return 3
	}

	return 0
}

// Assembler is a single pass macro assembler for the LS-8 system.
type Assembler struct {
	Verbose   bool        // If set, verbosely logs the assembler actions.
	Statement []Statement // List of generated statements.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of jump labels to memory addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.
}

// Predefine adds a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// registerOf returns the register index of an R0..R7 operand.
func registerOf(word string) (reg uint8, err error) {
	word = strings.ToLower(word)
	if len(word) == 2 && word[0] == 'r' && word[1] >= '0' && word[1] <= '7' {
		reg = word[1] - '0'
		return
	}

	err = ErrRegisterInvalid
	return
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint8, err error) {
	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}
	if word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(word[1 : len(word)-1])
		return
	}
	v64, err := strconv.ParseInt(word, 0, 16)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 > 0xff || v64 < -0x80 {
		err = ErrValueRange
		return
	}
	value = uint8(v64)

	if invert {
		value = ^value
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint8, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value8 uint8
		value8, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value8))
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
	value = uint8(st_int64)
	return
}

// parseLine parses a single line into statement words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
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

	line = strings.ReplaceAll(line, ",", " ")
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
		if len(word) == 0 {
			continue
		}

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

	// Macro expansion
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		// Local @ labels expand to a name unique to this invocation.
		local := fmt.Sprintf("%v_%v_", name, lineno)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentAddr gets the current assembly address
func (asm *Assembler) currentAddr() int {
	if len(asm.Statement) == 0 {
		return 0
	}

	last := asm.Statement[len(asm.Statement)-1]

	return last.Addr + len(last.Bytes)
}

// Parse parses an input stream into a Program listing.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Statement = asm.Statement[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
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
		all_words := strings.Split(line, " ")

		var words []string
		for _, single := range all_words {
			if len(single) > 0 {
				words = append(words, single)
			}
		}

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	if asm.currentAddr() > RAM_SIZE {
		err = ErrProgramSize
		return
	}

	// Final linking of jump labels.
	for n := range asm.Statement {
		st := &asm.Statement[n]

		if len(st.LinkLabel) == 0 {
			continue
		}
		label := st.LinkLabel
		address, ok := asm.Label[label]
		if !ok {
			err = ErrLabelMissing(label)
			return
		}
		if len(st.Bytes) < 2 {
			log.Fatalf("Unable to link label '%s' to line %d: %v", label, st.LineNo, st.Words)
		}
		st.Bytes[len(st.Bytes)-1] = uint8(address)
	}

	prog = &Program{
		Statements: slices.Clone(asm.Statement),
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var bytes []uint8
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if len(bytes) == 0 {
			return
		}
		st := Statement{LineNo: lineno, Addr: asm.currentAddr(), Words: initial_words, Bytes: bytes, LinkLabel: label}
		asm.Statement = append(asm.Statement, st)
	}()

	// .byte VALUE...
	if words[0] == ".byte" {
		if len(words) < 2 {
			err = ErrValueMissing
			return
		}
		for _, word := range words[1:] {
			var value uint8
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			bytes = append(bytes, value)
		}
		return
	}

	op, ok := opcodeMap[strings.ToLower(words[0])]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	operands := words[1:]
	switch {
	case len(operands) < op.Size()-1:
		err = ErrOperandMissing
		return
	case len(operands) > op.Size()-1:
		err = ErrOpcodeExtraArgs
		return
	}

	bytes = append(bytes, uint8(op))

	imm := immOperand(op)
	for n, word := range operands {
		var value uint8

		if n+1 == imm {
			value, err = asm.valueOf(word)
			var parse ErrParseNumber
			if errors.As(err, &parse) {
				// Label reference, resolved after the scan.
				err = nil
				label = word
				value = 0
			}
		} else {
			value, err = registerOf(word)
		}
		if err != nil {
			return
		}

		bytes = append(bytes, value)
	}

	return
}
