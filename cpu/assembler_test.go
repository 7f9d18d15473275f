package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Statements))

	assert.Equal("0", asm.Equate["LINENO"])
}

func stEqual(t *testing.T, expected, statements []Statement) {
	assert := assert.New(t)

	assert.Equal(len(expected), len(statements))
	if len(expected) == len(statements) {
		for n := range len(expected) {
			assert.Equal(expected[n].LineNo, statements[n].LineNo, expected[n].String())
			assert.Equal(expected[n].Addr, statements[n].Addr, expected[n].String())
			assert.Equal(expected[n].Bytes, statements[n].Bytes, expected[n].String())
			assert.Equal(expected[n].LinkLabel, statements[n].LinkLabel, expected[n].String())
			if expected[n].Words != nil {
				assert.Equal(expected[n].Words, statements[n].Words, expected[n].String())
			}
		}
	}
}

func doParse(t *testing.T, program []string) (prog *Program) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestAssemblerStatements(t *testing.T) {
	program := []string{
		"; count to eight",
		"ldi r0,5",
		"ldi r1,3",
		"add r0,r1",
		"prn r0",
		"hlt",
	}

	expected := []Statement{
		{2, 0, []string{"ldi", "r0", "5"}, []uint8{uint8(LDI), 0, 5}, ""},
		{3, 3, []string{"ldi", "r1", "3"}, []uint8{uint8(LDI), 1, 3}, ""},
		{4, 6, []string{"add", "r0", "r1"}, []uint8{uint8(ADD), 0, 1}, ""},
		{5, 9, []string{"prn", "r0"}, []uint8{uint8(PRN), 0}, ""},
		{6, 11, nil, []uint8{uint8(HLT)}, ""},
	}

	prog := doParse(t, program)
	stEqual(t, expected, prog.Statements)
}

func TestAssemblerCase(t *testing.T) {
	program := []string{
		"LDI R0,5",
		"Ldi r1,3",
		"ADD r0,R1",
		"HLT",
	}

	expected := []Statement{
		{1, 0, nil, []uint8{uint8(LDI), 0, 5}, ""},
		{2, 3, nil, []uint8{uint8(LDI), 1, 3}, ""},
		{3, 6, nil, []uint8{uint8(ADD), 0, 1}, ""},
		{4, 9, nil, []uint8{uint8(HLT)}, ""},
	}

	prog := doParse(t, program)
	stEqual(t, expected, prog.Statements)
}

func TestAssemblerValues(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word  string
		value uint8
	}){
		{"5", 5},
		{"0x10", 0x10},
		{"0b101", 0b101},
		{"-1", 0xff},
		{"-128", 0x80},
		{"255", 0xff},
		{"~0x0f", 0xf0},
		{"'H'", 'H'},
		{"'\\n'", '\n'},
		{"'\\r'", '\r'},
		{"'\\e'", 0x1b},
		{"'\\\\'", '\\'},
	}

	for _, entry := range table {
		prog := doParse(t, []string{"ldi r0," + entry.word})
		if assert.Equal(1, len(prog.Statements), entry.word) {
			assert.Equal([]uint8{uint8(LDI), 0, entry.value}, prog.Statements[0].Bytes, entry.word)
		}
	}
}

func TestAssemblerByte(t *testing.T) {
	program := []string{
		".byte 0x01 2 0b11",
		"hlt",
		".byte 'H'",
	}

	expected := []Statement{
		{1, 0, nil, []uint8{1, 2, 3}, ""},
		{2, 3, nil, []uint8{uint8(HLT)}, ""},
		{3, 4, nil, []uint8{'H'}, ""},
	}

	prog := doParse(t, program)
	stEqual(t, expected, prog.Statements)
}

func TestAssemblerEqu(t *testing.T) {
	program := []string{
		".equ CONST_10 0x10",
		"ldi r0,CONST_10",
		"ldi r1,$(CONST_10 + 0x20)",
		".equ CONST_30 $(CONST_10 * 2 + 0x10)",
		"ldi r2,CONST_30",
		"ldi r3,$(LINENO)",
	}

	expected := []Statement{
		{2, 0, []string{"ldi", "r0", "0x10"}, []uint8{uint8(LDI), 0, 0x10}, ""},
		{3, 3, nil, []uint8{uint8(LDI), 1, 0x30}, ""},
		{5, 6, nil, []uint8{uint8(LDI), 2, 0x30}, ""},
		{6, 9, nil, []uint8{uint8(LDI), 3, 6}, ""},
	}

	prog := doParse(t, program)
	stEqual(t, expected, prog.Statements)
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"ldi r0,done",
		"jmp r0",
		"ldi r1,99",
		"done:",
		"hlt",
	}

	expected := []Statement{
		{1, 0, nil, []uint8{uint8(LDI), 0, 8}, "done"},
		{2, 3, nil, []uint8{uint8(JMP), 0}, ""},
		{3, 5, nil, []uint8{uint8(LDI), 1, 99}, ""},
		{5, 8, nil, []uint8{uint8(HLT)}, ""},
	}

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	stEqual(t, expected, prog.Statements)
	assert.Equal(8, asm.Label["done"])
}

func TestAssemblerLabelSameLine(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"ldi r0,again",
		"again: inc r1",
		"jmp r0",
	}

	expected := []Statement{
		{1, 0, nil, []uint8{uint8(LDI), 0, 3}, "again"},
		{2, 3, []string{"inc", "r1"}, []uint8{uint8(INC), 1}, ""},
		{3, 5, nil, []uint8{uint8(JMP), 0}, ""},
	}

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	stEqual(t, expected, prog.Statements)
	assert.Equal(3, asm.Label["again"])
}

func TestAssemblerMacro(t *testing.T) {
	program := []string{
		".macro PRINT rx",
		"prn rx",
		".endm",
		"PRINT r0",
		"PRINT r1",
		"hlt",
	}

	expected := []Statement{
		{2, 0, []string{"prn", "r0"}, []uint8{uint8(PRN), 0}, ""},
		{2, 2, []string{"prn", "r1"}, []uint8{uint8(PRN), 1}, ""},
		{6, 4, nil, []uint8{uint8(HLT)}, ""},
	}

	prog := doParse(t, program)
	stEqual(t, expected, prog.Statements)
}

func TestAssemblerMacroNested(t *testing.T) {
	program := []string{
		".macro BUMP rx",
		"inc rx",
		".endm",
		".macro TWICE rx",
		"BUMP rx",
		"BUMP rx",
		".endm",
		"TWICE r0",
		"hlt",
	}

	expected := []Statement{
		{2, 0, nil, []uint8{uint8(INC), 0}, ""},
		{2, 2, nil, []uint8{uint8(INC), 0}, ""},
		{9, 4, nil, []uint8{uint8(HLT)}, ""},
	}

	prog := doParse(t, program)
	stEqual(t, expected, prog.Statements)
}

func TestAssemblerMacroLocalLabel(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".macro SPIN rx",
		"ldi rx,@top",
		"@top: jmp rx",
		".endm",
		"SPIN r0",
		"SPIN r1",
	}

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	// The local label expands to a name unique to each invocation.
	assert.Equal(3, asm.Label["SPIN_5_top"])
	assert.Equal(8, asm.Label["SPIN_6_top"])
	if assert.Equal(4, len(prog.Statements)) {
		assert.Equal([]uint8{uint8(LDI), 0, 3}, prog.Statements[0].Bytes)
		assert.Equal("SPIN_5_top", prog.Statements[0].LinkLabel)
		assert.Equal([]uint8{uint8(LDI), 1, 8}, prog.Statements[2].Bytes)
		assert.Equal("SPIN_6_top", prog.Statements[2].LinkLabel)
	}
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("START", "0x20")

	prog, err := asm.Parse(strings.NewReader("ldi r0,START"))
	assert.NoError(err)
	if assert.Equal(1, len(prog.Statements)) {
		assert.Equal([]uint8{uint8(LDI), 0, 0x20}, prog.Statements[0].Bytes)
	}

	// Predefines survive a reparse.
	prog, err = asm.Parse(strings.NewReader("ldi r1,START"))
	assert.NoError(err)
	if assert.Equal(1, len(prog.Statements)) {
		assert.Equal([]uint8{uint8(LDI), 1, 0x20}, prog.Statements[0].Bytes)
	}
}

func TestAssemblerReuse(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	first := []string{
		".equ A 1",
		".macro M",
		"nop",
		".endm",
		"here:",
		"M",
		"ldi r0,A",
	}
	_, err := asm.Parse(strings.NewReader(strings.Join(first, "\n")))
	assert.NoError(err)

	// Equates, macros, and labels do not leak into the next parse.
	second := []string{
		".equ A 2",
		".macro M",
		"hlt",
		".endm",
		"here:",
		"M",
		"ldi r0,A",
	}
	prog, err := asm.Parse(strings.NewReader(strings.Join(second, "\n")))
	assert.NoError(err)
	if assert.Equal(2, len(prog.Statements)) {
		assert.Equal([]uint8{uint8(HLT)}, prog.Statements[0].Bytes)
		assert.Equal([]uint8{uint8(LDI), 0, 2}, prog.Statements[1].Bytes)
	}
}

func TestAssemblerExpressionInvalid(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Parse(strings.NewReader(`ldi r0,$("aaa")`))
	assert.ErrorIs(err, ErrParseExpression(`"aaa"`))
}

func TestAssemblerProgramSize(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := ".byte " + strings.TrimSpace(strings.Repeat("0 ", RAM_SIZE+1))
	_, err := asm.Parse(strings.NewReader(program))
	assert.ErrorIs(err, ErrProgramSize)
}

func TestAssemblerLabelMissing(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Parse(strings.NewReader("ldi r0,nowhere"))
	assert.ErrorIs(err, ErrLabelMissing("nowhere"))

	var se *ErrSyntax
	if assert.ErrorAs(err, &se) {
		assert.Equal(1, se.LineNo)
	}
}

func TestAssemblerMacroError(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		".macro M",
		"bogus",
		".endm",
		"M",
	}
	_, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.ErrorIs(err, ErrOpcodeInvalid)

	// The outer location is the invocation, the inner the macro body.
	var se *ErrSyntax
	if assert.ErrorAs(err, &se) {
		assert.Equal(4, se.LineNo)
	}
	var me *ErrMacro
	if assert.ErrorAs(err, &me) {
		assert.Equal("M", me.Macro)
		assert.Equal(2, me.Line)
	}
}

func TestAssemblerErrSyntax(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		prog string
		line int
	}){
		{"bogus", 1},
		{"ldi", 1},
		{"ldi r0", 1},
		{"ldi r0 1 2", 1},
		{"hlt r0", 1},
		{"add r8 r0", 1},
		{"add r0 rx", 1},
		{"inc 5", 1},
		{"ldi r0 300", 1},
		{"ldi r0 -200", 1},
		{"ldi r0 'ab'", 1},
		{".equ A", 1},
		{".equ A 1\n.equ A 2", 2},
		{"x: hlt\nx: hlt", 2},
		{".macro", 1},
		{".macro M\n.macro N", 2},
		{".macro M\n.endm\n.macro M\n.endm", 3},
		{".macro M\nhlt", 2},
		{".endm", 1},
		{".macro M a\ninc a\n.endm\nM", 4},
		{".macro M\nbogus\n.endm\nM", 4},
		{".byte", 1},
		{".byte 0x100", 1},
		{"ldi r0 nowhere", 1},
	}

	for _, entry := range table {
		asm := &Assembler{}

		_, err := asm.Parse(strings.NewReader(entry.prog))
		assert.Error(err, entry.prog)

		var se *ErrSyntax
		if assert.ErrorAs(err, &se, entry.prog) {
			assert.Equal(entry.line, se.LineNo, entry.prog)
		}
	}
}

func TestAssemblerComma(t *testing.T) {
	assert := assert.New(t)

	// Commas and spaces separate operands interchangeably.
	for _, line := range []string{"ldi r0,5", "ldi r0, 5", "ldi r0 5", "ldi  r0 , 5"} {
		prog := doParse(t, []string{line})
		if assert.Equal(1, len(prog.Statements), line) {
			assert.Equal([]uint8{uint8(LDI), 0, 5}, prog.Statements[0].Bytes, line)
		}
	}
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		prog string
		is   error
	}){
		{"bogus", ErrOpcodeInvalid},
		{"ldi r0", ErrOperandMissing},
		{"hlt r0", ErrOpcodeExtraArgs},
		{"add r8 r0", ErrRegisterInvalid},
		{"ldi r0 300", ErrValueRange},
		{"ldi r0 'ab'", ErrParseCharacter("ab")},
		{".equ A", ErrEquateSyntax},
		{".equ A 1\n.equ A 2", ErrEquateDuplicate},
		{"x: hlt\nx: hlt", ErrLabelDuplicate},
		{".macro", ErrMacroSyntax},
		{".macro M\n.macro N", ErrMacroNesting},
		{".macro M\n.endm\n.macro M\n.endm", ErrMacroDuplicate},
		{".macro M\nhlt", ErrMacroLonely},
		{".endm", ErrMacroLonelyEndm},
		{".byte", ErrValueMissing},
	}

	for _, entry := range table {
		asm := &Assembler{}

		_, err := asm.Parse(strings.NewReader(entry.prog))
		assert.ErrorIs(err, entry.is, entry.prog)
	}
}
