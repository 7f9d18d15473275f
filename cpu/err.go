package cpu

import (
	"errors"

	"github.com/mark-halls/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted       = errors.New(f("cpu halted"))
	ErrDivideByZero = errors.New(f("divide by zero"))
	ErrAluInvalid   = errors.New(f("alu operation invalid"))

	// Loader errors
	ErrProgramSize = errors.New(f("program too large"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrMacroSyntax     = errors.New(f(".macro syntax"))
	ErrMacroNesting    = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate  = errors.New(f(".macro duplicated"))
	ErrMacroLonely     = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs = errors.New(f("excessive operands"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOperandMissing  = errors.New(f("operand missing"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrValueRange      = errors.New(f("value out of range"))
	ErrValueMissing    = errors.New(f("value missing"))
)

// ErrInstruction is a fetched byte that decodes to no known instruction.
type ErrInstruction Opcode

func (ei ErrInstruction) Error() string {
	return f("invalid instruction %#010b", uint8(ei))
}

func (ei ErrInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrInstruction)
	return
}

// ErrMemoryRange is a memory access outside of the address space.
type ErrMemoryRange int

func (em ErrMemoryRange) Error() string {
	return f("memory address %d out of range", int(em))
}

func (em ErrMemoryRange) Is(err error) (ok bool) {
	_, ok = err.(ErrMemoryRange)
	return
}

// ErrRegisterRange is a register operand outside of the register bank.
type ErrRegisterRange int

func (er ErrRegisterRange) Error() string {
	return f("register %d out of range", int(er))
}

func (er ErrRegisterRange) Is(err error) (ok bool) {
	_, ok = err.(ErrRegisterRange)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseBinary string

func (err ErrParseBinary) Error() string {
	return f("'%v' is not a binary instruction", string(err))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value or register", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
