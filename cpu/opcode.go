package cpu

// Opcode is a single LS-8 instruction byte.
//
// The encoding is self-describing: the two high bits hold the operand
// count, and bit 4 marks instructions that write the program counter
// themselves.
type Opcode uint8

//go:generate go tool stringer -type=Opcode
const (
	NOP = Opcode(0b00000000) // no effect
	HLT = Opcode(0b00000001) // stop the machine

	LDI = Opcode(0b10000010) // reg <- immediate
	LD  = Opcode(0b10000011) // reg <- ram[reg]
	ST  = Opcode(0b10000100) // ram[reg] <- reg

	PUSH = Opcode(0b01000101) // ram[--sp] <- reg
	POP  = Opcode(0b01000110) // reg <- ram[sp++]

	PRN = Opcode(0b01000111) // print reg as decimal
	PRA = Opcode(0b01001000) // print reg as character

	ADD  = Opcode(0b10100000) // reg <- reg + reg
	SUB  = Opcode(0b10100001) // reg <- reg - reg
	MUL  = Opcode(0b10100010) // reg <- reg * reg
	DIV  = Opcode(0b10100011) // reg <- reg / reg
	MOD  = Opcode(0b10100100) // reg <- reg % reg
	INC  = Opcode(0b01100101) // reg <- reg + 1
	DEC  = Opcode(0b01100110) // reg <- reg - 1
	CMP  = Opcode(0b10100111) // flags <- reg ? reg
	AND  = Opcode(0b10101000) // reg <- reg & reg
	NOT  = Opcode(0b01101001) // reg <- ^reg
	OR   = Opcode(0b10101010) // reg <- reg | reg
	XOR  = Opcode(0b10101011) // reg <- reg ^ reg
	SHL  = Opcode(0b10101100) // reg <- reg << reg
	SHR  = Opcode(0b10101101) // reg <- reg >> reg
	ADDI = Opcode(0b11001111) // reg <- reg + immediate

	CALL = Opcode(0b01010000) // push return address; pc <- reg
	RET  = Opcode(0b00010001) // pc <- pop
	JMP  = Opcode(0b01010100) // pc <- reg
	JEQ  = Opcode(0b01010101) // pc <- reg if equal flag set
	JNE  = Opcode(0b01010110) // pc <- reg if equal flag clear
)

// Size returns the instruction length in bytes, the opcode itself plus
// the operand count declared in its two high bits.
func (op Opcode) Size() int {
	return int((op>>6)&0b11) + 1
}

// SetsPC returns true if the instruction writes the program counter
// itself, in which case the execution loop must not advance past it.
func (op Opcode) SetsPC() bool {
	return (op>>4)&0b1 == 1
}
