package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"os"

	"github.com/mark-halls/ls8/io"
)

// Output is the device the CPU prints to.
type Output io.Output

// Machine geometry constants.
const (
	RAM_SIZE = 255  // Bytes of addressable memory.
	REG_SP   = 7    // Register holding the stack pointer.
	SP_INIT  = 0xF4 // Stack pointer power-on value.
)

// Flags vector slots written by CMP.
const (
	FLAG_LT = 5 // Less-than.
	FLAG_GT = 6 // Greater-than.
	FLAG_EQ = 7 // Equal.
)

var _cpu_defines = map[string]string{
	"RAM_SIZE": fmt.Sprintf("%d", RAM_SIZE),
	"SP":       fmt.Sprintf("%d", REG_SP),
	"SP_INIT":  fmt.Sprintf("0x%x", SP_INIT),
}

// handler executes a single instruction given its operand bytes.
// Operands past the instruction length are zero.
type handler func(a, b, c uint8) (err error)

// Cpu is the simulation context for an LS-8 machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Output Output // Device PRN and PRA print to.

	Ram      [RAM_SIZE]uint8 // Main memory.
	Register [8]uint8        // Register bank. R7 doubles as the stack pointer.
	Flags    [8]uint8        // Flags vector, written by CMP.
	Pc       int             // Current program counter.

	Running bool // True while the execution loop may continue.
	Halted  bool // True once HLT or a fatal error was reached.

	ProgramEnd int // First address past the loaded program.
	Ticks      int // Instructions executed counter.

	dispatch [256]handler // Opcode dispatch table.
}

// NewCpu creates a new CPU printing to the standard output, with memory
// cleared and the stack pointer initialized.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Output: &io.Console{Writer: os.Stdout},
	}

	cpu.dispatch = [256]handler{
		NOP:  cpu.handleNOP,
		HLT:  cpu.handleHLT,
		LDI:  cpu.handleLDI,
		LD:   cpu.handleLD,
		ST:   cpu.handleST,
		PUSH: cpu.handlePUSH,
		POP:  cpu.handlePOP,
		PRN:  cpu.handlePRN,
		PRA:  cpu.handlePRA,
		ADD:  cpu.handleADD,
		SUB:  cpu.handleSUB,
		MUL:  cpu.handleMUL,
		DIV:  cpu.handleDIV,
		MOD:  cpu.handleMOD,
		INC:  cpu.handleINC,
		DEC:  cpu.handleDEC,
		CMP:  cpu.handleCMP,
		AND:  cpu.handleAND,
		NOT:  cpu.handleNOT,
		OR:   cpu.handleOR,
		XOR:  cpu.handleXOR,
		SHL:  cpu.handleSHL,
		SHR:  cpu.handleSHR,
		ADDI: cpu.handleADDI,
		CALL: cpu.handleCALL,
		RET:  cpu.handleRET,
		JMP:  cpu.handleJMP,
		JEQ:  cpu.handleJEQ,
		JNE:  cpu.handleJNE,
	}

	cpu.Reset()

	return
}

// Defines lists the machine constants published to assembly programs.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a single trace line: the
// program counter, the three bytes at it, and the register bank.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("%02X | %02X %02X %02X |",
		cpu.Pc,
		cpu.ramAt(cpu.Pc),
		cpu.ramAt(cpu.Pc+1),
		cpu.ramAt(cpu.Pc+2))

	for _, reg := range cpu.Register {
		text += fmt.Sprintf(" %02X", reg)
	}

	return
}

// Reset returns the CPU to its power-on state.
// - Clears memory, the registers, and the flags.
// - Resets the stack pointer and program counter.
// - Zeros statistics counters.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Ram[:])
	clear(cpu.Register[:])
	clear(cpu.Flags[:])
	cpu.Register[REG_SP] = SP_INIT
	cpu.Pc = 0
	cpu.Running = false
	cpu.Halted = false
	cpu.ProgramEnd = 0
	cpu.Ticks = 0
}

// RamRead returns the byte stored at the address.
func (cpu *Cpu) RamRead(address int) (value uint8, err error) {
	if address < 0 || address >= len(cpu.Ram) {
		err = ErrMemoryRange(address)
		return
	}

	value = cpu.Ram[address]
	return
}

// RamWrite stores a byte at the address.
func (cpu *Cpu) RamWrite(address int, value uint8) (err error) {
	if address < 0 || address >= len(cpu.Ram) {
		return ErrMemoryRange(address)
	}

	cpu.Ram[address] = value
	return
}

// RegRead returns the value of a register.
func (cpu *Cpu) RegRead(reg int) (value uint8, err error) {
	if reg < 0 || reg >= len(cpu.Register) {
		err = ErrRegisterRange(reg)
		return
	}

	value = cpu.Register[reg]
	return
}

// RegWrite stores a value in a register.
func (cpu *Cpu) RegWrite(reg int, value uint8) (err error) {
	if reg < 0 || reg >= len(cpu.Register) {
		return ErrRegisterRange(reg)
	}

	cpu.Register[reg] = value
	return
}

// ramAt reads memory for the trace line, rendering out of range
// addresses as zero.
func (cpu *Cpu) ramAt(address int) (value uint8) {
	if address >= 0 && address < len(cpu.Ram) {
		value = cpu.Ram[address]
	}

	return
}

// Tick executes a single instruction cycle: fetch the instruction at
// the program counter, fetch its operands, dispatch, and advance the
// program counter unless the instruction set it. A fetch, decode, or
// execute failure halts the machine.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		return ErrHalted
	}

	defer func() {
		if err != nil {
			cpu.Running = false
			cpu.Halted = true
		}
	}()

	if cpu.Verbose {
		log.Printf("cpu: %v", cpu)
	}

	ir, err := cpu.RamRead(cpu.Pc)
	if err != nil {
		return
	}

	op := Opcode(ir)
	handle := cpu.dispatch[op]
	if handle == nil {
		return ErrInstruction(op)
	}

	var operand [3]uint8
	for n := range op.Size() - 1 {
		operand[n], err = cpu.RamRead(cpu.Pc + 1 + n)
		if err != nil {
			return
		}
	}

	err = handle(operand[0], operand[1], operand[2])
	if err != nil {
		return
	}

	cpu.Ticks++

	if !op.SetsPC() {
		cpu.Pc += op.Size()
	}

	return
}

// Run executes instructions until the program halts or an instruction
// fails.
func (cpu *Cpu) Run() (err error) {
	if cpu.Halted {
		return ErrHalted
	}

	cpu.Running = true
	for cpu.Running {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

func (cpu *Cpu) handleNOP(_, _, _ uint8) (err error) {
	return
}

func (cpu *Cpu) handleHLT(_, _, _ uint8) (err error) {
	cpu.Running = false
	cpu.Halted = true
	return
}

func (cpu *Cpu) handleLDI(a, b, _ uint8) (err error) {
	return cpu.RegWrite(int(a), b)
}

func (cpu *Cpu) handleLD(a, b, _ uint8) (err error) {
	address, err := cpu.RegRead(int(b))
	if err != nil {
		return
	}

	value, err := cpu.RamRead(int(address))
	if err != nil {
		return
	}

	return cpu.RegWrite(int(a), value)
}

func (cpu *Cpu) handleST(a, b, _ uint8) (err error) {
	address, err := cpu.RegRead(int(a))
	if err != nil {
		return
	}

	value, err := cpu.RegRead(int(b))
	if err != nil {
		return
	}

	return cpu.RamWrite(int(address), value)
}

func (cpu *Cpu) handlePUSH(a, _, _ uint8) (err error) {
	value, err := cpu.RegRead(int(a))
	if err != nil {
		return
	}

	return cpu.push(value)
}

func (cpu *Cpu) handlePOP(a, _, _ uint8) (err error) {
	value, err := cpu.pop()
	if err != nil {
		return
	}

	return cpu.RegWrite(int(a), value)
}

func (cpu *Cpu) handlePRN(a, _, _ uint8) (err error) {
	value, err := cpu.RegRead(int(a))
	if err != nil {
		return
	}

	return cpu.Output.PrintNumber(value)
}

func (cpu *Cpu) handlePRA(a, _, _ uint8) (err error) {
	value, err := cpu.RegRead(int(a))
	if err != nil {
		return
	}

	return cpu.Output.PrintChar(value)
}

func (cpu *Cpu) handleADD(a, b, _ uint8) (err error) {
	return cpu.alu(ALU_OP_ADD, int(a), int(b))
}

func (cpu *Cpu) handleSUB(a, b, _ uint8) (err error) {
	return cpu.alu(ALU_OP_SUB, int(a), int(b))
}

func (cpu *Cpu) handleMUL(a, b, _ uint8) (err error) {
	return cpu.alu(ALU_OP_MUL, int(a), int(b))
}

func (cpu *Cpu) handleDIV(a, b, _ uint8) (err error) {
	return cpu.alu(ALU_OP_DIV, int(a), int(b))
}

func (cpu *Cpu) handleMOD(a, b, _ uint8) (err error) {
	return cpu.alu(ALU_OP_MOD, int(a), int(b))
}

func (cpu *Cpu) handleINC(a, _, _ uint8) (err error) {
	return cpu.alu(ALU_OP_INC, int(a), 0)
}

func (cpu *Cpu) handleDEC(a, _, _ uint8) (err error) {
	return cpu.alu(ALU_OP_DEC, int(a), 0)
}

func (cpu *Cpu) handleCMP(a, b, _ uint8) (err error) {
	return cpu.alu(ALU_OP_CMP, int(a), int(b))
}

func (cpu *Cpu) handleAND(a, b, _ uint8) (err error) {
	return cpu.alu(ALU_OP_AND, int(a), int(b))
}

func (cpu *Cpu) handleNOT(a, _, _ uint8) (err error) {
	return cpu.alu(ALU_OP_NOT, int(a), 0)
}

func (cpu *Cpu) handleOR(a, b, _ uint8) (err error) {
	return cpu.alu(ALU_OP_OR, int(a), int(b))
}

func (cpu *Cpu) handleXOR(a, b, _ uint8) (err error) {
	return cpu.alu(ALU_OP_XOR, int(a), int(b))
}

func (cpu *Cpu) handleSHL(a, b, _ uint8) (err error) {
	return cpu.alu(ALU_OP_SHL, int(a), int(b))
}

func (cpu *Cpu) handleSHR(a, b, _ uint8) (err error) {
	return cpu.alu(ALU_OP_SHR, int(a), int(b))
}

func (cpu *Cpu) handleADDI(a, b, c uint8) (err error) {
	value, err := cpu.RegRead(int(b))
	if err != nil {
		return
	}

	return cpu.RegWrite(int(a), value+c)
}

func (cpu *Cpu) handleCALL(a, _, _ uint8) (err error) {
	err = cpu.push(uint8(cpu.Pc + CALL.Size()))
	if err != nil {
		return
	}

	address, err := cpu.RegRead(int(a))
	if err != nil {
		return
	}

	cpu.Pc = int(address)
	return
}

func (cpu *Cpu) handleRET(_, _, _ uint8) (err error) {
	address, err := cpu.pop()
	if err != nil {
		return
	}

	cpu.Pc = int(address)
	return
}

func (cpu *Cpu) handleJMP(a, _, _ uint8) (err error) {
	address, err := cpu.RegRead(int(a))
	if err != nil {
		return
	}

	cpu.Pc = int(address)
	return
}

func (cpu *Cpu) handleJEQ(a, b, c uint8) (err error) {
	if cpu.Flags[FLAG_EQ] == 1 {
		return cpu.handleJMP(a, b, c)
	}

	cpu.Pc += JEQ.Size()
	return
}

func (cpu *Cpu) handleJNE(a, b, c uint8) (err error) {
	if cpu.Flags[FLAG_EQ] == 0 {
		return cpu.handleJMP(a, b, c)
	}

	cpu.Pc += JNE.Size()
	return
}
