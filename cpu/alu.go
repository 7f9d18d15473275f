package cpu

// AluOp is an ALU operation type.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_ADD = AluOp(0)  // add
	ALU_OP_SUB = AluOp(1)  // sub
	ALU_OP_MUL = AluOp(2)  // mul
	ALU_OP_DIV = AluOp(3)  // div
	ALU_OP_MOD = AluOp(4)  // mod
	ALU_OP_INC = AluOp(5)  // inc
	ALU_OP_DEC = AluOp(6)  // dec
	ALU_OP_CMP = AluOp(7)  // cmp
	ALU_OP_AND = AluOp(8)  // and
	ALU_OP_NOT = AluOp(9)  // not
	ALU_OP_OR  = AluOp(10) // or
	ALU_OP_XOR = AluOp(11) // xor
	ALU_OP_SHL = AluOp(12) // shl
	ALU_OP_SHR = AluOp(13) // shr
)

// alu performs the requested ALU action on registers a and b, storing
// the result in register a. Arithmetic wraps to eight bits. CMP writes
// the flags vector and leaves the registers alone.
func (cpu *Cpu) alu(op AluOp, a, b int) (err error) {
	ra, err := cpu.RegRead(a)
	if err != nil {
		return
	}
	rb, err := cpu.RegRead(b)
	if err != nil {
		return
	}

	var out uint8
	switch op {
	case ALU_OP_ADD:
		out = ra + rb
	case ALU_OP_SUB:
		out = ra - rb
	case ALU_OP_MUL:
		out = ra * rb
	case ALU_OP_DIV:
		if rb == 0 {
			err = ErrDivideByZero
			return
		}
		out = ra / rb
	case ALU_OP_MOD:
		if rb == 0 {
			err = ErrDivideByZero
			return
		}
		out = ra % rb
	case ALU_OP_INC:
		out = ra + 1
	case ALU_OP_DEC:
		out = ra - 1
	case ALU_OP_CMP:
		cpu.Flags[FLAG_LT] = 0
		cpu.Flags[FLAG_GT] = 0
		cpu.Flags[FLAG_EQ] = 0
		switch {
		case ra == rb:
			cpu.Flags[FLAG_EQ] = 1
		case ra < rb:
			cpu.Flags[FLAG_LT] = 1
		default:
			cpu.Flags[FLAG_GT] = 1
		}
		return
	case ALU_OP_AND:
		out = ra & rb
	case ALU_OP_NOT:
		out = ^ra
	case ALU_OP_OR:
		out = ra | rb
	case ALU_OP_XOR:
		out = ra ^ rb
	case ALU_OP_SHL:
		out = ra << rb
	case ALU_OP_SHR:
		out = ra >> rb
	default:
		err = ErrAluInvalid
		return
	}

	return cpu.RegWrite(a, out)
}
