package cpu

// The stack lives in main memory and grows down from SP_INIT. R7 holds
// the address of the current stack top.

func (cpu *Cpu) push(value uint8) (err error) {
	cpu.Register[REG_SP]--
	return cpu.RamWrite(int(cpu.Register[REG_SP]), value)
}

func (cpu *Cpu) pop() (value uint8, err error) {
	value, err = cpu.RamRead(int(cpu.Register[REG_SP]))
	if err != nil {
		return
	}

	cpu.Register[REG_SP]++
	return
}
