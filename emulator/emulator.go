// Copyright 2026, Mark Halls <mark.halls.8@gmail.com>

package emulator

import (
	"iter"
	"log"
	"os"

	"github.com/mark-halls/ls8/cpu"
	"github.com/mark-halls/ls8/io"
)

// Emulator state. CPU + program listing + console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Console io.Console // Console device PRN and PRA print to.
}

// NewEmulator creates a new emulator printing to the standard output.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	emu.Console.Writer = os.Stdout
	emu.Cpu.Output = &emu.Console

	return
}

// Defines returns an iterator over all of the machine defines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return emu.Cpu.Defines()
}

// Reset returns the machine to its power-on state and reloads the
// program image.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset()

	return emu.Cpu.Load(emu.Program)
}

// LineNo returns the source line number of the executing statement.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Statement != nil {
		return dbg.LineNo
	}

	return 0
}

// Code returns the statement at the program counter.
func (emu *Emulator) Code() cpu.Statement {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Statement != nil {
		return *dbg.Statement
	}

	return cpu.Statement{}
}

// Tick performs a single tick of the emulator. done reports that the
// program reached a halt.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	if emu.Verbose {
		log.Printf("%3d: %v", lineno, emu.Code())
	}

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = emu.Cpu.Halted
	return
}

// Run ticks the emulator until the program halts or fails.
func (emu *Emulator) Run() (err error) {
	var done bool
	for !done {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
