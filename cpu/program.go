package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"regexp"
	"strconv"
	"strings"
)

// Statement represents a line of assembled code with its source
// location and generated bytes.
type Statement struct {
	LineNo    int      // Source line number, counting from 1.
	Addr      int      // Memory address of the first byte.
	Words     []string // Source tokens, comments stripped.
	Bytes     []uint8  // Generated machine code.
	LinkLabel string   // Label to resolve into the final byte.
}

// String renders the statement source, falling back to the mnemonic of
// its first byte for statements parsed from an image.
func (st Statement) String() string {
	if len(st.Words) > 0 {
		return strings.Join(st.Words, " ")
	}

	if len(st.Bytes) > 0 {
		return Opcode(st.Bytes[0]).String()
	}

	return ""
}

// Program is an ordered listing of assembled statements.
type Program struct {
	Statements []Statement
}

// Debug is a view of the statement covering a memory address.
type Debug struct {
	*Statement
	Index int
}

func (prog *Program) Debug(address int) (dbg Debug) {
	for n, st := range prog.Statements {
		if address >= st.Addr && address < st.Addr+len(st.Bytes) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     address - st.Addr,
			}
			break
		}
	}

	return
}

// Binary returns the program as a flat memory image.
func (prog *Program) Binary() (bin []uint8) {
	for address, value := range prog.Bytes() {
		for len(bin) < address {
			bin = append(bin, 0)
		}
		bin = append(bin, value)
	}

	return
}

// Bytes yields each generated byte with its memory address.
func (prog *Program) Bytes() iter.Seq2[int, uint8] {
	return func(yield func(address int, value uint8) bool) {
		for _, st := range prog.Statements {
			for n, value := range st.Bytes {
				if !yield(st.Addr+n, value) {
					return
				}
			}
		}
	}
}

var reImageByte = regexp.MustCompile(`^[0-9]+`)

// ParseImage reads a memory image in the textual LS-8 format: one
// binary byte per line, anything after the digits ignored. Lines that
// do not begin with a digit are skipped.
func ParseImage(input io.Reader) (prog *Program, err error) {
	prog = &Program{}

	var address int
	var lineno int

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := scanner.Text()
		lineno += 1

		token := reImageByte.FindString(line)
		if len(token) == 0 {
			continue
		}

		value, verr := strconv.ParseUint(token, 2, 8)
		if verr != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: ErrParseBinary(token)}
			return
		}

		prog.Statements = append(prog.Statements, Statement{
			LineNo: lineno,
			Addr:   address,
			Bytes:  []uint8{uint8(value)},
		})
		address += 1
	}
	err = scanner.Err()

	return
}

// WriteImage writes the program in the textual LS-8 format, one binary
// byte per line. The source statement rides along as a comment on its
// first byte.
func (prog *Program) WriteImage(output io.Writer) (err error) {
	for _, st := range prog.Statements {
		for n, value := range st.Bytes {
			if n == 0 && len(st.Words) > 0 {
				_, err = fmt.Fprintf(output, "%08b # %v\n", value, strings.Join(st.Words, " "))
			} else {
				_, err = fmt.Fprintf(output, "%08b\n", value)
			}
			if err != nil {
				return
			}
		}
	}

	return
}

// Load copies the program image into memory starting at address zero,
// and records where it ends.
func (cpu *Cpu) Load(prog *Program) (err error) {
	end := 0
	for address, value := range prog.Bytes() {
		err = cpu.RamWrite(address, value)
		if err != nil {
			return errors.Join(ErrProgramSize, err)
		}

		if address+1 > end {
			end = address + 1
		}
	}

	cpu.ProgramEnd = end
	return
}
