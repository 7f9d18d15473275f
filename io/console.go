package io

import (
	"fmt"
	"io"
)

// Console renders processor output to an io.Writer, decimal numbers one
// per line and characters as a raw stream.
type Console struct {
	Writer io.Writer
}

var _ Output = (*Console)(nil)

// PrintNumber writes the value in decimal followed by a newline.
func (con *Console) PrintNumber(value uint8) (err error) {
	_, err = fmt.Fprintf(con.Writer, "%d\n", value)
	return
}

// PrintChar writes the value as a single character, with no newline.
func (con *Console) PrintChar(value uint8) (err error) {
	_, err = fmt.Fprintf(con.Writer, "%c", value)
	return
}
