// Package io provides output device implementations for the LS-8 emulator.
// The processor prints through an Output device; Console renders to any
// io.Writer.
package io

// Output defines the interface for devices the LS-8 processor prints to.
type Output interface {
	// PrintNumber writes the value as a decimal number on its own line.
	PrintNumber(value uint8) error
	// PrintChar writes the value as a single ASCII character.
	PrintChar(value uint8) error
}
