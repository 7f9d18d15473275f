// Package cpu implements the microprocessor and assembler for the LS-8 system.
//
// The CPU consists of a program counter, eight 8-bit general-purpose registers
// (R0-R7, with R7 reserved for the stack pointer), an ALU, a memory-resident
// stack, and a flags vector written by comparisons. Instructions are single
// bytes that encode their own operand count and whether they set the program
// counter.
//
// The assembler provides an assembly language for the LS-8 instruction set,
// supporting macros, labels, equates, and compile-time expression evaluation.
// Programs also load from and save to the textual memory image format, one
// binary byte per line.
package cpu
