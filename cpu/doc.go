// Package cpu implements the virtual machine core and its assembler.
//
// The machine is a single 8-bit processor: four general-purpose
// registers, a 16-bit program counter, and a 64KB byte-addressable
// memory holding the program image, the display region, and the input
// status cell. Execution is a synchronous fetch-decode-execute loop
// that calls the injected presentation adapter once per iteration.
//
// The assembler provides a small assembly language for the instruction
// set, supporting labels, equates, and compile-time expression
// evaluation.
package cpu
