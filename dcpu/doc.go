// Package dcpu implements an assembler and disassembler for the DCPU-16
// (v1.1) instruction set.
//
// An instruction is a 16-bit opcode word optionally followed by one
// literal word per operand that needs one. Basic instructions carry a
// 4-bit opcode and two 6-bit operand fields (a, then b); non-basic
// instructions carry a zero opcode nibble, a 6-bit sub-opcode and a
// single operand field.
//
// The assembler is a two pass assembler supporting labels, the DAT data
// directive, and compile-time $(...) expressions over predefined constants.
package dcpu
