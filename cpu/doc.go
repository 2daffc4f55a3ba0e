// Package cpu implements the bytec microprocessor, its instruction encoder,
// decoder and assembler.
//
// An instruction is a single 32-bit word: an 8-bit operation code followed by
// either two 12-bit operand fields ('from' and 'to') or a single 24-bit
// operand field. Operands that do not fit their field spill into overflow
// words that immediately follow the instruction word, in operand order.
//
// The CPU has eight 32-bit general-purpose registers (A-H), a stack register
// (SP), a byte-addressed memory, a word-indexed program counter, and two
// condition flags (zero and greater) set by CMP and consumed by the
// conditional jumps.
//
// The assembler provides a line oriented assembly language supporting labels,
// equates, macros and compile-time expression evaluation.
package cpu
