// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package binrepr holds the bit-field layout of a bytec instruction word.
//
// An instruction word is 32 bits. The top 8 bits are the operation code, and
// the low 24 bits hold either two 12-bit operand fields or a single 24-bit
// operand field. Each operand field is a 3-bit kind followed by a payload.
package binrepr

// Field is a mask and shift pair describing one bit-field of a word.
type Field struct {
	Mask  uint32 // Mask of the field bits, in place.
	Shift uint8  // Position of the least significant bit of the field.
}

// Decode extracts the field from a word.
func (fd Field) Decode(word uint32) uint32 {
	return (word & fd.Mask) >> fd.Shift
}

// Encode places a value into the field position.
// Bits of value that do not fit the field are discarded.
func (fd Field) Encode(value uint32) uint32 {
	return (value << fd.Shift) & fd.Mask
}

// Max is the largest value the field can hold.
func (fd Field) Max() uint32 {
	return fd.Mask >> fd.Shift
}

// Instruction word fields.
var (
	Operation = Field{Mask: 0xff_00_00_00, Shift: 24} // Operation code.
	Arg0      = Field{Mask: 0x00_ff_f0_00, Shift: 12} // First ('from') 12-bit operand.
	Arg1      = Field{Mask: 0x00_00_0f_ff, Shift: 0}  // Second ('to') 12-bit operand.
	Arg       = Field{Mask: 0x00_ff_ff_ff, Shift: 0}  // Single 24-bit operand.
)

// Layout is the set of sub-fields of an operand field of a given width.
type Layout struct {
	Bits     int   // Width of the operand field.
	Kind     Field // Operand kind tag.
	Value    Field // Inline value or address.
	Register Field // Register index.
	Disp     Field // Inline displacement, divided by 4.
}

// Operand field layouts.
var (
	Layout12 = &Layout{
		Bits:     12,
		Kind:     Field{Mask: 0xe_00, Shift: 9},
		Value:    Field{Mask: 0x1_ff, Shift: 0},
		Register: Field{Mask: 0x1_e0, Shift: 5},
		Disp:     Field{Mask: 0x0_1f, Shift: 0},
	}
	Layout24 = &Layout{
		Bits:     24,
		Kind:     Field{Mask: 0xe0_00_00, Shift: 21},
		Value:    Field{Mask: 0x1f_ff_ff, Shift: 0},
		Register: Field{Mask: 0x1e_00_00, Shift: 17},
		Disp:     Field{Mask: 0x01_ff_ff, Shift: 0},
	}
)

// DispMax is the largest true displacement encodable inline.
func (ly *Layout) DispMax() uint32 {
	return ly.Disp.Max() * 4
}
