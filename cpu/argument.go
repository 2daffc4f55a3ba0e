package cpu

import (
	"fmt"

	"github.com/ezrec/bytec/binrepr"
)

// Argument is an operand as written by the assembler. It renders itself into
// an operand field of a given layout, and reports the overflow word that must
// follow the instruction when it does not fit the field.
type Argument interface {
	// Field returns the operand field bits, unshifted, for the layout.
	Field(ly *binrepr.Layout) uint32
	// Overflow returns the overflow word for the layout, if one is needed.
	Overflow(ly *binrepr.Layout) (value uint32, ok bool)
}

// Immediate is a literal value operand.
type Immediate uint32

// Address is the memory word at a literal address.
type Address uint32

// Indirect is the memory word at the address held in a register.
type Indirect Register

// Displaced is the memory word at the address held in a register plus a
// byte displacement.
type Displaced struct {
	Register Register
	Disp     uint32
}

var (
	_ Argument = Immediate(0)
	_ Argument = Address(0)
	_ Argument = Register(0)
	_ Argument = Indirect(0)
	_ Argument = Displaced{}
)

// literal renders a value that is inline if it fits, or spills otherwise.
func literal(ly *binrepr.Layout, inline, next Kind, value uint32) uint32 {
	if value > ly.Value.Max() {
		return ly.Kind.Encode(uint32(next))
	}
	return ly.Kind.Encode(uint32(inline)) | ly.Value.Encode(value)
}

func (imm Immediate) Field(ly *binrepr.Layout) uint32 {
	return literal(ly, KIND_VALUE, KIND_NEXT_VALUE, uint32(imm))
}

func (imm Immediate) Overflow(ly *binrepr.Layout) (value uint32, ok bool) {
	return uint32(imm), uint32(imm) > ly.Value.Max()
}

func (imm Immediate) String() string {
	return fmt.Sprintf("#%d", uint32(imm))
}

func (addr Address) Field(ly *binrepr.Layout) uint32 {
	return literal(ly, KIND_ADDRESS, KIND_NEXT_ADDRESS, uint32(addr))
}

func (addr Address) Overflow(ly *binrepr.Layout) (value uint32, ok bool) {
	return uint32(addr), uint32(addr) > ly.Value.Max()
}

func (addr Address) String() string {
	return fmt.Sprintf("[%#x]", uint32(addr))
}

func (reg Register) Field(ly *binrepr.Layout) uint32 {
	return ly.Kind.Encode(uint32(KIND_REGISTER)) | ly.Register.Encode(uint32(reg))
}

func (reg Register) Overflow(ly *binrepr.Layout) (value uint32, ok bool) {
	return
}

func (ind Indirect) Field(ly *binrepr.Layout) uint32 {
	return ly.Kind.Encode(uint32(KIND_REGISTER_INDIRECT)) | ly.Register.Encode(uint32(ind))
}

func (ind Indirect) Overflow(ly *binrepr.Layout) (value uint32, ok bool) {
	return
}

func (ind Indirect) String() string {
	return fmt.Sprintf("[%v]", Register(ind))
}

// inline returns true if the displacement can be stored, divided by 4, in
// the field. Otherwise the raw displacement is the overflow word.
func (dsp Displaced) inline(ly *binrepr.Layout) bool {
	return dsp.Disp <= ly.DispMax() && (dsp.Disp%4) == 0
}

func (dsp Displaced) Field(ly *binrepr.Layout) uint32 {
	reg := ly.Register.Encode(uint32(dsp.Register))
	if !dsp.inline(ly) {
		return ly.Kind.Encode(uint32(KIND_REGISTER_NEXT_DISP)) | reg
	}
	return ly.Kind.Encode(uint32(KIND_REGISTER_DISP)) | reg | ly.Disp.Encode(dsp.Disp/4)
}

func (dsp Displaced) Overflow(ly *binrepr.Layout) (value uint32, ok bool) {
	return dsp.Disp, !dsp.inline(ly)
}

func (dsp Displaced) String() string {
	return fmt.Sprintf("[%v+%d]", dsp.Register, dsp.Disp)
}
