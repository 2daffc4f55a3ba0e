package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bytec/binrepr"
)

// roundTrip encodes an argument into a field, decodes it back, and fills in
// the overflow word as the interpreter would.
func roundTrip(t *testing.T, ly *binrepr.Layout, arg Argument) (op Operand) {
	assert := assert.New(t)

	field := arg.Field(ly)
	assert.Equal(field, field&(uint32(1)<<ly.Bits-1), "%v: field too wide", arg)

	op = decodeOperand(ly, field)
	next, ok := arg.Overflow(ly)
	assert.Equal(op.Kind.Overflow(), ok, "%v: overflow kind", arg)
	if ok {
		op.Value = next
	}

	return
}

func TestArgumentRoundTrip(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		layout   *binrepr.Layout
		arg      Argument
		expected Operand
	}){
		{"imm12_zero", binrepr.Layout12, Immediate(0), Operand{Kind: KIND_VALUE, Value: 0}},
		{"imm12_max", binrepr.Layout12, Immediate(0x1ff), Operand{Kind: KIND_VALUE, Value: 0x1ff}},
		{"imm12_over", binrepr.Layout12, Immediate(0x200), Operand{Kind: KIND_NEXT_VALUE, Value: 0x200}},
		{"imm12_all", binrepr.Layout12, Immediate(0xffffffff), Operand{Kind: KIND_NEXT_VALUE, Value: 0xffffffff}},
		{"imm24_zero", binrepr.Layout24, Immediate(0), Operand{Kind: KIND_VALUE, Value: 0}},
		{"imm24_max", binrepr.Layout24, Immediate(0x1f_ffff), Operand{Kind: KIND_VALUE, Value: 0x1f_ffff}},
		{"imm24_over", binrepr.Layout24, Immediate(0x20_0000), Operand{Kind: KIND_NEXT_VALUE, Value: 0x20_0000}},
		{"addr12_zero", binrepr.Layout12, Address(0), Operand{Kind: KIND_ADDRESS, Value: 0}},
		{"addr12_max", binrepr.Layout12, Address(0x1ff), Operand{Kind: KIND_ADDRESS, Value: 0x1ff}},
		{"addr12_over", binrepr.Layout12, Address(0x200), Operand{Kind: KIND_NEXT_ADDRESS, Value: 0x200}},
		{"addr24_max", binrepr.Layout24, Address(0x1f_ffff), Operand{Kind: KIND_ADDRESS, Value: 0x1f_ffff}},
		{"addr24_over", binrepr.Layout24, Address(0x20_0000), Operand{Kind: KIND_NEXT_ADDRESS, Value: 0x20_0000}},
		{"reg12_a", binrepr.Layout12, REG_A, Operand{Kind: KIND_REGISTER, Register: REG_A}},
		{"reg12_sp", binrepr.Layout12, REG_SP, Operand{Kind: KIND_REGISTER, Register: REG_SP}},
		{"reg24_h", binrepr.Layout24, REG_H, Operand{Kind: KIND_REGISTER, Register: REG_H}},
		{"reg24_sp", binrepr.Layout24, REG_SP, Operand{Kind: KIND_REGISTER, Register: REG_SP}},
		{"ind12_c", binrepr.Layout12, Indirect(REG_C), Operand{Kind: KIND_REGISTER_INDIRECT, Register: REG_C}},
		{"ind24_sp", binrepr.Layout24, Indirect(REG_SP), Operand{Kind: KIND_REGISTER_INDIRECT, Register: REG_SP}},
		{"disp12_zero", binrepr.Layout12, Displaced{REG_B, 0}, Operand{Kind: KIND_REGISTER_DISP, Register: REG_B, Value: 0}},
		{"disp12_max", binrepr.Layout12, Displaced{REG_B, 124}, Operand{Kind: KIND_REGISTER_DISP, Register: REG_B, Value: 124}},
		{"disp12_over", binrepr.Layout12, Displaced{REG_B, 128}, Operand{Kind: KIND_REGISTER_NEXT_DISP, Register: REG_B, Value: 128}},
		{"disp12_odd", binrepr.Layout12, Displaced{REG_SP, 6}, Operand{Kind: KIND_REGISTER_NEXT_DISP, Register: REG_SP, Value: 6}},
		{"disp24_max", binrepr.Layout24, Displaced{REG_G, 0x7_fffc}, Operand{Kind: KIND_REGISTER_DISP, Register: REG_G, Value: 0x7_fffc}},
		{"disp24_over", binrepr.Layout24, Displaced{REG_G, 0x8_0000}, Operand{Kind: KIND_REGISTER_NEXT_DISP, Register: REG_G, Value: 0x8_0000}},
		{"disp24_odd", binrepr.Layout24, Displaced{REG_G, 0x101}, Operand{Kind: KIND_REGISTER_NEXT_DISP, Register: REG_G, Value: 0x101}},
	}

	for _, entry := range table {
		assert.Equal(entry.expected, roundTrip(t, entry.layout, entry.arg), entry.name)
	}
}

func TestArgumentDisplacement(t *testing.T) {
	assert := assert.New(t)

	ly := binrepr.Layout12

	// Inline displacements are stored divided by 4.
	for k := range uint32(32) {
		dsp := Displaced{Register: REG_D, Disp: 4 * k}
		field := dsp.Field(ly)
		assert.Equal(uint32(KIND_REGISTER_DISP), ly.Kind.Decode(field), k)
		assert.Equal(k, ly.Disp.Decode(field), k)
		_, ok := dsp.Overflow(ly)
		assert.False(ok, k)

		// Not a multiple of 4: the raw value spills.
		for r := uint32(1); r < 4; r++ {
			dsp := Displaced{Register: REG_D, Disp: 4*k + r}
			field := dsp.Field(ly)
			assert.Equal(uint32(KIND_REGISTER_NEXT_DISP), ly.Kind.Decode(field), k)
			assert.Equal(uint32(0), ly.Disp.Decode(field), k)
			next, ok := dsp.Overflow(ly)
			assert.True(ok, k)
			assert.Equal(4*k+r, next, k)
		}
	}

	// Beyond range spills the unscaled value.
	dsp := Displaced{Register: REG_D, Disp: 4 * 32}
	next, ok := dsp.Overflow(ly)
	assert.True(ok)
	assert.Equal(uint32(128), next)
}

func TestArgumentString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("#7", Immediate(7).String())
	assert.Equal("[0x100]", Address(0x100).String())
	assert.Equal("SP", REG_SP.String())
	assert.Equal("[C]", Indirect(REG_C).String())
	assert.Equal("[B+8]", Displaced{REG_B, 8}.String())
	assert.Equal("Register(9)", Register(9).String())
}
