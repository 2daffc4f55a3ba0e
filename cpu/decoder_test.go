package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeWords(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		op    Operation
		args  []Argument
		words []uint32
	}){
		{"mov_imm_a", OP_MOV, []Argument{Immediate(7), REG_A}, []uint32{0x06c0_7000}},
		{"add_imm_a", OP_ADD, []Argument{Immediate(3), REG_A}, []uint32{0x00c0_3000}},
		{"out_a", OP_OUT, []Argument{REG_A}, []uint32{0x1a00_0000}},
		{"out_next", OP_OUT, []Argument{Immediate(0x20_0000)}, []uint32{0x1ae0_0000, 0x20_0000}},
		{"mov_next", OP_MOV, []Argument{Immediate(0x20_0000), REG_A}, []uint32{0x06e0_0000, 0x20_0000}},
		{"push_disp", OP_PUSH, []Argument{Displaced{REG_B, 8}}, []uint32{0x0842_0002}},
		{"mov_disp_addr", OP_MOV, []Argument{Displaced{REG_SP, 6}, Address(0x10)}, []uint32{0x0670_0810, 6}},
		{"swp_both_next", OP_SWP, []Argument{Address(0x1000), Displaced{REG_C, 0x1000}}, []uint32{0x07a0_0640, 0x1000, 0x1000}},
		{"cmp_ind", OP_CMP, []Argument{Indirect(REG_H), REG_SP}, []uint32{0x172e_0100}},
	}

	for _, entry := range table {
		words, err := Encode(entry.op, entry.args...)
		assert.NoError(err, entry.name)
		assert.Equal(entry.words, words, entry.name)
	}
}

func TestEncodeArity(t *testing.T) {
	assert := assert.New(t)

	_, err := Encode(OP_MOV, REG_A)
	assert.ErrorIs(err, ErrOperandMissing)

	_, err = Encode(OP_OUT, REG_A, REG_B)
	assert.ErrorIs(err, ErrOpcodeExtraArgs)

	_, err = Encode(Operation(0x80), REG_A)
	assert.ErrorIs(err, ErrOpcodeUnknown)

	assert.Panics(func() { Encode2(OP_OUT, REG_A, REG_B) })
	assert.Panics(func() { Encode1(OP_ADD, REG_A) })
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	insn, err := Decode(0x0670_0810)
	assert.NoError(err)
	assert.Equal(OP_MOV, insn.Op)
	assert.Equal([]Operand{
		{Kind: KIND_REGISTER_NEXT_DISP, Register: REG_SP},
		{Kind: KIND_ADDRESS, Value: 0x10},
	}, insn.Args)
	assert.Equal(1, insn.Overflows())
	assert.Equal("MOV [SP+?] -> [0x10]", insn.String())

	insn, err = Decode(0x0842_0002)
	assert.NoError(err)
	assert.Equal(OP_PUSH, insn.Op)
	assert.Equal([]Operand{{Kind: KIND_REGISTER_DISP, Register: REG_B, Value: 8}}, insn.Args)
	assert.Equal(0, insn.Overflows())
	assert.Equal("PUSH [B+8]", insn.String())

	insn, err = Decode(0x1ae0_0000)
	assert.NoError(err)
	assert.Equal("OUT #?", insn.String())

	// Register indexes beyond SP decode, and fault when executed.
	insn, err = Decode(0x0612_0000)
	assert.NoError(err)
	assert.Equal(Register(9), insn.Args[0].Register)
	assert.False(insn.Args[0].Register.Valid())
}

func TestDecodeUnknown(t *testing.T) {
	assert := assert.New(t)

	for op := OP_COUNT; op < 0x100; op++ {
		_, err := Decode(uint32(op) << 24)
		assert.ErrorIs(err, ErrOpcodeUnknown, op)
	}
}

func TestDecodeAllOperations(t *testing.T) {
	assert := assert.New(t)

	for n := range OP_COUNT {
		op := Operation(n)
		var words []uint32
		var err error
		switch op.Arity() {
		case 1:
			words, err = Encode(op, REG_C)
		case 2:
			words, err = Encode(op, Immediate(1), REG_C)
		}
		assert.NoError(err, op)

		insn, err := Decode(words[0])
		assert.NoError(err, op)
		assert.Equal(op, insn.Op)
		assert.Equal(op.Arity(), len(insn.Args), op)

		shape, ok := op.Shape()
		assert.True(ok, op)
		switch shape {
		case SHAPE_BINARY, SHAPE_COMPARE, SHAPE_SWAP:
			assert.Equal(2, op.Arity(), op)
		default:
			assert.Equal(1, op.Arity(), op)
		}
	}
}

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		words []uint32
		text  string
		used  int
	}){
		{[]uint32{0x06c0_7000}, "MOV #7 -> A", 1},
		{[]uint32{0x0670_0810, 6, 0xdead}, "MOV [SP+6] -> [0x10]", 2},
		{[]uint32{0x07a0_0640, 0x1000, 0x2000}, "SWP [0x1000] -> [C+8192]", 3},
		{[]uint32{0x1ae0_0000, 0x20_0000}, "OUT #2097152", 2},
		{[]uint32{0x1a00_0000}, "OUT A", 1},
	}

	for _, entry := range table {
		text, used, err := Disassemble(entry.words)
		assert.NoError(err, entry.text)
		assert.Equal(entry.text, text)
		assert.Equal(entry.used, used, entry.text)
	}

	_, _, err := Disassemble([]uint32{0x1ae0_0000})
	assert.ErrorIs(err, ErrOverflowMissing)

	_, _, err = Disassemble(nil)
	assert.ErrorIs(err, ErrPcEmpty)
}
