package cpu

import (
	"bytes"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Append(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{}
	assert.Equal(0, prog.Len())

	_, ok := prog.At(0)
	assert.False(ok)

	prog.Append(1, 2)
	prog.Append(3)
	assert.Equal(3, prog.Len())

	word, ok := prog.At(2)
	assert.True(ok)
	assert.Equal(uint32(3), word)

	_, ok = prog.At(3)
	assert.False(ok)

	_, ok = prog.At(0xffff_ffff)
	assert.False(ok)

	assert.Equal(map[uint32]uint32{0: 1, 1: 2, 2: 3}, maps.Collect(prog.Words()))
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Pc: 0, Words: []string{"MOV", "#7", "->", "A"},
				Codes: Encode2(OP_MOV, Immediate(7), REG_A)},
			{LineNo: 2, Pc: 1, Words: []string{"MOV", "#0x1000", "->", "[0x1000]"},
				Codes: Encode2(OP_MOV, Immediate(0x1000), Address(0x1000))},
			{LineNo: 4, Pc: 4, Words: []string{"OUT", "A"},
				Codes: Encode1(OP_OUT, REG_A)},
		},
	}

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(3)
	assert.NotNil(dbg.Opcode)
	assert.Equal(2, dbg.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(4)
	assert.NotNil(dbg.Opcode)
	assert.Equal(4, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(5)
	assert.Nil(dbg.Opcode)
	assert.Equal(0, dbg.Index)
}

func TestProgram_Image(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{}
	prog.Mov(Immediate(0x1234_5678), REG_A)
	prog.Out(REG_A)

	buff := &bytes.Buffer{}
	n, err := prog.WriteTo(buff)
	assert.NoError(err)
	assert.Equal(int64(12), n)
	assert.Equal([]byte{
		0x00, 0x00, 0xe0, 0x06,
		0x78, 0x56, 0x34, 0x12,
		0x00, 0x00, 0x00, 0x1a,
	}, buff.Bytes())

	loaded := &Program{}
	n, err = loaded.ReadFrom(bytes.NewReader(buff.Bytes()))
	assert.NoError(err)
	assert.Equal(int64(12), n)
	assert.Equal(maps.Collect(prog.Words()), maps.Collect(loaded.Words()))
	assert.Nil(loaded.Opcodes)
}

func TestProgram_ImagePartial(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{}
	n, err := prog.ReadFrom(bytes.NewReader([]byte{1, 0, 0, 0, 2, 0}))
	assert.ErrorIs(err, ErrProgramPartial)
	assert.Equal(int64(6), n)
	assert.Equal(1, prog.Len())

	prog = &Program{}
	n, err = prog.ReadFrom(bytes.NewReader(nil))
	assert.NoError(err)
	assert.Equal(int64(0), n)
	assert.Equal(0, prog.Len())
}
