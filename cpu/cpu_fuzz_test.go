package cpu

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzCpu(f *testing.F) {
	for op := range OP_COUNT + 1 {
		f.Add(uint32(op)<<24, uint32(0))
		f.Add(uint32(op)<<24|0x00ff_ffff, uint32(0x3fc))
		f.Add(uint32(op)<<24|0x00e0_0e00, uint32(0xffff_ffff))
	}

	f.Fuzz(func(t *testing.T, word uint32, next uint32) {
		assert := assert.New(t)

		prog := &Program{}
		prog.Append(word, next, next)

		cpu := NewCpu(1024)
		cpu.Program = prog
		cpu.Output = &bytes.Buffer{}

		insn, decodeErr := Decode(word)

		err := cpu.Tick()
		if decodeErr != nil {
			assert.ErrorIs(err, ErrOpcodeUnknown)
			return
		}

		// Never consumes more than its own overflow words.
		jump := insn.Op >= OP_JMP && insn.Op <= OP_JMPGE
		if err == nil && !jump {
			assert.Equal(uint32(1+insn.Overflows()), cpu.Pc, insn.String())
		}
		if err != nil {
			assert.True(errors.Is(err, ErrInstruction{}), err.Error())
		}
	})
}
