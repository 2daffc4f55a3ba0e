package cpu

import (
	"encoding/binary"
	"errors"
	"io"
	"iter"
)

// Opcode is a line of assembled code with its source location and generated words.
type Opcode struct {
	LineNo int      // Source line number.
	Pc     int      // Program index of the first word.
	Words  []string // Source words of the line.
	Codes  []uint32 // Instruction word and overflow words.
	Links  []Link   // Overflow words to be patched with label values.
}

// Link is a reference from an overflow word to a label.
type Link struct {
	Index int    // Index into Opcode.Codes.
	Label string // Label name.
}

// Program is an append-only store of instruction words, addressed by word index.
type Program struct {
	Opcodes []Opcode // Assembly listing, if the program came from the assembler.

	words []uint32
}

// Debug maps a program index back to the assembly listing.
type Debug struct {
	*Opcode
	Index int
}

// Append appends words to the program.
func (prog *Program) Append(words ...uint32) {
	prog.words = append(prog.words, words...)
}

// Len returns the number of words in the program.
func (prog *Program) Len() int {
	return len(prog.words)
}

// At returns the word at a program index.
func (prog *Program) At(pc uint32) (word uint32, ok bool) {
	if uint64(pc) >= uint64(len(prog.words)) {
		return
	}

	return prog.words[pc], true
}

// Words iterates over the program index and word of every program word.
func (prog *Program) Words() iter.Seq2[uint32, uint32] {
	return func(yield func(pc uint32, word uint32) bool) {
		for n, word := range prog.words {
			if !yield(uint32(n), word) {
				return
			}
		}
	}
}

// Debug finds the listing entry that generated the word at pc.
func (prog *Program) Debug(pc uint32) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if pc >= uint32(op.Pc) && pc < uint32(op.Pc+len(op.Codes)) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(pc - uint32(op.Pc)),
			}
			break
		}
	}

	return
}

// WriteTo writes the program as a little-endian binary image.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	buff := make([]byte, 0, 4*len(prog.words))
	for _, word := range prog.words {
		buff = binary.LittleEndian.AppendUint32(buff, word)
	}

	wrote, err := w.Write(buff)
	n = int64(wrote)

	return
}

// ReadFrom appends the words of a little-endian binary image.
func (prog *Program) ReadFrom(r io.Reader) (n int64, err error) {
	var word [4]byte
	for {
		var got int
		got, err = io.ReadFull(r, word[:])
		n += int64(got)
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			err = ErrProgramPartial
			return
		}
		if err != nil {
			return
		}
		prog.Append(binary.LittleEndian.Uint32(word[:]))
	}
}
