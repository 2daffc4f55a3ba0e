package cpu

import (
	"encoding/binary"
)

const (
	WORD_SIZE   = 4         // Bytes per memory word.
	MEMORY_SIZE = 64 * 1024 // Default memory size, in bytes.
)

// Memory is a flat, byte-addressed memory of 32-bit little-endian words.
type Memory struct {
	Data []byte
}

// NewMemory creates a zeroed memory of size bytes.
func NewMemory(size uint32) *Memory {
	return &Memory{Data: make([]byte, size)}
}

// Size returns the memory size in bytes.
func (mem *Memory) Size() uint32 {
	return uint32(len(mem.Data))
}

func (mem *Memory) check(addr uint32) (err error) {
	if uint64(addr)+WORD_SIZE > uint64(len(mem.Data)) {
		err = ErrMemoryFault
	}
	return
}

// Load reads the word at a byte address.
func (mem *Memory) Load(addr uint32) (value uint32, err error) {
	err = mem.check(addr)
	if err != nil {
		return
	}

	value = binary.LittleEndian.Uint32(mem.Data[addr:])
	return
}

// Store writes the word at a byte address.
func (mem *Memory) Store(addr uint32, value uint32) (err error) {
	err = mem.check(addr)
	if err != nil {
		return
	}

	binary.LittleEndian.PutUint32(mem.Data[addr:], value)
	return
}

// Reset zeros the memory.
func (mem *Memory) Reset() {
	clear(mem.Data)
}
