package cpu

// The stack lives in memory and grows down from the top, addressed by SP.
// SP points at the most recently pushed word.

// Push stores a word below SP and moves SP down to it.
func (cpu *Cpu) Push(value uint32) (err error) {
	sp := cpu.Register[REG_SP] - WORD_SIZE
	err = cpu.Memory.Store(sp, value)
	if err != nil {
		return
	}

	cpu.Register[REG_SP] = sp
	return
}

// Pop loads the word at SP and moves SP up past it.
func (cpu *Cpu) Pop() (value uint32, err error) {
	sp := cpu.Register[REG_SP]
	value, err = cpu.Memory.Load(sp)
	if err != nil {
		return
	}

	cpu.Register[REG_SP] = sp + WORD_SIZE
	return
}

// Peek loads the word at SP without moving it.
func (cpu *Cpu) Peek() (value uint32, ok bool) {
	value, err := cpu.Memory.Load(cpu.Register[REG_SP])
	ok = err == nil
	return
}

// StackDepth returns the number of words pushed below the top of memory.
func (cpu *Cpu) StackDepth() int {
	top := cpu.Memory.Size()
	sp := cpu.Register[REG_SP]
	if sp >= top {
		return 0
	}
	return int((top - sp) / WORD_SIZE)
}
