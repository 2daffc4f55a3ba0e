package cpu

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"os"
)

// Cpu is the simulation context of the bytec processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Program *Program  // Program being executed.
	Output  io.Writer // Destination of OUT.

	Pc       uint32                 // Program counter, a word index into Program.
	Register [REGISTER_COUNT]uint32 // Register bank; REG_SP is the stack register.
	Memory   *Memory                // Byte-addressed memory.
	Zero     bool                   // Set by CMP when a == b.
	Greater  bool                   // Set by CMP when a > b, unsigned.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU with a specifically sized memory.
func NewCpu(memorySize uint32) (cpu *Cpu) {
	cpu = &Cpu{
		Program: &Program{},
		Output:  os.Stdout,
		Memory:  NewMemory(memorySize),
	}

	cpu.Reset()

	return
}

// Defines for the cpu.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	defines := map[string]string{
		"WORD_SIZE":   fmt.Sprintf("%v", WORD_SIZE),
		"MEMORY_SIZE": fmt.Sprintf("%#x", cpu.Memory.Size()),
		"STACK_TOP":   fmt.Sprintf("%#x", cpu.Memory.Size()),
	}
	return maps.All(defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	flag := func(set bool, name string) string {
		if set {
			return name
		}
		return "-"
	}

	text += fmt.Sprintf("% 5s: %08x\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %v%v\n", "flags", flag(cpu.Zero, "Z"), flag(cpu.Greater, "G"))
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: %04X_%04X\n", Register(n).String(), val>>16, val&0xffff)
	}

	if val, ok := cpu.Peek(); ok {
		text += fmt.Sprintf("% 5s: %04X_%04X\n", "stack", val>>16, val&0xffff)
	} else {
		text += fmt.Sprintf("% 5s: ----_----\n", "stack")
	}

	return
}

// Reset the CPU state.
// - Clears the registers, flags and memory.
// - Points SP at the top of memory.
// - Zeros the program counter and tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.Memory.Reset()
	cpu.Register[REG_SP] = cpu.Memory.Size()
	cpu.Pc = 0
	cpu.Zero = false
	cpu.Greater = false
	cpu.Ticks = 0
}

// fetch returns the program word at the program counter, and advances it.
func (cpu *Cpu) fetch() (word uint32, ok bool) {
	word, ok = cpu.Program.At(cpu.Pc)
	if ok {
		cpu.Pc++
	}
	return
}

// Tick executes a single instruction.
// ErrPcEmpty is returned when the program counter is past the end of the
// program.
func (cpu *Cpu) Tick() (err error) {
	pc := cpu.Pc

	word, ok := cpu.fetch()
	if !ok {
		err = ErrPcEmpty
		return
	}

	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction{Pc: pc, Word: word}, err)
		}
	}()

	insn, err := Decode(word)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%03x: %v", pc, insn)
	}

	err = cpu.Execute(insn)
	if err != nil {
		return
	}

	cpu.Ticks++

	return
}
