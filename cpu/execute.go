package cpu

import (
	"errors"
	"fmt"
)

// Shape is the operand access pattern of an operation.
type Shape int

const (
	SHAPE_BINARY  = Shape(iota) // Read 'from', optionally load 'to', write 'to'.
	SHAPE_COMPARE               // Read both operands, write neither.
	SHAPE_SWAP                  // Load both operands, write both.
	SHAPE_UNARY                 // Optionally load the target, write it.
	SHAPE_OPERAND               // Read the operand, write nothing.
)

// execution is the dispatch entry of an operation.
type execution struct {
	shape Shape
	load  bool // Load the target(s) before the operation.
}

var executionTable = map[Operation]execution{
	OP_ADD:  {shape: SHAPE_BINARY, load: true},
	OP_SUB:  {shape: SHAPE_BINARY, load: true},
	OP_MUL:  {shape: SHAPE_BINARY, load: true},
	OP_MULU: {shape: SHAPE_BINARY, load: true},
	OP_DIV:  {shape: SHAPE_BINARY, load: true},
	OP_DIVU: {shape: SHAPE_BINARY, load: true},
	OP_MOV:  {shape: SHAPE_BINARY},
	OP_AND:  {shape: SHAPE_BINARY, load: true},
	OP_OR:   {shape: SHAPE_BINARY, load: true},
	OP_XOR:  {shape: SHAPE_BINARY, load: true},
	OP_SHL:  {shape: SHAPE_BINARY, load: true},
	OP_RTL:  {shape: SHAPE_BINARY, load: true},
	OP_SHR:  {shape: SHAPE_BINARY, load: true},
	OP_RTR:  {shape: SHAPE_BINARY, load: true},

	OP_CMP: {shape: SHAPE_COMPARE},

	OP_SWP: {shape: SHAPE_SWAP, load: true},

	OP_NEG: {shape: SHAPE_UNARY, load: true},
	OP_INC: {shape: SHAPE_UNARY, load: true},
	OP_DEC: {shape: SHAPE_UNARY, load: true},
	OP_POP: {shape: SHAPE_UNARY},

	OP_PUSH:  {shape: SHAPE_OPERAND},
	OP_JMP:   {shape: SHAPE_OPERAND},
	OP_JMPE:  {shape: SHAPE_OPERAND},
	OP_JMPNE: {shape: SHAPE_OPERAND},
	OP_JMPG:  {shape: SHAPE_OPERAND},
	OP_JMPGE: {shape: SHAPE_OPERAND},
	OP_OUT:   {shape: SHAPE_OPERAND},
}

// Shape returns the operand access pattern of the operation.
func (op Operation) Shape() (shape Shape, ok bool) {
	exec, ok := executionTable[op]
	shape = exec.shape
	return
}

// location is a resolved operand: a register, a memory address, or a value.
type location struct {
	kind     Kind
	register Register
	address  uint32
	value    uint32
}

// resolve computes the location of an operand, fetching its overflow word
// from the program if it has one.
func (cpu *Cpu) resolve(arg Operand) (loc location, err error) {
	loc.kind = arg.Kind

	if arg.Kind.HasRegister() && !arg.Register.Valid() {
		err = ErrRegisterInvalid
		return
	}

	var next uint32
	if arg.Kind.Overflow() {
		var ok bool
		next, ok = cpu.fetch()
		if !ok {
			err = ErrOverflowMissing
			return
		}
	}

	switch arg.Kind {
	case KIND_REGISTER:
		loc.register = arg.Register
	case KIND_REGISTER_INDIRECT:
		loc.address = cpu.Register[arg.Register]
	case KIND_REGISTER_DISP:
		loc.address = cpu.Register[arg.Register] + arg.Value
	case KIND_REGISTER_NEXT_DISP:
		loc.address = cpu.Register[arg.Register] + next
	case KIND_ADDRESS:
		loc.address = arg.Value
	case KIND_NEXT_ADDRESS:
		loc.address = next
	case KIND_VALUE:
		loc.value = arg.Value
	case KIND_NEXT_VALUE:
		loc.value = next
	default:
		err = ErrOperandKind
	}

	return
}

// read returns the value at a location.
func (cpu *Cpu) read(loc location) (value uint32, err error) {
	switch {
	case loc.kind == KIND_REGISTER:
		value = cpu.Register[loc.register]
	case loc.kind.Writable():
		value, err = cpu.Memory.Load(loc.address)
	default:
		value = loc.value
	}

	return
}

// write stores a value to a location.
func (cpu *Cpu) write(loc location, value uint32) (err error) {
	switch {
	case loc.kind == KIND_REGISTER:
		cpu.Register[loc.register] = value
	case loc.kind.Writable():
		err = cpu.Memory.Store(loc.address, value)
	default:
		err = ErrOperandWrite
	}

	return
}

// errArg annotates an operand error with the operand position.
var errArg = [2]error{ErrOpcodeArg1, ErrOpcodeArg2}

// Execute executes a single decoded instruction. Overflow words of the
// operands are consumed from the program in operand order.
func (cpu *Cpu) Execute(insn Instruction) (err error) {
	exec, ok := executionTable[insn.Op]
	if !ok || len(insn.Args) != insn.Op.Arity() {
		err = ErrOpcodeUnknown
		return
	}

	var locs [2]location
	for n, arg := range insn.Args {
		locs[n], err = cpu.resolve(arg)
		if err != nil {
			err = errors.Join(errArg[n], err)
			return
		}
	}

	load := func(n int) (value uint32, err error) {
		value, err = cpu.read(locs[n])
		if err != nil {
			err = errors.Join(errArg[n], err)
		}
		return
	}

	store := func(n int, value uint32) (err error) {
		err = cpu.write(locs[n], value)
		if err != nil {
			err = errors.Join(errArg[n], err)
		}
		return
	}

	// Targets must be writable before any state changes.
	writable := func(n int) (err error) {
		if !locs[n].kind.Writable() {
			err = errors.Join(errArg[n], ErrOperandWrite)
		}
		return
	}

	switch exec.shape {
	case SHAPE_BINARY:
		var operand, target uint32
		if err = writable(1); err != nil {
			return
		}
		if operand, err = load(0); err != nil {
			return
		}
		if exec.load {
			if target, err = load(1); err != nil {
				return
			}
		}
		if target, err = doAlu(insn.Op, operand, target); err != nil {
			return
		}
		err = store(1, target)
	case SHAPE_COMPARE:
		var a, b uint32
		if a, err = load(0); err != nil {
			return
		}
		if b, err = load(1); err != nil {
			return
		}
		cpu.doCompare(a, b)
	case SHAPE_SWAP:
		var a, b uint32
		if err = errors.Join(writable(0), writable(1)); err != nil {
			return
		}
		if a, err = load(0); err != nil {
			return
		}
		if b, err = load(1); err != nil {
			return
		}
		a, b = b, a
		if err = store(0, a); err != nil {
			return
		}
		err = store(1, b)
	case SHAPE_UNARY:
		var target uint32
		if err = writable(0); err != nil {
			return
		}
		if exec.load {
			if target, err = load(0); err != nil {
				return
			}
		}
		if insn.Op == OP_POP {
			target, err = cpu.Pop()
		} else {
			target, err = doUnary(insn.Op, target)
		}
		if err != nil {
			return
		}
		err = store(0, target)
	case SHAPE_OPERAND:
		var value uint32
		if value, err = load(0); err != nil {
			return
		}
		switch insn.Op {
		case OP_PUSH:
			err = cpu.Push(value)
		case OP_OUT:
			err = cpu.doOut(value)
		default:
			err = cpu.doJump(insn.Op, value)
		}
	default:
		panic(fmt.Sprintf("%v: unknown shape %v", insn.Op, exec.shape))
	}

	return
}

// doCompare sets the condition flags from an unsigned compare.
func (cpu *Cpu) doCompare(a, b uint32) {
	cpu.Zero = a == b
	cpu.Greater = a > b
}

// doJump moves the program counter if the jump condition holds.
func (cpu *Cpu) doJump(op Operation, target uint32) (err error) {
	var taken bool

	switch op {
	case OP_JMP:
		taken = true
	case OP_JMPE:
		taken = cpu.Zero
	case OP_JMPNE:
		taken = !cpu.Zero
	case OP_JMPG:
		taken = cpu.Greater
	case OP_JMPGE:
		// Zero OR greater; an AND of the flags could never be taken.
		taken = cpu.Zero || cpu.Greater
	default:
		err = ErrOpcodeOp
		return
	}

	if taken {
		cpu.Pc = target
	}

	return
}

// doOut writes the value as a decimal line.
func (cpu *Cpu) doOut(value uint32) (err error) {
	_, err = fmt.Fprintf(cpu.Output, "%d\n", value)
	return
}
