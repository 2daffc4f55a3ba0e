package cpu

import (
	"fmt"

	"github.com/ezrec/bytec/binrepr"
)

// Encode2 encodes a two-operand instruction, followed by the overflow words
// of 'from' and then 'to', if any.
func Encode2(op Operation, from, to Argument) (words []uint32) {
	if op.Arity() != 2 {
		panic(fmt.Sprintf("%v is not a two-operand operation", op))
	}

	ly := binrepr.Layout12
	words = append(words, binrepr.Operation.Encode(uint32(op))|
		binrepr.Arg0.Encode(from.Field(ly))|
		binrepr.Arg1.Encode(to.Field(ly)))

	for _, arg := range [...]Argument{from, to} {
		if value, ok := arg.Overflow(ly); ok {
			words = append(words, value)
		}
	}

	return
}

// Encode1 encodes a one-operand instruction, followed by the overflow word
// of the target, if any.
func Encode1(op Operation, target Argument) (words []uint32) {
	if op.Arity() != 1 {
		panic(fmt.Sprintf("%v is not a one-operand operation", op))
	}

	ly := binrepr.Layout24
	words = append(words, binrepr.Operation.Encode(uint32(op))|
		binrepr.Arg.Encode(target.Field(ly)))

	if value, ok := target.Overflow(ly); ok {
		words = append(words, value)
	}

	return
}

// Encode encodes an instruction of either layout, selected by the arity of
// the operation.
func Encode(op Operation, args ...Argument) (words []uint32, err error) {
	if !op.Valid() {
		err = ErrOpcodeUnknown
		return
	}

	switch {
	case len(args) < op.Arity():
		err = ErrOperandMissing
	case len(args) > op.Arity():
		err = ErrOpcodeExtraArgs
	case len(args) == 1:
		words = Encode1(op, args[0])
	default:
		words = Encode2(op, args[0], args[1])
	}

	return
}

func (prog *Program) append2(op Operation, from, to Argument) {
	prog.Append(Encode2(op, from, to)...)
}

func (prog *Program) append1(op Operation, target Argument) {
	prog.Append(Encode1(op, target)...)
}

// Add appends 'to += from'.
func (prog *Program) Add(from, to Argument) { prog.append2(OP_ADD, from, to) }

// Sub appends 'to -= from'.
func (prog *Program) Sub(from, to Argument) { prog.append2(OP_SUB, from, to) }

// Mul appends a signed 'to *= from'.
func (prog *Program) Mul(from, to Argument) { prog.append2(OP_MUL, from, to) }

// MulU appends an unsigned 'to *= from'.
func (prog *Program) MulU(from, to Argument) { prog.append2(OP_MULU, from, to) }

// Div appends a signed 'to /= from'.
func (prog *Program) Div(from, to Argument) { prog.append2(OP_DIV, from, to) }

// DivU appends an unsigned 'to /= from'.
func (prog *Program) DivU(from, to Argument) { prog.append2(OP_DIVU, from, to) }

// Mov appends 'to = from'.
func (prog *Program) Mov(from, to Argument) { prog.append2(OP_MOV, from, to) }

// Swp appends an exchange of 'from' and 'to'.
func (prog *Program) Swp(from, to Argument) { prog.append2(OP_SWP, from, to) }

func (prog *Program) Push(target Argument) { prog.append1(OP_PUSH, target) }
func (prog *Program) Pop(target Argument)  { prog.append1(OP_POP, target) }

func (prog *Program) Jmp(target Argument)   { prog.append1(OP_JMP, target) }
func (prog *Program) Jmpe(target Argument)  { prog.append1(OP_JMPE, target) }
func (prog *Program) Jmpne(target Argument) { prog.append1(OP_JMPNE, target) }
func (prog *Program) Jmpg(target Argument)  { prog.append1(OP_JMPG, target) }
func (prog *Program) Jmpge(target Argument) { prog.append1(OP_JMPGE, target) }

func (prog *Program) And(from, to Argument) { prog.append2(OP_AND, from, to) }
func (prog *Program) Or(from, to Argument)  { prog.append2(OP_OR, from, to) }
func (prog *Program) Xor(from, to Argument) { prog.append2(OP_XOR, from, to) }
func (prog *Program) Neg(target Argument)   { prog.append1(OP_NEG, target) }

func (prog *Program) Shl(from, to Argument) { prog.append2(OP_SHL, from, to) }
func (prog *Program) Rtl(from, to Argument) { prog.append2(OP_RTL, from, to) }
func (prog *Program) Shr(from, to Argument) { prog.append2(OP_SHR, from, to) }
func (prog *Program) Rtr(from, to Argument) { prog.append2(OP_RTR, from, to) }

// Cmp appends a compare of 'a' against 'b', setting the zero and greater flags.
func (prog *Program) Cmp(a, b Argument) { prog.append2(OP_CMP, a, b) }

func (prog *Program) Inc(target Argument) { prog.append1(OP_INC, target) }
func (prog *Program) Dec(target Argument) { prog.append1(OP_DEC, target) }

// Out appends an output of the operand's value as a decimal line.
func (prog *Program) Out(target Argument) { prog.append1(OP_OUT, target) }
