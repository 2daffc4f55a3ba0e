package cpu

import (
	"fmt"
	"strings"

	"github.com/ezrec/bytec/binrepr"
)

// Operand is a decoded operand field.
//
// Register is set for the register kinds. Value holds the inline value
// (KIND_VALUE), the inline address (KIND_ADDRESS), or the true byte
// displacement (KIND_REGISTER_DISP). Overflow kinds carry no value; it is
// fetched from the program when the operand is resolved.
type Operand struct {
	Kind     Kind
	Register Register
	Value    uint32
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Word uint32
	Op   Operation
	Args []Operand
}

// decodeOperand unpacks an operand field of the given layout.
func decodeOperand(ly *binrepr.Layout, field uint32) (arg Operand) {
	arg.Kind = Kind(ly.Kind.Decode(field))

	switch arg.Kind {
	case KIND_REGISTER, KIND_REGISTER_INDIRECT, KIND_REGISTER_NEXT_DISP:
		arg.Register = Register(ly.Register.Decode(field))
	case KIND_REGISTER_DISP:
		arg.Register = Register(ly.Register.Decode(field))
		arg.Value = ly.Disp.Decode(field) * 4
	case KIND_ADDRESS, KIND_VALUE:
		arg.Value = ly.Value.Decode(field)
	case KIND_NEXT_ADDRESS, KIND_NEXT_VALUE:
		// Resolved from the following word.
	}

	return
}

// Decode unpacks an instruction word.
func Decode(word uint32) (insn Instruction, err error) {
	insn.Word = word
	insn.Op = Operation(binrepr.Operation.Decode(word))

	switch insn.Op.Arity() {
	case 1:
		insn.Args = []Operand{
			decodeOperand(binrepr.Layout24, binrepr.Arg.Decode(word)),
		}
	case 2:
		insn.Args = []Operand{
			decodeOperand(binrepr.Layout12, binrepr.Arg0.Decode(word)),
			decodeOperand(binrepr.Layout12, binrepr.Arg1.Decode(word)),
		}
	default:
		err = ErrOpcodeUnknown
	}

	return
}

// Overflows returns the number of overflow words following the instruction.
func (insn Instruction) Overflows() (count int) {
	for _, arg := range insn.Args {
		if arg.Kind.Overflow() {
			count++
		}
	}
	return
}

// String returns the operand in assembly syntax. Overflow values are shown as '?'.
func (arg Operand) String() string {
	switch arg.Kind {
	case KIND_REGISTER:
		return arg.Register.String()
	case KIND_REGISTER_INDIRECT:
		return fmt.Sprintf("[%v]", arg.Register)
	case KIND_REGISTER_DISP:
		return fmt.Sprintf("[%v+%d]", arg.Register, arg.Value)
	case KIND_REGISTER_NEXT_DISP:
		return fmt.Sprintf("[%v+?]", arg.Register)
	case KIND_ADDRESS:
		return fmt.Sprintf("[%#x]", arg.Value)
	case KIND_NEXT_ADDRESS:
		return "[?]"
	case KIND_VALUE:
		return fmt.Sprintf("#%d", arg.Value)
	case KIND_NEXT_VALUE:
		return "#?"
	}

	return arg.Kind.String()
}

// String returns the instruction in assembly syntax.
func (insn Instruction) String() string {
	args := make([]string, len(insn.Args))
	for n, arg := range insn.Args {
		args[n] = arg.String()
	}

	if len(args) == 0 {
		return fmt.Sprintf("%v 0x%08x", insn.Op, insn.Word)
	}

	return fmt.Sprintf("%v %v", insn.Op, strings.Join(args, " -> "))
}

// Disassemble renders the instruction at the start of words, filling in
// overflow values from the words that follow it. It returns the number of
// words consumed.
func Disassemble(words []uint32) (text string, used int, err error) {
	if len(words) == 0 {
		err = ErrPcEmpty
		return
	}

	insn, err := Decode(words[0])
	if err != nil {
		return
	}
	used = 1

	args := make([]string, len(insn.Args))
	for n, arg := range insn.Args {
		if !arg.Kind.Overflow() {
			args[n] = arg.String()
			continue
		}
		if used >= len(words) {
			err = ErrOverflowMissing
			return
		}
		next := words[used]
		used++
		switch arg.Kind {
		case KIND_REGISTER_NEXT_DISP:
			args[n] = Displaced{Register: arg.Register, Disp: next}.String()
		case KIND_NEXT_ADDRESS:
			args[n] = Address(next).String()
		case KIND_NEXT_VALUE:
			args[n] = Immediate(next).String()
		}
	}

	text = fmt.Sprintf("%v %v", insn.Op, strings.Join(args, " -> "))

	return
}
