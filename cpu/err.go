package cpu

import (
	"errors"

	"github.com/ezrec/bytec/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrPcEmpty         = errors.New(f("pc empty"))
	ErrOverflowMissing = errors.New(f("overflow word missing"))
	ErrMemoryFault     = errors.New(f("memory fault"))
	ErrArithmetic      = errors.New(f("arithmetic fault"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrProgramPartial  = errors.New(f("partial program word"))

	// Instruction decode errors
	ErrOpcodeUnknown = errors.New(f("opcode unknown"))
	ErrOpcodeOp      = errors.New(f("op"))
	ErrOpcodeArg1    = errors.New(f("arg1"))
	ErrOpcodeArg2    = errors.New(f("arg2"))
	ErrOperandKind   = errors.New(f("operand kind unknown"))
	ErrOperandWrite  = errors.New(f("operand not writable"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOperandMissing     = errors.New(f("operand missing"))
	ErrArrowMissing       = errors.New(f("'->' missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrInstruction identifies the instruction that faulted.
type ErrInstruction struct {
	Pc   uint32
	Word uint32
}

func (ei ErrInstruction) Error() string {
	// Overflow operands are not known here; they render as '?'.
	text := "?"
	if insn, err := Decode(ei.Word); err == nil {
		text = insn.String()
	}
	return f("pc 0x%x: bad instruction 0x%08x %v", ei.Pc, ei.Word, text)
}

func (ei ErrInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrInstruction)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseOperand string

func (err ErrParseOperand) Error() string {
	return f("'%v' is not an operand", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
