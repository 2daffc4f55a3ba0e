package cpu

// Operation is an instruction operation code.
type Operation uint8

//go:generate go tool stringer -linecomment -type=Operation
const (
	OP_ADD   = Operation(0x00) // ADD
	OP_SUB   = Operation(0x01) // SUB
	OP_MUL   = Operation(0x02) // MUL
	OP_MULU  = Operation(0x03) // MULU
	OP_DIV   = Operation(0x04) // DIV
	OP_DIVU  = Operation(0x05) // DIVU
	OP_MOV   = Operation(0x06) // MOV
	OP_SWP   = Operation(0x07) // SWP
	OP_PUSH  = Operation(0x08) // PUSH
	OP_POP   = Operation(0x09) // POP
	OP_JMP   = Operation(0x0a) // JMP
	OP_JMPE  = Operation(0x0b) // JMPE
	OP_JMPNE = Operation(0x0c) // JMPNE
	OP_JMPG  = Operation(0x0d) // JMPG
	OP_JMPGE = Operation(0x0e) // JMPGE
	OP_AND   = Operation(0x0f) // AND
	OP_OR    = Operation(0x10) // OR
	OP_XOR   = Operation(0x11) // XOR
	OP_NEG   = Operation(0x12) // NEG
	OP_SHL   = Operation(0x13) // SHL
	OP_RTL   = Operation(0x14) // RTL
	OP_SHR   = Operation(0x15) // SHR
	OP_RTR   = Operation(0x16) // RTR
	OP_CMP   = Operation(0x17) // CMP
	OP_INC   = Operation(0x18) // INC
	OP_DEC   = Operation(0x19) // DEC
	OP_OUT   = Operation(0x1a) // OUT
)

// OP_COUNT is the number of defined operations.
const OP_COUNT = int(OP_OUT) + 1

// Valid returns true if the operation code is defined.
func (op Operation) Valid() bool {
	return int(op) < OP_COUNT
}

// Arity returns the number of operands of the operation, which also selects
// the instruction layout: two 12-bit fields, or one 24-bit field.
// Undefined operations have an arity of 0.
func (op Operation) Arity() int {
	switch op {
	case OP_PUSH, OP_POP,
		OP_JMP, OP_JMPE, OP_JMPNE, OP_JMPG, OP_JMPGE,
		OP_NEG, OP_INC, OP_DEC, OP_OUT:
		return 1
	}

	if !op.Valid() {
		return 0
	}

	return 2
}

// Kind is an operand addressing mode.
type Kind uint8

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_REGISTER           = Kind(0) // reg
	KIND_REGISTER_INDIRECT  = Kind(1) // [reg]
	KIND_REGISTER_DISP      = Kind(2) // [reg+disp]
	KIND_REGISTER_NEXT_DISP = Kind(3) // [reg+next]
	KIND_ADDRESS            = Kind(4) // [addr]
	KIND_NEXT_ADDRESS       = Kind(5) // [next]
	KIND_VALUE              = Kind(6) // imm
	KIND_NEXT_VALUE         = Kind(7) // next
)

// Overflow returns true if the operand's value, address or displacement is
// held in the program word following the instruction.
func (kind Kind) Overflow() bool {
	switch kind {
	case KIND_REGISTER_NEXT_DISP, KIND_NEXT_ADDRESS, KIND_NEXT_VALUE:
		return true
	}
	return false
}

// Writable returns true if the operand kind can be the target of a write.
func (kind Kind) Writable() bool {
	return kind < KIND_VALUE
}

// HasRegister returns true if the operand kind carries a register index.
func (kind Kind) HasRegister() bool {
	return kind <= KIND_REGISTER_NEXT_DISP
}

// Register is a register index.
type Register uint8

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_A  = Register(0) // A
	REG_B  = Register(1) // B
	REG_C  = Register(2) // C
	REG_D  = Register(3) // D
	REG_E  = Register(4) // E
	REG_F  = Register(5) // F
	REG_G  = Register(6) // G
	REG_H  = Register(7) // H
	REG_SP = Register(8) // SP
)

// REGISTER_COUNT is the number of architectural registers.
const REGISTER_COUNT = int(REG_SP) + 1

// Valid returns true if the index names an architectural register.
// The operand field can encode indices up to 15.
func (reg Register) Valid() bool {
	return int(reg) < REGISTER_COUNT
}
