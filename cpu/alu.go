package cpu

import (
	"math/bits"
)

// doAlu performs a binary operation of 'operand' onto 'target', and returns
// the new target value.
func doAlu(op Operation, operand uint32, target uint32) (output uint32, err error) {
	switch op {
	case OP_ADD:
		output = target + operand
	case OP_SUB:
		output = target - operand
	case OP_MUL:
		output = uint32(int32(target) * int32(operand))
	case OP_MULU:
		output = target * operand
	case OP_DIV:
		if operand == 0 {
			err = ErrArithmetic
			return
		}
		// math.MinInt32 / -1 wraps to math.MinInt32.
		output = uint32(int32(target) / int32(operand))
	case OP_DIVU:
		if operand == 0 {
			err = ErrArithmetic
			return
		}
		output = target / operand
	case OP_MOV:
		output = operand
	case OP_AND:
		output = target & operand
	case OP_OR:
		output = target | operand
	case OP_XOR:
		output = target ^ operand
	case OP_SHL:
		// SHL shifts left and SHR shifts right, never the other way round.
		operand &= 0x1f // clamp to 31 bits of shift
		output = target << operand
	case OP_SHR:
		operand &= 0x1f // clamp to 31 bits of shift
		output = target >> operand
	case OP_RTL:
		output = bits.RotateLeft32(target, int(operand&0x1f))
	case OP_RTR:
		output = bits.RotateLeft32(target, -int(operand&0x1f))
	default:
		err = ErrOpcodeOp
	}

	return
}

// doUnary performs a single operand operation on 'target'.
func doUnary(op Operation, target uint32) (output uint32, err error) {
	switch op {
	case OP_NEG:
		output = ^target
	case OP_INC:
		output = target + 1
	case OP_DEC:
		output = target - 1
	default:
		err = ErrOpcodeOp
	}

	return
}
