package arith

// AluOp selects the operation performed by Execute. The encoding follows the
// order the decoder emits: the RV32I base ops first, then the M-extension ops
// selected by funct7=0b0000001.
type AluOp int

const (
	AluAdd AluOp = iota
	AluSub
	AluSll
	AluSlt
	AluSltu
	AluXor
	AluSrl
	AluSra
	AluOr
	AluAnd
	AluMul
	AluMulh
	AluMulhsu
	AluMulhu
	AluDiv
	AluDivu
	AluRem
	AluRemu
)

func (op AluOp) String() string {
	switch op {
	case AluAdd:
		return "add"
	case AluSub:
		return "sub"
	case AluSll:
		return "sll"
	case AluSlt:
		return "slt"
	case AluSltu:
		return "sltu"
	case AluXor:
		return "xor"
	case AluSrl:
		return "srl"
	case AluSra:
		return "sra"
	case AluOr:
		return "or"
	case AluAnd:
		return "and"
	case AluMul:
		return "mul"
	case AluMulh:
		return "mulh"
	case AluMulhsu:
		return "mulhsu"
	case AluMulhu:
		return "mulhu"
	case AluDiv:
		return "div"
	case AluDivu:
		return "divu"
	case AluRem:
		return "rem"
	case AluRemu:
		return "remu"
	default:
		return "unknown"
	}
}

// Flags carries the condition outputs of one ALU evaluation. Zero and Sign
// are recomputed for every operation; Carry and Overflow are meaningful only
// for the add/sub class and are forced false elsewhere. DivByZero is raised
// by DIV/DIVU/REM/REMU when the divisor is zero.
type Flags struct {
	Zero      bool
	Sign      bool
	Carry     bool
	Overflow  bool
	DivByZero bool
}

// Execute evaluates one integer operation. It is a pure function: two 32-bit
// operands and an op selector in, a 32-bit result plus flags out.
//
// Division follows the hardware contract rather than trapping: DIV/DIVU by
// zero return 0xFFFFFFFF, REM/REMU by zero return the dividend unchanged, and
// both raise DivByZero.
func Execute(op AluOp, a, b uint32) (uint32, Flags) {
	var result uint32
	var flags Flags

	switch op {
	case AluAdd:
		wide := uint64(a) + uint64(b)
		result = uint32(wide)
		flags.Carry = wide>>32 != 0
		// Signed overflow: same-sign operands, opposite-sign sum.
		flags.Overflow = (a>>31) == (b>>31) && (result>>31) != (a>>31)

	case AluSub:
		wide := uint64(a) - uint64(b)
		result = uint32(wide)
		flags.Carry = wide>>32 != 0
		// Signed overflow: differing-sign operands, result sign differs
		// from the minuend.
		flags.Overflow = (a>>31) != (b>>31) && (result>>31) != (a>>31)

	case AluSll:
		result = a << (b & 0x1F)

	case AluSlt:
		if int32(a) < int32(b) {
			result = 1
		}

	case AluSltu:
		if a < b {
			result = 1
		}

	case AluXor:
		result = a ^ b

	case AluSrl:
		result = a >> (b & 0x1F)

	case AluSra:
		result = uint32(int32(a) >> (b & 0x1F))

	case AluOr:
		result = a | b

	case AluAnd:
		result = a & b

	case AluMul:
		result = uint32(int64(int32(a)) * int64(int32(b)))

	case AluMulh:
		result = uint32(uint64(int64(int32(a))*int64(int32(b))) >> 32)

	case AluMulhsu:
		result = uint32(uint64(int64(int32(a))*int64(b)) >> 32)

	case AluMulhu:
		result = uint32((uint64(a) * uint64(b)) >> 32)

	case AluDiv:
		if b == 0 {
			result = 0xFFFFFFFF
			flags.DivByZero = true
		} else if int32(a) == -2147483648 && int32(b) == -1 {
			// Signed overflow case defined by RV32M: quotient wraps.
			result = a
		} else {
			result = uint32(int32(a) / int32(b))
		}

	case AluDivu:
		if b == 0 {
			result = 0xFFFFFFFF
			flags.DivByZero = true
		} else {
			result = a / b
		}

	case AluRem:
		if b == 0 {
			result = a
			flags.DivByZero = true
		} else if int32(a) == -2147483648 && int32(b) == -1 {
			result = 0
		} else {
			result = uint32(int32(a) % int32(b))
		}

	case AluRemu:
		if b == 0 {
			result = a
			flags.DivByZero = true
		} else {
			result = a % b
		}
	}

	flags.Zero = result == 0
	flags.Sign = result>>31 != 0

	return result, flags
}
