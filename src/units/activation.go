package units

// ActKind selects the activation function.
type ActKind int

const (
	ActSigmoid ActKind = iota
	ActTanh
)

// Activation values are Q16.16 signed fixed point: 1.0 == 1<<16. The
// functions below are the piecewise-linear hardware approximations, not the
// exact transcendentals: inputs beyond the saturation threshold clamp to the
// min/max constants, and the interior segments are shift-and-add only.
const (
	FixedOne  = int32(1 << 16)
	FixedHalf = int32(1 << 15)

	sigmoidSaturate = int32(5 << 16) // |x| >= 5.0 saturates
)

// Piecewise segment constants for the sigmoid approximation, Q16.16.
const (
	segHighSlopeShift = 5              // 0.03125
	segHighOffset     = 0xD800         // 0.84375
	segMidSlopeShift  = 3              // 0.125
	segMidOffset      = 0xA000         // 0.625
	segLowSlopeShift  = 2              // 0.25
	segLowOffset      = 0x8000         // 0.5
	segMidThreshold   = int32(0x26000) // 2.375
)

// FixedSigmoid evaluates the piecewise-linear sigmoid on a Q16.16 input.
// The positive half is three linear segments; the negative half mirrors it
// as 1 - sigmoid(|x|).
func FixedSigmoid(x int32) int32 {
	neg := x < 0
	mag := x
	if neg {
		mag = -x
	}

	var y int32
	switch {
	case mag >= sigmoidSaturate:
		y = FixedOne
	case mag >= segMidThreshold:
		y = mag>>segHighSlopeShift + segHighOffset
	case mag >= FixedOne:
		y = mag>>segMidSlopeShift + segMidOffset
	default:
		y = mag>>segLowSlopeShift + segLowOffset
	}

	if neg {
		return FixedOne - y
	}
	return y
}

// FixedTanh evaluates tanh via the identity tanh(x) = 2*sigmoid(2x) - 1 on
// the same piecewise approximation.
func FixedTanh(x int32) int32 {
	doubled := x << 1
	// Saturate explicitly when the doubling overflows the Q16.16 range.
	if x >= sigmoidSaturate {
		return FixedOne
	}
	if x <= -sigmoidSaturate {
		return -FixedOne
	}
	return FixedSigmoid(doubled)<<1 - FixedOne
}

// ActivationUnit applies the opcode-selected activation. It is single-cycle;
// an unknown opcode produces 0 with valid=false.
type ActivationUnit struct{}

func NewActivationUnit() *ActivationUnit {
	return &ActivationUnit{}
}

// Apply evaluates the selected function on a Q16.16 operand.
func (u *ActivationUnit) Apply(kind ActKind, x uint32) (uint32, bool) {
	switch kind {
	case ActSigmoid:
		return uint32(FixedSigmoid(int32(x))), true
	case ActTanh:
		return uint32(FixedTanh(int32(x))), true
	default:
		return 0, false
	}
}
