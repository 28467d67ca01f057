package units

// VecOp selects the elementwise operation.
type VecOp int

const (
	VecAdd VecOp = iota
	VecSub
	VecMul
	VecAnd
	VecOr
)

// VecMode selects where operand B comes from: a second vector, a broadcast
// scalar register, or a broadcast immediate.
type VecMode int

const (
	VecModeVV VecMode = iota
	VecModeVX
	VecModeVI
)

// VectorDescriptor is the five-word parameter block a VECOP instruction
// points at. AddrB is only consulted in VV mode; VX takes the scalar from
// rs2 and VI from the instruction's immediate field.
type VectorDescriptor struct {
	Op      VecOp
	Length  int
	AddrA   uint32
	AddrB   uint32
	AddrDst uint32
}

// VectorUnit applies the elementwise operation one lane per cycle.
type VectorUnit struct {
	mem   WordMemory
	state State

	desc   VectorDescriptor
	mode   VecMode
	scalar uint32
	index  int
	valid  bool
}

func NewVectorUnit(mem WordMemory) *VectorUnit {
	return &VectorUnit{mem: mem}
}

// Start latches the descriptor; scalar provides the broadcast operand for
// VX/VI mode. Unknown ops, unreadable descriptors and non-positive lengths
// are rejected.
func (u *VectorUnit) Start(mode VecMode, descAddr uint32, scalar uint32) bool {
	if u.state != StateIdle {
		return false
	}

	words, ok := loadWords(u.mem, descAddr, 5)
	if !ok {
		return false
	}
	desc := VectorDescriptor{
		Op:      VecOp(words[0]),
		Length:  int(words[1]),
		AddrA:   words[2],
		AddrB:   words[3],
		AddrDst: words[4],
	}
	if desc.Length <= 0 || desc.Op < VecAdd || desc.Op > VecOr {
		return false
	}

	u.desc = desc
	u.mode = mode
	u.scalar = scalar
	u.index = 0
	u.state = StateCompute
	u.valid = false
	return true
}

// Tick processes one lane.
func (u *VectorUnit) Tick() {
	if u.state != StateCompute {
		return
	}

	a, okA := u.mem.Load(u.desc.AddrA + uint32(u.index)*4)
	if !okA {
		// Out-of-range operand: complete rejected.
		u.state = StateDone
		return
	}

	b := u.scalar
	if u.mode == VecModeVV {
		word, okB := u.mem.Load(u.desc.AddrB + uint32(u.index)*4)
		if !okB {
			u.state = StateDone
			return
		}
		b = word
	}

	if !u.mem.Store(u.desc.AddrDst+uint32(u.index)*4, vecApply(u.desc.Op, a, b)) {
		u.state = StateDone
		return
	}

	u.index++
	if u.index == u.desc.Length {
		u.state = StateDone
		u.valid = true
	}
}

func (u *VectorUnit) Busy() bool {
	return u.state == StateCompute
}

func (u *VectorUnit) Done() bool {
	return u.state == StateDone
}

func (u *VectorUnit) Valid() bool {
	return u.valid
}

func (u *VectorUnit) Ack() {
	if u.state == StateDone {
		u.state = StateIdle
		u.valid = false
	}
}

// Reset returns the unit to its power-on state.
func (u *VectorUnit) Reset() {
	u.state = StateIdle
	u.valid = false
}

func vecApply(op VecOp, a, b uint32) uint32 {
	switch op {
	case VecAdd:
		return a + b
	case VecSub:
		return a - b
	case VecMul:
		return uint32(int64(int32(a)) * int64(int32(b)))
	case VecAnd:
		return a & b
	case VecOr:
		return a | b
	default:
		return 0
	}
}

// VectorApply is the pure-function form: elementwise op over a with b
// sourced per mode (second vector, or broadcast scalar for VX/VI).
func VectorApply(op VecOp, mode VecMode, a, b []uint32, scalar uint32) []uint32 {
	out := make([]uint32, len(a))
	for i := range a {
		operand := scalar
		if mode == VecModeVV {
			operand = b[i]
		}
		out[i] = vecApply(op, a[i], operand)
	}
	return out
}
