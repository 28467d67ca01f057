package units

import "mirvsim/src/isa"

// AmoUnit performs the atomic read-modify-write operations against the
// memory image. In the single-core model every operation is trivially
// atomic; the acquire/release flags are accepted but carry no ordering
// effect, which keeps the interface ready for a multi-core extension.
type AmoUnit struct {
	mem WordMemory
}

func NewAmoUnit(mem WordMemory) *AmoUnit {
	return &AmoUnit{mem: mem}
}

// Execute applies op at addr with the given operand and returns the
// pre-operation memory value. An out-of-range address rejects the operation:
// valid is false and memory is not mutated.
func (u *AmoUnit) Execute(op isa.AmoOp, addr, operand uint32, acquire, release bool) (uint32, bool) {
	_ = acquire
	_ = release

	old, ok := u.mem.Load(addr)
	if !ok {
		return 0, false
	}

	var next uint32
	switch op {
	case isa.AmoAdd:
		next = old + operand
	case isa.AmoSwap:
		next = operand
	case isa.AmoAnd:
		next = old & operand
	case isa.AmoOr:
		next = old | operand
	default:
		return 0, false
	}

	if !u.mem.Store(addr, next) {
		return 0, false
	}
	return old, true
}
