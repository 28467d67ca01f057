package units

import (
	"mirvsim/src/arith"
	"mirvsim/src/isa"
)

// FPU datapath latencies in cycles. Single-precision results still take the
// multi-cycle path when issued through the unit so the pipeline observes the
// same ready timing the hardware exhibits.
const (
	fpuAddLatency = 3
	fpuMulLatency = 5
	fpuDivLatency = 8
)

// FpuUnit wraps the simplified (non-IEEE) float datapaths from the arith
// package. Single-precision operates on register bit patterns; the
// double-precision path works on memory-resident operand pairs addressed by
// a three-word descriptor {addrA, addrB, addrDst}, each operand stored as
// two consecutive words, low word first.
type FpuUnit struct {
	mem   WordMemory
	state State

	countdown int
	single    bool
	result32  uint32
	result64  uint64
	dstAddr   uint32
	valid     bool
}

func NewFpuUnit(mem WordMemory) *FpuUnit {
	return &FpuUnit{mem: mem}
}

func fpuLatency(op isa.FpOp) int {
	switch op {
	case isa.FpMul:
		return fpuMulLatency
	case isa.FpDiv:
		return fpuDivLatency
	default:
		return fpuAddLatency
	}
}

// StartSingle issues a single-precision operation on two register bit
// patterns. The result is read back with Result32 once Done asserts.
func (u *FpuUnit) StartSingle(op isa.FpOp, a, b uint32) bool {
	if u.state != StateIdle {
		return false
	}

	switch op {
	case isa.FpAdd:
		u.result32 = arith.Float32Add(a, b)
	case isa.FpSub:
		u.result32 = arith.Float32Sub(a, b)
	case isa.FpMul:
		u.result32 = arith.Float32Mul(a, b)
	case isa.FpDiv:
		u.result32 = arith.Float32Div(a, b)
	default:
		return false
	}

	u.single = true
	u.countdown = fpuLatency(op)
	u.state = StateCompute
	u.valid = false
	return true
}

// StartDouble issues a double-precision operation on the operands named by
// the descriptor at descAddr. On completion the result is written back to
// the destination address as two words.
func (u *FpuUnit) StartDouble(op isa.FpOp, descAddr uint32) bool {
	if u.state != StateIdle {
		return false
	}

	words, ok := loadWords(u.mem, descAddr, 3)
	if !ok {
		return false
	}
	a, okA := loadWords(u.mem, words[0], 2)
	b, okB := loadWords(u.mem, words[1], 2)
	if !okA || !okB {
		return false
	}
	opA := uint64(a[1])<<32 | uint64(a[0])
	opB := uint64(b[1])<<32 | uint64(b[0])

	switch op {
	case isa.FpAdd:
		u.result64 = arith.Float64Add(opA, opB)
	case isa.FpSub:
		u.result64 = arith.Float64Sub(opA, opB)
	case isa.FpMul:
		u.result64 = arith.Float64Mul(opA, opB)
	case isa.FpDiv:
		u.result64 = arith.Float64Div(opA, opB)
	default:
		return false
	}

	u.single = false
	u.dstAddr = words[2]
	u.countdown = fpuLatency(op) + 2 // extra cycles for the wide datapath
	u.state = StateCompute
	u.valid = false
	return true
}

// Tick burns one latency cycle; the final cycle of a double-precision
// operation commits the result to memory.
func (u *FpuUnit) Tick() {
	if u.state != StateCompute {
		return
	}

	u.countdown--
	if u.countdown > 0 {
		return
	}

	if !u.single {
		okLo := u.mem.Store(u.dstAddr, uint32(u.result64))
		okHi := u.mem.Store(u.dstAddr+4, uint32(u.result64>>32))
		if !okLo || !okHi {
			// Out-of-range destination: complete rejected.
			u.state = StateDone
			return
		}
	}
	u.state = StateDone
	u.valid = true
}

func (u *FpuUnit) Busy() bool {
	return u.state == StateCompute
}

func (u *FpuUnit) Done() bool {
	return u.state == StateDone
}

func (u *FpuUnit) Valid() bool {
	return u.valid
}

func (u *FpuUnit) Result32() uint32 {
	return u.result32
}

func (u *FpuUnit) Result64() uint64 {
	return u.result64
}

func (u *FpuUnit) Ack() {
	if u.state == StateDone {
		u.state = StateIdle
		u.valid = false
	}
}

// Reset returns the unit to its power-on state.
func (u *FpuUnit) Reset() {
	u.state = StateIdle
	u.valid = false
	u.countdown = 0
}
