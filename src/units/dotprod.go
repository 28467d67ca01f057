package units

// DotDescriptor is the three-word parameter block a DOT instruction points
// at: element count followed by the two operand base addresses.
type DotDescriptor struct {
	Length int
	AddrA  uint32
	AddrB  uint32
}

// DotUnit accumulates src_a[i]*src_b[i] into a widened 64-bit accumulator,
// one element per cycle, and completes when the index reaches the length.
type DotUnit struct {
	mem   WordMemory
	state State

	desc  DotDescriptor
	index int
	acc   int64
	valid bool
}

func NewDotUnit(mem WordMemory) *DotUnit {
	return &DotUnit{mem: mem}
}

// Start latches the descriptor and enters the compute state. Non-positive
// lengths and unreadable descriptors are rejected.
func (u *DotUnit) Start(descAddr uint32) bool {
	if u.state != StateIdle {
		return false
	}

	words, ok := loadWords(u.mem, descAddr, 3)
	if !ok {
		return false
	}
	desc := DotDescriptor{Length: int(words[0]), AddrA: words[1], AddrB: words[2]}
	if desc.Length <= 0 {
		return false
	}

	u.desc = desc
	u.index = 0
	u.acc = 0
	u.state = StateCompute
	u.valid = false
	return true
}

// Tick consumes one element pair.
func (u *DotUnit) Tick() {
	if u.state != StateCompute {
		return
	}

	a, okA := u.mem.Load(u.desc.AddrA + uint32(u.index)*4)
	b, okB := u.mem.Load(u.desc.AddrB + uint32(u.index)*4)
	if !okA || !okB {
		// Out-of-range operand: complete rejected, valid stays false.
		u.state = StateDone
		return
	}
	u.acc += int64(int32(a)) * int64(int32(b))

	u.index++
	if u.index == u.desc.Length {
		u.state = StateDone
		u.valid = true
	}
}

func (u *DotUnit) Busy() bool {
	return u.state == StateCompute
}

func (u *DotUnit) Done() bool {
	return u.state == StateDone
}

func (u *DotUnit) Valid() bool {
	return u.valid
}

// Sum returns the widened accumulator; Result is its low 32 bits, which is
// what rides the write-back path into the destination register.
func (u *DotUnit) Sum() int64 {
	return u.acc
}

func (u *DotUnit) Result() uint32 {
	return uint32(u.acc)
}

func (u *DotUnit) Ack() {
	if u.state == StateDone {
		u.state = StateIdle
		u.valid = false
	}
}

// Reset returns the unit to its power-on state.
func (u *DotUnit) Reset() {
	u.state = StateIdle
	u.valid = false
	u.acc = 0
}

// DotProduct is the pure-function form: signed 32-bit elements accumulated
// into int64 to avoid overflow.
func DotProduct(a, b []uint32) int64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var acc int64
	for i := 0; i < n; i++ {
		acc += int64(int32(a[i])) * int64(int32(b[i]))
	}
	return acc
}
