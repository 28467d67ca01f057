package units

// MatMulDescriptor is the six-word parameter block a MATMUL instruction
// points at: dimensions followed by the three operand base addresses.
type MatMulDescriptor struct {
	N     int // rows of A and C
	M     int // inner dimension
	P     int // cols of B and C
	AddrA uint32
	AddrB uint32
	AddrC uint32
}

// MatMulUnit performs the NxM by MxP matrix product with one
// multiply-accumulate per compute cycle. Completion asserts only after all
// NxP result elements have been written back.
type MatMulUnit struct {
	mem   WordMemory
	state State

	desc  MatMulDescriptor
	row   int
	col   int
	k     int
	acc   int64
	valid bool
}

func NewMatMulUnit(mem WordMemory) *MatMulUnit {
	return &MatMulUnit{mem: mem}
}

// Start latches the descriptor at descAddr and enters the compute state.
// A malformed descriptor (unreadable words or non-positive dimensions)
// rejects the operation: the unit stays idle and will never assert done.
func (u *MatMulUnit) Start(descAddr uint32) bool {
	if u.state != StateIdle {
		return false
	}

	words, ok := loadWords(u.mem, descAddr, 6)
	if !ok {
		return false
	}
	desc := MatMulDescriptor{
		N:     int(words[0]),
		M:     int(words[1]),
		P:     int(words[2]),
		AddrA: words[3],
		AddrB: words[4],
		AddrC: words[5],
	}
	if desc.N <= 0 || desc.M <= 0 || desc.P <= 0 {
		return false
	}

	u.desc = desc
	u.row, u.col, u.k = 0, 0, 0
	u.acc = 0
	u.state = StateCompute
	u.valid = false
	return true
}

// Tick advances one multiply-accumulate. The walk is the standard triple
// loop: k innermost, then output column, then output row.
func (u *MatMulUnit) Tick() {
	if u.state != StateCompute {
		return
	}

	a, okA := u.mem.Load(u.desc.AddrA + uint32(u.row*u.desc.M+u.k)*4)
	b, okB := u.mem.Load(u.desc.AddrB + uint32(u.k*u.desc.P+u.col)*4)
	if !okA || !okB {
		// Out-of-range operand: the operation completes rejected so the
		// engine observes done with valid false.
		u.state = StateDone
		return
	}
	u.acc += int64(int32(a)) * int64(int32(b))

	u.k++
	if u.k < u.desc.M {
		return
	}

	// Inner loop complete: commit one output element.
	if !u.mem.Store(u.desc.AddrC+uint32(u.row*u.desc.P+u.col)*4, uint32(u.acc)) {
		u.state = StateDone
		return
	}
	u.acc = 0
	u.k = 0
	u.col++
	if u.col < u.desc.P {
		return
	}
	u.col = 0
	u.row++
	if u.row == u.desc.N {
		u.state = StateDone
		u.valid = true
	}
}

// Busy reports whether a multiply is in flight.
func (u *MatMulUnit) Busy() bool {
	return u.state == StateCompute
}

// Done reports completion, rejected or not; Valid distinguishes the two.
// Ack returns the unit to idle.
func (u *MatMulUnit) Done() bool {
	return u.state == StateDone
}

func (u *MatMulUnit) Valid() bool {
	return u.valid
}

func (u *MatMulUnit) Ack() {
	if u.state == StateDone {
		u.state = StateIdle
		u.valid = false
	}
}

// Reset returns the unit to its power-on state.
func (u *MatMulUnit) Reset() {
	u.state = StateIdle
	u.valid = false
}

// MatMul is the pure-function form over explicit slices: a is nxm in
// row-major order, b is mxp, and the returned slice is the nxp product.
// Arithmetic is 32-bit signed with 64-bit accumulation, truncated on store,
// exactly as the unit computes it.
func MatMul(a, b []uint32, n, m, p int) []uint32 {
	c := make([]uint32, n*p)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			var acc int64
			for k := 0; k < m; k++ {
				acc += int64(int32(a[i*m+k])) * int64(int32(b[k*p+j]))
			}
			c[i*p+j] = uint32(acc)
		}
	}
	return c
}
