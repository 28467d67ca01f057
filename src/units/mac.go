package units

// MacUnit is the scalar multiply-accumulate datapath. Externally it is
// atomic: one operation per cycle, result = src1*src2 + accumulator, with
// the accumulator capturing the result for the next operation.
type MacUnit struct {
	acc uint32
}

func NewMacUnit() *MacUnit {
	return &MacUnit{}
}

// Mac computes a*b + acc, updates the accumulator and returns the result.
// The product is the low 32 bits of the signed 64-bit product, matching the
// ALU MUL datapath the unit shares its multiplier with.
func (u *MacUnit) Mac(a, b uint32) uint32 {
	product := uint32(int64(int32(a)) * int64(int32(b)))
	u.acc = product + u.acc
	return u.acc
}

// Clear zeroes the accumulator.
func (u *MacUnit) Clear() {
	u.acc = 0
}

// Accumulator exposes the current accumulator value.
func (u *MacUnit) Accumulator() uint32 {
	return u.acc
}
