package units

// PoolKind selects max or average pooling.
type PoolKind int

const (
	PoolMax PoolKind = iota
	PoolAvg
)

// PoolDescriptor is the five-word parameter block a MAXPOOL/AVGPOOL
// instruction points at. The input is a dimensionsxdimensions row-major
// image; window origins advance by stride in both axes and windows reaching
// past the input edge are clipped to the in-bounds elements.
type PoolDescriptor struct {
	Dimensions int
	PoolSize   int
	Stride     int
	SrcAddr    uint32
	DstAddr    uint32
}

// PoolUnit slides the pooling window over the input, producing one output
// element per compute cycle in row-major scan order of the window origins.
type PoolUnit struct {
	mem   WordMemory
	state State

	kind     PoolKind
	desc     PoolDescriptor
	originR  int
	originC  int
	outIndex int
	valid    bool
}

func NewPoolUnit(mem WordMemory) *PoolUnit {
	return &PoolUnit{mem: mem}
}

// Start latches the descriptor. Rejected when the descriptor is unreadable
// or any of dimensions/pool size/stride is non-positive.
func (u *PoolUnit) Start(kind PoolKind, descAddr uint32) bool {
	if u.state != StateIdle {
		return false
	}

	words, ok := loadWords(u.mem, descAddr, 5)
	if !ok {
		return false
	}
	desc := PoolDescriptor{
		Dimensions: int(words[0]),
		PoolSize:   int(words[1]),
		Stride:     int(words[2]),
		SrcAddr:    words[3],
		DstAddr:    words[4],
	}
	if desc.Dimensions <= 0 || desc.PoolSize <= 0 || desc.Stride <= 0 {
		return false
	}

	u.kind = kind
	u.desc = desc
	u.originR, u.originC, u.outIndex = 0, 0, 0
	u.state = StateCompute
	u.valid = false
	return true
}

// Tick evaluates one window and stores its output element.
func (u *PoolUnit) Tick() {
	if u.state != StateCompute {
		return
	}

	dim := u.desc.Dimensions
	var acc int64
	var best int32
	count := 0
	for r := u.originR; r < u.originR+u.desc.PoolSize && r < dim; r++ {
		for c := u.originC; c < u.originC+u.desc.PoolSize && c < dim; c++ {
			word, ok := u.mem.Load(u.desc.SrcAddr + uint32(r*dim+c)*4)
			if !ok {
				// Out-of-range operand: complete rejected.
				u.state = StateDone
				return
			}
			value := int32(word)
			if count == 0 || value > best {
				best = value
			}
			acc += int64(value)
			count++
		}
	}

	var out int32
	if u.kind == PoolMax {
		out = best
	} else {
		// Clipped windows divide by the element count actually seen;
		// integer division truncates.
		out = int32(acc / int64(count))
	}
	if !u.mem.Store(u.desc.DstAddr+uint32(u.outIndex)*4, uint32(out)) {
		u.state = StateDone
		return
	}
	u.outIndex++

	// Advance the window origin in row-major order.
	u.originC += u.desc.Stride
	if u.originC < dim {
		return
	}
	u.originC = 0
	u.originR += u.desc.Stride
	if u.originR >= dim {
		u.state = StateDone
		u.valid = true
	}
}

func (u *PoolUnit) Busy() bool {
	return u.state == StateCompute
}

func (u *PoolUnit) Done() bool {
	return u.state == StateDone
}

func (u *PoolUnit) Valid() bool {
	return u.valid
}

func (u *PoolUnit) Ack() {
	if u.state == StateDone {
		u.state = StateIdle
		u.valid = false
	}
}

// Reset returns the unit to its power-on state.
func (u *PoolUnit) Reset() {
	u.state = StateIdle
	u.valid = false
}

// OutputElements returns how many window outputs a dimensions/stride pair
// produces per axis: one output per window origin r with r < dimensions,
// r stepping by stride.
func OutputElements(dimensions, stride int) int {
	if dimensions <= 0 || stride <= 0 {
		return 0
	}
	return (dimensions + stride - 1) / stride
}

// Pool is the pure-function form over an explicit input slice. input is
// dimensionsxdimensions row-major; the output is rowOutxrowOut with
// rowOut = OutputElements(dimensions, stride).
func Pool(kind PoolKind, input []uint32, dimensions, poolSize, stride int) []uint32 {
	rowOut := OutputElements(dimensions, stride)
	output := make([]uint32, 0, rowOut*rowOut)

	for originR := 0; originR < dimensions; originR += stride {
		for originC := 0; originC < dimensions; originC += stride {
			var acc int64
			var best int32
			count := 0
			for r := originR; r < originR+poolSize && r < dimensions; r++ {
				for c := originC; c < originC+poolSize && c < dimensions; c++ {
					value := int32(input[r*dimensions+c])
					if count == 0 || value > best {
						best = value
					}
					acc += int64(value)
					count++
				}
			}
			if kind == PoolMax {
				output = append(output, uint32(best))
			} else {
				output = append(output, uint32(int32(acc/int64(count))))
			}
		}
	}

	return output
}
