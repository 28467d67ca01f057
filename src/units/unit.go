// Package units implements the medical-imaging functional units as explicit
// finite-state machines. Each unit consumes a start signal, advances one
// internal step per Tick and asserts done only after its defined cycle
// count, so the pipeline engine can poll it every cycle instead of treating
// it as instantaneous. An operation that fails mid-flight still completes:
// done asserts with valid false, so the engine never waits on a dead unit.
package units

// WordMemory is the slice of the memory model the units are allowed to
// touch: word loads and stores with a ready flag. core.Memory satisfies it.
type WordMemory interface {
	Load(addr uint32) (uint32, bool)
	Store(addr uint32, value uint32) bool
}

// State is the lifecycle of a multi-cycle unit.
type State int

const (
	StateIdle State = iota
	StateCompute
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCompute:
		return "compute"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// loadWords reads count consecutive words starting at base. ok is false if
// any word falls outside the image.
func loadWords(mem WordMemory, base uint32, count int) ([]uint32, bool) {
	words := make([]uint32, count)
	for i := range words {
		value, ok := mem.Load(base + uint32(i)*4)
		if !ok {
			return nil, false
		}
		words[i] = value
	}
	return words, true
}

// wordsAddressable reports whether count consecutive words starting at base
// all fall inside the image, without reading them.
func wordsAddressable(mem WordMemory, base uint32, count int) bool {
	for i := 0; i < count; i++ {
		if _, ok := mem.Load(base + uint32(i)*4); !ok {
			return false
		}
	}
	return true
}
