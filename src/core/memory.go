package core

// Memory is the flat word-addressed image shared by instruction fetch and
// data access. Addresses are byte addresses; the backing store is 32-bit
// words and accesses are word-aligned (the low two address bits are
// dropped, matching the word-wide SRAM port).
type Memory struct {
	words []uint32
}

// NewMemory allocates a memory image holding sizeWords 32-bit words.
func NewMemory(sizeWords int) *Memory {
	if sizeWords <= 0 {
		sizeWords = 1
	}
	return &Memory{words: make([]uint32, sizeWords)}
}

// SizeWords returns the capacity of the image in words.
func (m *Memory) SizeWords() int {
	return len(m.words)
}

// InRange reports whether the byte address falls inside the image.
func (m *Memory) InRange(addr uint32) bool {
	return int(addr>>2) < len(m.words)
}

// Fetch returns the instruction word at addr and a ready flag. Callers must
// substitute a NOP when ready is false so the pipeline never observes an
// undefined word.
func (m *Memory) Fetch(addr uint32) (uint32, bool) {
	index := int(addr >> 2)
	if index >= len(m.words) {
		return 0, false
	}
	return m.words[index], true
}

// Load reads the data word at addr. Out-of-range loads return zero with
// ready=false.
func (m *Memory) Load(addr uint32) (uint32, bool) {
	index := int(addr >> 2)
	if index >= len(m.words) {
		return 0, false
	}
	return m.words[index], true
}

// Store writes the data word at addr. Out-of-range stores are dropped and
// reported through the ready flag.
func (m *Memory) Store(addr uint32, value uint32) bool {
	index := int(addr >> 2)
	if index >= len(m.words) {
		return false
	}
	m.words[index] = value
	return true
}

// Reset zeroes the whole image.
func (m *Memory) Reset() {
	for i := range m.words {
		m.words[i] = 0
	}
}
