package units

import "testing"

// testMemory is a minimal WordMemory over a word slice for unit tests.
type testMemory struct {
	words []uint32
}

func newTestMemory(sizeWords int) *testMemory {
	return &testMemory{words: make([]uint32, sizeWords)}
}

func (m *testMemory) Load(addr uint32) (uint32, bool) {
	index := int(addr >> 2)
	if index >= len(m.words) {
		return 0, false
	}
	return m.words[index], true
}

func (m *testMemory) Store(addr uint32, value uint32) bool {
	index := int(addr >> 2)
	if index >= len(m.words) {
		return false
	}
	m.words[index] = value
	return true
}

func (m *testMemory) fill(base uint32, values []uint32) {
	for i, v := range values {
		m.words[int(base>>2)+i] = v
	}
}

// tickUntilDone drives a unit's Tick until done asserts, bounded so a stuck
// FSM fails the test instead of hanging it.
func tickUntilDone(t *testing.T, tick func(), done func() bool, maxTicks int) int {
	t.Helper()

	for i := 1; i <= maxTicks; i++ {
		tick()
		if done() {
			return i
		}
	}
	t.Fatalf("unit did not complete within %d ticks", maxTicks)
	return 0
}
