package units

import "testing"

func vectorDescriptor(mem *testMemory, descAddr uint32, op VecOp, length int, addrA, addrB, addrDst uint32) {
	mem.fill(descAddr, []uint32{uint32(op), uint32(length), addrA, addrB, addrDst})
}

func TestVectorVV(t *testing.T) {
	t.Parallel()

	mem := newTestMemory(256)
	vectorDescriptor(mem, 0, VecAdd, 4, 0x40, 0x60, 0x80)
	mem.fill(0x40, []uint32{1, 2, 3, 4})
	mem.fill(0x60, []uint32{10, 20, 30, 40})

	unit := NewVectorUnit(mem)
	if !unit.Start(VecModeVV, 0, 0) {
		t.Fatalf("start rejected")
	}

	// One lane per tick.
	ticks := tickUntilDone(t, unit.Tick, unit.Done, 100)
	if ticks != 4 {
		t.Fatalf("length-4 op took %d ticks, want 4", ticks)
	}

	want := []uint32{11, 22, 33, 44}
	for i, w := range want {
		if got := mem.words[(0x80>>2)+i]; got != w {
			t.Fatalf("dst[%d] = %d, want %d", i, got, w)
		}
	}
}

func TestVectorBroadcast(t *testing.T) {
	t.Parallel()

	mem := newTestMemory(256)
	vectorDescriptor(mem, 0, VecMul, 3, 0x40, 0, 0x80)
	mem.fill(0x40, []uint32{1, 2, 0xFFFFFFFF}) // third element is -1

	unit := NewVectorUnit(mem)
	if !unit.Start(VecModeVX, 0, 3) {
		t.Fatalf("start rejected")
	}
	tickUntilDone(t, unit.Tick, unit.Done, 100)

	want := []int32{3, 6, -3}
	for i, w := range want {
		if got := int32(mem.words[(0x80>>2)+i]); got != w {
			t.Fatalf("dst[%d] = %d, want %d", i, got, w)
		}
	}
}

func TestVectorPureOps(t *testing.T) {
	t.Parallel()

	a := []uint32{0xF0, 0x0F}
	b := []uint32{0xFF, 0xFF}

	if out := VectorApply(VecAnd, VecModeVV, a, b, 0); out[0] != 0xF0 || out[1] != 0x0F {
		t.Fatalf("and = %v", out)
	}
	if out := VectorApply(VecOr, VecModeVV, a, b, 0); out[0] != 0xFF || out[1] != 0xFF {
		t.Fatalf("or = %v", out)
	}
	if out := VectorApply(VecSub, VecModeVI, []uint32{10, 20}, nil, 3); out[0] != 7 || out[1] != 17 {
		t.Fatalf("sub imm = %v", out)
	}
}

func TestVectorRejects(t *testing.T) {
	t.Parallel()

	mem := newTestMemory(256)
	unit := NewVectorUnit(mem)

	vectorDescriptor(mem, 0, VecOp(42), 4, 0x40, 0x60, 0x80)
	if unit.Start(VecModeVV, 0, 0) {
		t.Fatalf("unknown op must be rejected")
	}

	vectorDescriptor(mem, 0, VecAdd, 0, 0x40, 0x60, 0x80)
	if unit.Start(VecModeVV, 0, 0) {
		t.Fatalf("zero length must be rejected")
	}
}

func TestVectorOutOfRangeDestinationCompletesRejected(t *testing.T) {
	t.Parallel()

	mem := newTestMemory(64)
	vectorDescriptor(mem, 0, VecAdd, 4, 0x40, 0x60, 0xFFFF0000)
	mem.fill(0x40, []uint32{1, 2, 3, 4})
	mem.fill(0x60, []uint32{1, 1, 1, 1})

	unit := NewVectorUnit(mem)
	if !unit.Start(VecModeVV, 0, 0) {
		t.Fatalf("start rejected")
	}
	unit.Tick()

	if !unit.Done() {
		t.Fatalf("rejected operation must assert done")
	}
	if unit.Valid() {
		t.Fatalf("rejected operation must not assert valid")
	}
	unit.Ack()
	if unit.Done() || unit.Busy() {
		t.Fatalf("ack must return the unit to idle")
	}
}
