package core

import "testing"

func TestMemoryRoundTrip(t *testing.T) {
	t.Parallel()

	mem := NewMemory(16)

	if !mem.Store(8, 0xDEADBEEF) {
		t.Fatalf("store rejected")
	}
	if got, ok := mem.Load(8); !ok || got != 0xDEADBEEF {
		t.Fatalf("load = (0x%08x, %v)", got, ok)
	}

	// The port is word-wide: the low two address bits are dropped.
	if got, _ := mem.Load(10); got != 0xDEADBEEF {
		t.Fatalf("unaligned load must hit the same word, got 0x%08x", got)
	}
}

func TestMemoryBounds(t *testing.T) {
	t.Parallel()

	mem := NewMemory(4)

	if _, ok := mem.Load(16); ok {
		t.Fatalf("out-of-range load must not be ready")
	}
	if mem.Store(16, 1) {
		t.Fatalf("out-of-range store must be rejected")
	}
	if _, ok := mem.Fetch(16); ok {
		t.Fatalf("out-of-range fetch must not be ready")
	}
	if mem.InRange(16) || !mem.InRange(12) {
		t.Fatalf("InRange boundary wrong")
	}
}

func TestRegisterFileZeroGuard(t *testing.T) {
	t.Parallel()

	regs := NewRegisterFile()

	regs.Write(0, 123)
	if got := regs.Read(0); got != 0 {
		t.Fatalf("x0 = %d after write, want 0", got)
	}

	regs.Write(5, 77)
	if got := regs.Read(5); got != 77 {
		t.Fatalf("x5 = %d, want 77", got)
	}

	regs.Reset()
	if got := regs.Read(5); got != 0 {
		t.Fatalf("x5 = %d after reset, want 0", got)
	}
}

func TestCsrBankUnbacked(t *testing.T) {
	t.Parallel()

	bank := NewCsrBank()

	bank.Write(CsrMepc, 0x1234)
	if got := bank.Read(CsrMepc); got != 0x1234 {
		t.Fatalf("mepc = 0x%08x, want 0x1234", got)
	}

	// Unbacked addresses read zero and drop writes.
	bank.Write(0x7C0, 0xFFFF)
	if got := bank.Read(0x7C0); got != 0 {
		t.Fatalf("unbacked csr = 0x%08x, want 0", got)
	}
}
