package units

import "testing"

func TestFixedSigmoidCenter(t *testing.T) {
	t.Parallel()

	if got := FixedSigmoid(0); got != FixedHalf {
		t.Fatalf("sigmoid(0) = 0x%x, want 0.5 (0x%x)", got, FixedHalf)
	}
}

func TestFixedSigmoidSaturates(t *testing.T) {
	t.Parallel()

	if got := FixedSigmoid(5 << 16); got != FixedOne {
		t.Fatalf("sigmoid(5.0) = 0x%x, want 1.0", got)
	}
	if got := FixedSigmoid(100 << 16); got != FixedOne {
		t.Fatalf("sigmoid(100.0) = 0x%x, want 1.0", got)
	}
	if got := FixedSigmoid(-(5 << 16)); got != 0 {
		t.Fatalf("sigmoid(-5.0) = 0x%x, want 0", got)
	}
}

func TestFixedSigmoidSegments(t *testing.T) {
	t.Parallel()

	// Interior segment: 0.25*x + 0.5 at x = 0.5.
	if got := FixedSigmoid(1 << 15); got != (1<<13)+0x8000 {
		t.Fatalf("sigmoid(0.5) = 0x%x", got)
	}
	// Mid segment: 0.125*x + 0.625 at x = 1.0.
	if got := FixedSigmoid(1 << 16); got != 0xC000 {
		t.Fatalf("sigmoid(1.0) = 0x%x, want 0xC000 (0.75)", got)
	}
	// High segment: 0.03125*x + 0.84375 at x = 2.375.
	if got := FixedSigmoid(0x26000); got != 0xEB00 {
		t.Fatalf("sigmoid(2.375) = 0x%x, want 0xEB00", got)
	}
}

func TestFixedSigmoidSymmetry(t *testing.T) {
	t.Parallel()

	for _, x := range []int32{1 << 14, 1 << 16, 0x26000, 3 << 16} {
		pos := FixedSigmoid(x)
		neg := FixedSigmoid(-x)
		if pos+neg != FixedOne {
			t.Fatalf("sigmoid(%#x) + sigmoid(-%#x) = 0x%x, want 1.0", x, x, pos+neg)
		}
	}
}

func TestFixedTanh(t *testing.T) {
	t.Parallel()

	if got := FixedTanh(0); got != 0 {
		t.Fatalf("tanh(0) = 0x%x, want 0", got)
	}
	if got := FixedTanh(5 << 16); got != FixedOne {
		t.Fatalf("tanh(5.0) = 0x%x, want 1.0", got)
	}
	if got := FixedTanh(-(5 << 16)); got != -FixedOne {
		t.Fatalf("tanh(-5.0) = 0x%x, want -1.0", got)
	}
	// Odd symmetry on the piecewise segments.
	for _, x := range []int32{1 << 14, 1 << 16} {
		if FixedTanh(x) != -FixedTanh(-x) {
			t.Fatalf("tanh(%#x) is not odd-symmetric", x)
		}
	}
}

func TestActivationUnitApply(t *testing.T) {
	t.Parallel()

	unit := NewActivationUnit()

	if got, ok := unit.Apply(ActSigmoid, 0); !ok || got != uint32(FixedHalf) {
		t.Fatalf("apply sigmoid(0) = (0x%x, %v)", got, ok)
	}
	if got, ok := unit.Apply(ActTanh, 0); !ok || got != 0 {
		t.Fatalf("apply tanh(0) = (0x%x, %v)", got, ok)
	}
	if got, ok := unit.Apply(ActKind(99), 0); ok || got != 0 {
		t.Fatalf("unknown activation must reject, got (0x%x, %v)", got, ok)
	}
}
