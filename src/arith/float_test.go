package arith

import "testing"

const (
	f32Half    = uint32(0x3F000000)
	f32One     = uint32(0x3F800000)
	f32OneHalf = uint32(0x3FC00000)
	f32Two     = uint32(0x40000000)
	f32Three   = uint32(0x40400000)
	f32Six     = uint32(0x40C00000)
)

func TestFloat32AddExact(t *testing.T) {
	t.Parallel()

	if got := Float32Add(f32One, f32One); got != f32Two {
		t.Fatalf("1.0 + 1.0 = 2.0, got 0x%08x", got)
	}
	if got := Float32Add(f32Two, f32Half); got != 0x40200000 {
		t.Fatalf("2.0 + 0.5 = 2.5, got 0x%08x", got)
	}
}

func TestFloat32AddZeroOperand(t *testing.T) {
	t.Parallel()

	if got := Float32Add(0, f32Three); got != f32Three {
		t.Fatalf("0 + 3.0 must pass 3.0 through, got 0x%08x", got)
	}
	if got := Float32Add(f32Three, 0); got != f32Three {
		t.Fatalf("3.0 + 0 must pass 3.0 through, got 0x%08x", got)
	}
}

func TestFloat32SubNoRenormalize(t *testing.T) {
	t.Parallel()

	// 2.0 - 1.5 leaves the difference significand 0x200000 under the larger
	// exponent without renormalizing, so the bit pattern is 0x40200000
	// rather than the IEEE 0.5.
	if got := Float32Sub(f32Two, f32OneHalf); got != 0x40200000 {
		t.Fatalf("expected unnormalized 0x40200000, got 0x%08x", got)
	}
}

func TestFloat32SubEqualIsZero(t *testing.T) {
	t.Parallel()

	if got := Float32Sub(f32OneHalf, f32OneHalf); got != 0 {
		t.Fatalf("x - x must be +0, got 0x%08x", got)
	}
}

func TestFloat32Mul(t *testing.T) {
	t.Parallel()

	if got := Float32Mul(f32Two, f32Three); got != f32Six {
		t.Fatalf("2.0 * 3.0 = 6.0, got 0x%08x", got)
	}
	// 1.5 * 1.5 carries out of the significand and shifts back in.
	if got := Float32Mul(f32OneHalf, f32OneHalf); got != 0x40100000 {
		t.Fatalf("1.5 * 1.5 = 2.25, got 0x%08x", got)
	}
	if got := Float32Mul(f32Two, 0); got != 0 {
		t.Fatalf("x * 0 must be zero, got 0x%08x", got)
	}
}

func TestFloat32Div(t *testing.T) {
	t.Parallel()

	if got := Float32Div(f32Six, f32Three); got != f32Two {
		t.Fatalf("6.0 / 3.0 = 2.0, got 0x%08x", got)
	}
	if got := Float32Div(0, f32Two); got != 0 {
		t.Fatalf("0 / x must be zero, got 0x%08x", got)
	}
}

func TestFloat32DivByZeroIsQuietNaN(t *testing.T) {
	t.Parallel()

	if got := Float32Div(f32One, 0); got != QuietNaN32 {
		t.Fatalf("divide by +0 must return the quiet NaN, got 0x%08x", got)
	}
	if got := Float32Div(f32One, 0x80000000); got != QuietNaN32 {
		t.Fatalf("divide by -0 must return the quiet NaN, got 0x%08x", got)
	}
}

func TestFloat64Add(t *testing.T) {
	t.Parallel()

	one := uint64(0x3FF0000000000000)
	two := uint64(0x4000000000000000)
	three := uint64(0x4008000000000000)

	if got := Float64Add(one, two); got != three {
		t.Fatalf("1.0 + 2.0 = 3.0, got 0x%016x", got)
	}
}

func TestFloat64MulDiv(t *testing.T) {
	t.Parallel()

	two := uint64(0x4000000000000000)
	four := uint64(0x4010000000000000)
	eight := uint64(0x4020000000000000)

	if got := Float64Mul(two, four); got != eight {
		t.Fatalf("2.0 * 4.0 = 8.0, got 0x%016x", got)
	}
	if got := Float64Div(eight, two); got != four {
		t.Fatalf("8.0 / 2.0 = 4.0, got 0x%016x", got)
	}
	if got := Float64Div(two, 0); got != QuietNaN64 {
		t.Fatalf("divide by zero must return the quiet NaN, got 0x%016x", got)
	}
}
