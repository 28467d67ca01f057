package arith

// Simplified IEEE-754-shaped arithmetic. The datapath aligns significands by
// the exponent difference, adds or subtracts them and reuses the larger
// exponent; subtraction results are not renormalized and no rounding is ever
// applied. Multiplication and division work on the integer significands with
// bias correction on the exponents. This intentionally diverges from
// correctly-rounded IEEE arithmetic and the divergence is load-bearing: the
// hardware computes these exact bit patterns, so the simulator must too.

const (
	// Canonical quiet-NaN patterns returned on division by a zero
	// significand.
	QuietNaN32 = uint32(0x7FC00000)
	QuietNaN64 = uint64(0x7FF8000000000000)

	f32ExpBits = 8
	f32ManBits = 23
	f32Bias    = 127

	f64ExpBits = 11
	f64ManBits = 52
	f64Bias    = 1023
)

// fpDecompose splits a bit pattern into sign, biased exponent and significand
// with the hidden bit restored. Values with a zero exponent are treated as
// zero; the datapath has no denormal support.
func fpDecompose(bits uint64, expBits, manBits uint) (sign uint64, exp int, man uint64) {
	sign = (bits >> (expBits + manBits)) & 0x1
	exp = int((bits >> manBits) & ((1 << expBits) - 1))
	man = bits & ((1 << manBits) - 1)
	if exp != 0 {
		man |= 1 << manBits
	} else {
		man = 0
	}
	return sign, exp, man
}

func fpCompose(sign uint64, exp int, man uint64, expBits, manBits uint) uint64 {
	if man == 0 {
		return sign << (expBits + manBits)
	}
	if exp < 0 {
		exp = 0
	}
	if exp >= (1<<expBits)-1 {
		exp = (1 << expBits) - 1
	}
	return sign<<(expBits+manBits) | uint64(exp)<<manBits | (man & ((1 << manBits) - 1))
}

// fpAddSub aligns the smaller significand to the larger exponent and adds or
// subtracts. A carry out of the significand width shifts right once; a
// subtraction result with leading zeros is left as-is (no renormalization).
func fpAddSub(a, b uint64, expBits, manBits uint, negateB bool) uint64 {
	signA, expA, manA := fpDecompose(a, expBits, manBits)
	signB, expB, manB := fpDecompose(b, expBits, manBits)
	if negateB {
		signB ^= 1
	}

	if manA == 0 {
		return fpCompose(signB, expB, manB, expBits, manBits)
	}
	if manB == 0 {
		return fpCompose(signA, expA, manA, expBits, manBits)
	}

	// Align to the larger exponent.
	exp := expA
	if expA >= expB {
		manB >>= uint(expA - expB)
	} else {
		exp = expB
		manA >>= uint(expB - expA)
	}

	var sign, man uint64
	if signA == signB {
		sign = signA
		man = manA + manB
		if man>>(manBits+1) != 0 {
			man >>= 1
			exp++
		}
	} else {
		// Subtract the smaller magnitude from the larger one.
		if manA >= manB {
			sign = signA
			man = manA - manB
		} else {
			sign = signB
			man = manB - manA
		}
		if man == 0 {
			exp = 0
		}
	}

	return fpCompose(sign, exp, man, expBits, manBits)
}

func fpMul(a, b uint64, expBits, manBits uint, bias int) uint64 {
	signA, expA, manA := fpDecompose(a, expBits, manBits)
	signB, expB, manB := fpDecompose(b, expBits, manBits)

	sign := signA ^ signB
	if manA == 0 || manB == 0 {
		return fpCompose(sign, 0, 0, expBits, manBits)
	}

	man := mulShift(manA, manB, manBits)
	exp := expA + expB - bias
	if man>>(manBits+1) != 0 {
		man >>= 1
		exp++
	}

	return fpCompose(sign, exp, man, expBits, manBits)
}

func fpDiv(a, b uint64, expBits, manBits uint, bias int, nan uint64) uint64 {
	signA, expA, manA := fpDecompose(a, expBits, manBits)
	signB, expB, manB := fpDecompose(b, expBits, manBits)

	if manB == 0 {
		return nan
	}

	sign := signA ^ signB
	if manA == 0 {
		return fpCompose(sign, 0, 0, expBits, manBits)
	}

	man := divShift(manA, manB, manBits)
	exp := expA - expB + bias
	if man>>(manBits+1) != 0 {
		man >>= 1
		exp++
	}

	return fpCompose(sign, exp, man, expBits, manBits)
}

// mulShift computes (a*b) >> manBits without losing the high half. For the
// 52-bit significands of doubles the full product does not fit in 64 bits, so
// the operands are pre-shifted instead; the discarded low bits match the
// truncating hardware.
func mulShift(a, b uint64, manBits uint) uint64 {
	if manBits <= 23 {
		return (a * b) >> manBits
	}
	half := manBits / 2
	return (a >> half) * (b >> (manBits - half))
}

// divShift computes (a << manBits) / b, pre-shifting for the wide case the
// same way mulShift does.
func divShift(a, b uint64, manBits uint) uint64 {
	if manBits <= 23 {
		return (a << manBits) / b
	}
	// a is at most 2^53; shift it as far as headroom allows and shift the
	// divisor down by the remainder.
	headroom := uint(63 - (manBits + 1))
	return (a << headroom) / (b >> (manBits - headroom))
}

// Float32Add adds two single-precision bit patterns.
func Float32Add(a, b uint32) uint32 {
	return uint32(fpAddSub(uint64(a), uint64(b), f32ExpBits, f32ManBits, false))
}

// Float32Sub subtracts b from a.
func Float32Sub(a, b uint32) uint32 {
	return uint32(fpAddSub(uint64(a), uint64(b), f32ExpBits, f32ManBits, true))
}

// Float32Mul multiplies two single-precision bit patterns.
func Float32Mul(a, b uint32) uint32 {
	return uint32(fpMul(uint64(a), uint64(b), f32ExpBits, f32ManBits, f32Bias))
}

// Float32Div divides a by b. A zero divisor significand yields QuietNaN32.
func Float32Div(a, b uint32) uint32 {
	return uint32(fpDiv(uint64(a), uint64(b), f32ExpBits, f32ManBits, f32Bias, uint64(QuietNaN32)))
}

// Float64Add adds two double-precision bit patterns.
func Float64Add(a, b uint64) uint64 {
	return fpAddSub(a, b, f64ExpBits, f64ManBits, false)
}

// Float64Sub subtracts b from a.
func Float64Sub(a, b uint64) uint64 {
	return fpAddSub(a, b, f64ExpBits, f64ManBits, true)
}

// Float64Mul multiplies two double-precision bit patterns.
func Float64Mul(a, b uint64) uint64 {
	return fpMul(a, b, f64ExpBits, f64ManBits, f64Bias)
}

// Float64Div divides a by b. A zero divisor significand yields QuietNaN64.
func Float64Div(a, b uint64) uint64 {
	return fpDiv(a, b, f64ExpBits, f64ManBits, f64Bias, QuietNaN64)
}
