package isa

import (
	"testing"

	"mirvsim/src/arith"
)

func TestDecodeOpImm(t *testing.T) {
	t.Parallel()

	decoder := NewDecoder()

	// addi x1, x0, 5
	inst := decoder.Decode(0x00500093)
	if inst.Class != ClassAlu {
		t.Fatalf("expected alu class, got %s", inst.Class)
	}
	if inst.Rd != 1 || inst.Rs1 != 0 || inst.Imm != 5 {
		t.Fatalf("bad fields: rd=%d rs1=%d imm=%d", inst.Rd, inst.Rs1, inst.Imm)
	}
	if !inst.Ctrl.RegWrite || !inst.Ctrl.AluSrc || inst.Ctrl.AluOp != arith.AluAdd {
		t.Fatalf("bad control: %+v", inst.Ctrl)
	}

	// srai x1, x2, 3
	inst = decoder.Decode(0x40315093)
	if inst.Ctrl.AluOp != arith.AluSra {
		t.Fatalf("expected sra, got %s", inst.Ctrl.AluOp)
	}
	if inst.Imm&0x1F != 3 {
		t.Fatalf("expected shift amount 3, got %d", inst.Imm&0x1F)
	}
}

func TestDecodeOp(t *testing.T) {
	t.Parallel()

	decoder := NewDecoder()

	// add x3, x1, x2
	inst := decoder.Decode(0x002081B3)
	if inst.Class != ClassAlu || inst.Ctrl.AluOp != arith.AluAdd {
		t.Fatalf("add decoded wrong: %s %s", inst.Class, inst.Ctrl.AluOp)
	}
	if inst.Ctrl.AluSrc {
		t.Fatalf("register-register op must not select the immediate")
	}

	// sub x3, x1, x2
	if inst := decoder.Decode(0x402081B3); inst.Ctrl.AluOp != arith.AluSub {
		t.Fatalf("sub decoded wrong: %s", inst.Ctrl.AluOp)
	}

	// mul x5, x1, x2 (funct7 = 1)
	if inst := decoder.Decode(0x022082B3); inst.Ctrl.AluOp != arith.AluMul {
		t.Fatalf("mul decoded wrong: %s", inst.Ctrl.AluOp)
	}
}

func TestDecodeLoadStore(t *testing.T) {
	t.Parallel()

	decoder := NewDecoder()

	// lw x2, 8(x1)
	inst := decoder.Decode(0x0080A103)
	if inst.Class != ClassLoad || !inst.Ctrl.MemRead || inst.Ctrl.RegSrc != 1 {
		t.Fatalf("lw decoded wrong: %s %+v", inst.Class, inst.Ctrl)
	}
	if inst.Imm != 8 {
		t.Fatalf("lw imm = %d, want 8", inst.Imm)
	}

	// sw x2, 12(x1)
	inst = decoder.Decode(0x0020A623)
	if inst.Class != ClassStore || !inst.Ctrl.MemWrite || inst.Ctrl.RegWrite {
		t.Fatalf("sw decoded wrong: %s %+v", inst.Class, inst.Ctrl)
	}
	if inst.Imm != 12 {
		t.Fatalf("sw imm = %d, want 12", inst.Imm)
	}
}

func TestDecodeBranchesAndJumps(t *testing.T) {
	t.Parallel()

	decoder := NewDecoder()

	// beq x1, x2, -4
	inst := decoder.Decode(0xFE208EE3)
	if inst.Class != ClassBranch || !inst.Ctrl.Branch {
		t.Fatalf("beq decoded wrong: %s", inst.Class)
	}
	if inst.Imm != -4 {
		t.Fatalf("beq imm = %d, want -4", inst.Imm)
	}

	// jal x1, 16
	inst = decoder.Decode(0x010000EF)
	if inst.Class != ClassJal || inst.Imm != 16 || inst.Ctrl.RegSrc != 2 {
		t.Fatalf("jal decoded wrong: %s imm=%d", inst.Class, inst.Imm)
	}

	// jalr x0, 0(x1)
	inst = decoder.Decode(0x00008067)
	if inst.Class != ClassJalr || !inst.Ctrl.Jalr {
		t.Fatalf("jalr decoded wrong: %s", inst.Class)
	}
}

func TestDecodeLui(t *testing.T) {
	t.Parallel()

	decoder := NewDecoder()

	inst := decoder.Decode(0x123450B7)
	if inst.Class != ClassLui {
		t.Fatalf("lui decoded wrong: %s", inst.Class)
	}
	if uint32(inst.Imm) != 0x12345000 {
		t.Fatalf("lui imm = 0x%08x, want 0x12345000", uint32(inst.Imm))
	}
	if inst.Rs1 != 0 {
		t.Fatalf("lui must read x0 so the adder produces the immediate")
	}
}

func TestDecodeCsr(t *testing.T) {
	t.Parallel()

	decoder := NewDecoder()

	// csrrw x1, mstatus, x2
	inst := decoder.Decode(0x300110F3)
	if inst.Class != ClassCsr || inst.Csr != 0x300 || inst.CsrImm {
		t.Fatalf("csrrw decoded wrong: %s csr=%#x imm=%v", inst.Class, inst.Csr, inst.CsrImm)
	}

	// csrrsi x1, mstatus, 3
	inst = decoder.Decode(0x3001E0F3)
	if inst.Class != ClassCsr || !inst.CsrImm {
		t.Fatalf("csrrsi decoded wrong: %s imm=%v", inst.Class, inst.CsrImm)
	}
}

func TestDecodeAmo(t *testing.T) {
	t.Parallel()

	decoder := NewDecoder()

	// amoadd.w x3, x2, (x1)
	inst := decoder.Decode(0x0020A1AF)
	if inst.Class != ClassAmo || inst.Amo != AmoAdd {
		t.Fatalf("amoadd decoded wrong: %s %d", inst.Class, inst.Amo)
	}
	if inst.AmoAcquire || inst.AmoRelease {
		t.Fatalf("no ordering bits were set")
	}

	// amoswap.w.aq x3, x2, (x1)
	inst = decoder.Decode(0x0C20A1AF)
	if inst.Amo != AmoSwap || !inst.AmoAcquire || inst.AmoRelease {
		t.Fatalf("amoswap.aq decoded wrong: %d aq=%v rl=%v", inst.Amo, inst.AmoAcquire, inst.AmoRelease)
	}
}

func TestDecodeOpFp(t *testing.T) {
	t.Parallel()

	decoder := NewDecoder()

	// fadd.s x3, x1, x2
	inst := decoder.Decode(0x002081D3)
	if inst.Class != ClassFp || inst.Fp != FpAdd || inst.FpDouble {
		t.Fatalf("fadd.s decoded wrong: %s %d double=%v", inst.Class, inst.Fp, inst.FpDouble)
	}
	if !inst.Ctrl.RegWrite {
		t.Fatalf("single-precision result writes the register file")
	}

	// fadd.d with the double format bit
	inst = decoder.Decode(0x022081D3)
	if inst.Fp != FpAdd || !inst.FpDouble {
		t.Fatalf("fadd.d decoded wrong: %d double=%v", inst.Fp, inst.FpDouble)
	}
	if inst.Ctrl.RegWrite {
		t.Fatalf("double-precision result goes to memory, not the register file")
	}
}

func TestDecodeCustom(t *testing.T) {
	t.Parallel()

	decoder := NewDecoder()

	cases := []struct {
		word     uint32
		op       CustomOp
		regWrite bool
	}{
		{0x0000800B, CustomMatMul, false},
		{0x0000918B, CustomDot, true},
		{0x002081AB, CustomMac, true},
		{0x0000C1AB, CustomSigmoid, true},
		{0x0000805B, CustomMaxPool, false},
		{0x0000A05B, CustomDmaLoad, false},
		{0x0000E05B, CustomVecVI, false},
	}

	for _, c := range cases {
		inst := decoder.Decode(c.word)
		if inst.Class != ClassCustom {
			t.Fatalf("0x%08x: expected custom class, got %s", c.word, inst.Class)
		}
		if inst.Custom != c.op {
			t.Fatalf("0x%08x: expected %s, got %s", c.word, c.op, inst.Custom)
		}
		if inst.Ctrl.RegWrite != c.regWrite {
			t.Fatalf("%s: reg write = %v, want %v", c.op, inst.Ctrl.RegWrite, c.regWrite)
		}
	}
}

func TestDecodeSystem(t *testing.T) {
	t.Parallel()

	decoder := NewDecoder()

	if inst := decoder.Decode(0x00100073); inst.Class != ClassHalt {
		t.Fatalf("ebreak must decode to halt, got %s", inst.Class)
	}
	if inst := decoder.Decode(0x00000073); inst.Class != ClassNop {
		t.Fatalf("ecall retires as a no-op, got %s", inst.Class)
	}
}

func TestDecodeUnknownIsNop(t *testing.T) {
	t.Parallel()

	decoder := NewDecoder()

	inst := decoder.Decode(0xFFFFFFFF)
	if inst.Class != ClassNop {
		t.Fatalf("unknown word must decode to a no-op, got %s", inst.Class)
	}
	if inst.Ctrl != (ControlSignals{}) {
		t.Fatalf("no-op must carry zeroed control signals: %+v", inst.Ctrl)
	}

}
