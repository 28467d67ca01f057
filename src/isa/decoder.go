package isa

import "mirvsim/src/arith"

// Decoder turns raw 32-bit instruction words into DecodedInstruction values.
// Unknown opcode/funct3/funct7 combinations decode to a no-op with
// reg_write=false: the hardware degrades silently instead of trapping, and
// the simulator reproduces that.
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Field extraction helpers. The immediate variants sign-extend per format.

func immI(word uint32) int32 {
	return int32(word) >> 20
}

func immS(word uint32) int32 {
	return (int32(word)>>25)<<5 | int32((word>>7)&0x1F)
}

func immB(word uint32) int32 {
	imm := (int32(word)>>31)<<12 |
		int32((word>>7)&0x1)<<11 |
		int32((word>>25)&0x3F)<<5 |
		int32((word>>8)&0xF)<<1
	return imm
}

func immU(word uint32) int32 {
	return int32(word & 0xFFFFF000)
}

func immJ(word uint32) int32 {
	imm := (int32(word)>>31)<<20 |
		int32((word>>12)&0xFF)<<12 |
		int32((word>>20)&0x1)<<11 |
		int32((word>>21)&0x3FF)<<1
	return imm
}

// Decode produces the DecodedInstruction for one instruction word.
func (d *Decoder) Decode(word uint32) *DecodedInstruction {
	inst := &DecodedInstruction{
		Raw:    word,
		Opcode: word & 0x7F,
		Rd:     int((word >> 7) & 0x1F),
		Funct3: (word >> 12) & 0x7,
		Rs1:    int((word >> 15) & 0x1F),
		Rs2:    int((word >> 20) & 0x1F),
		Funct7: word >> 25,
		Class:  ClassNop,
	}

	switch inst.Opcode {
	case OpcodeOpImm:
		d.decodeOpImm(inst)
	case OpcodeOp:
		d.decodeOp(inst)
	case OpcodeLoad:
		if inst.Funct3 == 0x2 { // LW
			inst.Class = ClassLoad
			inst.Imm = immI(word)
			inst.Ctrl = ControlSignals{
				RegWrite: true, MemRead: true, AluSrc: true,
				RegSrc: 1, AluOp: arith.AluAdd,
			}
		}
	case OpcodeStore:
		if inst.Funct3 == 0x2 { // SW
			inst.Class = ClassStore
			inst.Imm = immS(word)
			inst.Ctrl = ControlSignals{
				MemWrite: true, AluSrc: true, AluOp: arith.AluAdd,
			}
		}
	case OpcodeBranch:
		d.decodeBranch(inst)
	case OpcodeJal:
		inst.Class = ClassJal
		inst.Imm = immJ(word)
		inst.Ctrl = ControlSignals{RegWrite: true, Jump: true, RegSrc: 2}
	case OpcodeJalr:
		if inst.Funct3 == 0x0 {
			inst.Class = ClassJalr
			inst.Imm = immI(word)
			inst.Ctrl = ControlSignals{
				RegWrite: true, Jump: true, Jalr: true, AluSrc: true,
				RegSrc: 2, AluOp: arith.AluAdd,
			}
		}
	case OpcodeLui:
		inst.Class = ClassLui
		inst.Imm = immU(word)
		// LUI reuses the adder as x0 + imm.
		inst.Rs1 = 0
		inst.Ctrl = ControlSignals{RegWrite: true, AluSrc: true, AluOp: arith.AluAdd}
	case OpcodeAuipc:
		inst.Class = ClassAuipc
		inst.Imm = immU(word)
		inst.Rs1 = 0
		inst.Ctrl = ControlSignals{RegWrite: true, AluSrc: true, AluOp: arith.AluAdd}
	case OpcodeAmo:
		d.decodeAmo(inst)
	case OpcodeOpFp:
		d.decodeOpFp(inst)
	case OpcodeSystem:
		d.decodeSystem(inst)
	case OpcodeMiscMem:
		// FENCE: architectural no-op on a single core.
	case OpcodeMatrix, OpcodeMac, OpcodePool:
		d.decodeCustom(inst)
	}

	if inst.Class == ClassNop {
		inst.Ctrl = ControlSignals{}
	}

	return inst
}

func (d *Decoder) decodeOpImm(inst *DecodedInstruction) {
	var op arith.AluOp
	switch inst.Funct3 {
	case 0x0:
		op = arith.AluAdd
	case 0x1:
		if inst.Funct7 != 0x00 {
			return
		}
		op = arith.AluSll
	case 0x2:
		op = arith.AluSlt
	case 0x3:
		op = arith.AluSltu
	case 0x4:
		op = arith.AluXor
	case 0x5:
		switch inst.Funct7 {
		case 0x00:
			op = arith.AluSrl
		case 0x20:
			op = arith.AluSra
		default:
			return
		}
	case 0x6:
		op = arith.AluOr
	case 0x7:
		op = arith.AluAnd
	}

	inst.Class = ClassAlu
	inst.Imm = immI(inst.Raw)
	inst.Ctrl = ControlSignals{RegWrite: true, AluSrc: true, AluOp: op}
}

func (d *Decoder) decodeOp(inst *DecodedInstruction) {
	var op arith.AluOp

	switch inst.Funct7 {
	case 0x01: // M extension
		switch inst.Funct3 {
		case 0x0:
			op = arith.AluMul
		case 0x1:
			op = arith.AluMulh
		case 0x2:
			op = arith.AluMulhsu
		case 0x3:
			op = arith.AluMulhu
		case 0x4:
			op = arith.AluDiv
		case 0x5:
			op = arith.AluDivu
		case 0x6:
			op = arith.AluRem
		case 0x7:
			op = arith.AluRemu
		}
	case 0x00:
		switch inst.Funct3 {
		case 0x0:
			op = arith.AluAdd
		case 0x1:
			op = arith.AluSll
		case 0x2:
			op = arith.AluSlt
		case 0x3:
			op = arith.AluSltu
		case 0x4:
			op = arith.AluXor
		case 0x5:
			op = arith.AluSrl
		case 0x6:
			op = arith.AluOr
		case 0x7:
			op = arith.AluAnd
		}
	case 0x20:
		switch inst.Funct3 {
		case 0x0:
			op = arith.AluSub
		case 0x5:
			op = arith.AluSra
		default:
			return
		}
	default:
		return
	}

	inst.Class = ClassAlu
	inst.Ctrl = ControlSignals{RegWrite: true, AluOp: op}
}

func (d *Decoder) decodeBranch(inst *DecodedInstruction) {
	var op arith.AluOp
	switch inst.Funct3 {
	case 0x0, 0x1: // BEQ/BNE compare via subtraction
		op = arith.AluSub
	case 0x4, 0x5: // BLT/BGE via the signed comparator
		op = arith.AluSlt
	case 0x6, 0x7: // BLTU/BGEU via the unsigned comparator
		op = arith.AluSltu
	default:
		return
	}

	inst.Class = ClassBranch
	inst.Imm = immB(inst.Raw)
	inst.Ctrl = ControlSignals{Branch: true, AluOp: op}
}

func (d *Decoder) decodeAmo(inst *DecodedInstruction) {
	if inst.Funct3 != 0x2 {
		return
	}

	switch inst.Funct7 >> 2 {
	case 0x00:
		inst.Amo = AmoAdd
	case 0x01:
		inst.Amo = AmoSwap
	case 0x0C:
		inst.Amo = AmoAnd
	case 0x08:
		inst.Amo = AmoOr
	default:
		return
	}

	inst.Class = ClassAmo
	inst.AmoAcquire = inst.Funct7&0x2 != 0
	inst.AmoRelease = inst.Funct7&0x1 != 0
	inst.Ctrl = ControlSignals{RegWrite: true, RegSrc: 3}
}

func (d *Decoder) decodeOpFp(inst *DecodedInstruction) {
	switch inst.Funct7 >> 2 {
	case 0x00:
		inst.Fp = FpAdd
	case 0x01:
		inst.Fp = FpSub
	case 0x02:
		inst.Fp = FpMul
	case 0x03:
		inst.Fp = FpDiv
	default:
		return
	}

	switch inst.Funct7 & 0x3 {
	case 0x0:
		inst.FpDouble = false
	case 0x1:
		inst.FpDouble = true
	default:
		inst.Fp = FpNone
		return
	}

	inst.Class = ClassFp
	inst.Ctrl = ControlSignals{RegWrite: !inst.FpDouble, RegSrc: 3}
}

func (d *Decoder) decodeSystem(inst *DecodedInstruction) {
	if inst.Funct3 == 0x0 {
		// ECALL retires as a no-op; EBREAK halts the simulation, which
		// is the driver's program-exit convention.
		if inst.Raw>>20 == 0x001 {
			inst.Class = ClassHalt
		}
		return
	}

	switch inst.Funct3 {
	case 0x1, 0x2, 0x3: // CSRRW/CSRRS/CSRRC
		inst.CsrImm = false
	case 0x5, 0x6, 0x7: // CSRRWI/CSRRSI/CSRRCI
		inst.CsrImm = true
	default:
		return
	}

	inst.Class = ClassCsr
	inst.Csr = inst.Raw >> 20
	inst.Ctrl = ControlSignals{RegWrite: true, RegSrc: 3}
}

func (d *Decoder) decodeCustom(inst *DecodedInstruction) {
	type entry struct {
		op       CustomOp
		regWrite bool
	}

	var table map[uint32]entry
	switch inst.Opcode {
	case OpcodeMatrix:
		table = map[uint32]entry{
			0x0: {CustomMatMul, false},
			0x1: {CustomDot, true},
		}
	case OpcodeMac:
		table = map[uint32]entry{
			0x0: {CustomMac, true},
			0x1: {CustomMacClear, false},
			0x4: {CustomSigmoid, true},
			0x5: {CustomTanh, true},
		}
	case OpcodePool:
		table = map[uint32]entry{
			0x0: {CustomMaxPool, false},
			0x1: {CustomAvgPool, false},
			0x2: {CustomDmaLoad, false},
			0x3: {CustomDmaStore, false},
			0x4: {CustomVecVV, false},
			0x5: {CustomVecVX, false},
			0x6: {CustomVecVI, false},
		}
	}

	e, ok := table[inst.Funct3]
	if !ok {
		return
	}

	inst.Class = ClassCustom
	inst.Custom = e.op
	inst.Ctrl = ControlSignals{RegWrite: e.regWrite, RegSrc: 3}
}
