package isa

import (
	"fmt"

	"mirvsim/src/arith"
)

// Major opcodes recognized by the decoder. The base set follows RV32I; the
// three reserved custom opcodes carry the medical-imaging extension with a
// funct3 sub-selector each.
const (
	OpcodeLoad    = 0x03
	OpcodeMiscMem = 0x0F
	OpcodeOpImm   = 0x13
	OpcodeAuipc   = 0x17
	OpcodeStore   = 0x23
	OpcodeAmo     = 0x2F
	OpcodeOp      = 0x33
	OpcodeLui     = 0x37
	OpcodeBranch  = 0x63
	OpcodeJalr    = 0x67
	OpcodeJal     = 0x6F
	OpcodeOpFp    = 0x53
	OpcodeSystem  = 0x73

	// Custom extension opcodes (custom-0/1/2 encoding slots).
	OpcodeMatrix = 0x0B
	OpcodeMac    = 0x2B
	OpcodePool   = 0x5B
)

// NopWord is the canonical RV32I NOP (addi x0, x0, 0). A not-ready
// instruction fetch substitutes this word so pipeline stages never observe
// undefined instructions.
const NopWord = uint32(0x00000013)

// InstClass tags the decoded instruction with the datapath that executes it.
type InstClass int

const (
	ClassNop InstClass = iota
	ClassAlu
	ClassLoad
	ClassStore
	ClassBranch
	ClassJal
	ClassJalr
	ClassLui
	ClassAuipc
	ClassCsr
	ClassAmo
	ClassFp
	ClassCustom
	ClassHalt
)

func (c InstClass) String() string {
	switch c {
	case ClassNop:
		return "nop"
	case ClassAlu:
		return "alu"
	case ClassLoad:
		return "load"
	case ClassStore:
		return "store"
	case ClassBranch:
		return "branch"
	case ClassJal:
		return "jal"
	case ClassJalr:
		return "jalr"
	case ClassLui:
		return "lui"
	case ClassAuipc:
		return "auipc"
	case ClassCsr:
		return "csr"
	case ClassAmo:
		return "amo"
	case ClassFp:
		return "fp"
	case ClassCustom:
		return "custom"
	case ClassHalt:
		return "halt"
	default:
		return "unknown"
	}
}

// CustomOp identifies the medical-imaging unit an instruction dispatches to,
// derived from the custom opcode and its funct3 sub-selector.
type CustomOp int

const (
	CustomNone CustomOp = iota
	CustomMatMul
	CustomDot
	CustomMac
	CustomMacClear
	CustomSigmoid
	CustomTanh
	CustomMaxPool
	CustomAvgPool
	CustomDmaLoad
	CustomDmaStore
	CustomVecVV
	CustomVecVX
	CustomVecVI
)

func (op CustomOp) String() string {
	switch op {
	case CustomMatMul:
		return "matmul"
	case CustomDot:
		return "dot"
	case CustomMac:
		return "mac"
	case CustomMacClear:
		return "mac.clr"
	case CustomSigmoid:
		return "sigmoid"
	case CustomTanh:
		return "tanh"
	case CustomMaxPool:
		return "maxpool"
	case CustomAvgPool:
		return "avgpool"
	case CustomDmaLoad:
		return "dma.load"
	case CustomDmaStore:
		return "dma.store"
	case CustomVecVV:
		return "vec.vv"
	case CustomVecVX:
		return "vec.vx"
	case CustomVecVI:
		return "vec.vi"
	default:
		return "none"
	}
}

// AmoOp selects the read-modify-write performed by the atomic unit.
type AmoOp int

const (
	AmoNone AmoOp = iota
	AmoAdd
	AmoSwap
	AmoAnd
	AmoOr
)

// FpOp selects the floating-point operation for OP-FP instructions.
type FpOp int

const (
	FpNone FpOp = iota
	FpAdd
	FpSub
	FpMul
	FpDiv
)

// ControlSignals is the control bundle the decode table attaches to every
// instruction. It is valid for the instruction's whole trip down the
// pipeline; a flush or bubble zeroes it.
type ControlSignals struct {
	RegWrite bool
	MemRead  bool
	MemWrite bool
	Branch   bool
	Jump     bool
	Jalr     bool
	// AluSrc selects the immediate (true) or rs2 (false) as operand B.
	AluSrc bool
	// RegSrc selects what writes back: 0 ALU result, 1 memory read,
	// 2 PC+4, 3 CSR/unit result.
	RegSrc int
	AluOp  arith.AluOp
}

// DecodedInstruction is the immutable product of the decoder. One instance
// flows through ID->EX->MEM->WB inside the pipeline stage registers.
type DecodedInstruction struct {
	Raw    uint32
	Class  InstClass
	Opcode uint32
	Funct3 uint32
	Funct7 uint32
	Rs1    int
	Rs2    int
	Rd     int
	// Imm is sign-extended per the instruction format (I/S/B/U/J).
	Imm int32

	Ctrl ControlSignals

	Custom CustomOp
	Amo    AmoOp
	// AmoAcquire/AmoRelease are accepted but carry no ordering effect in
	// the single-core model.
	AmoAcquire bool
	AmoRelease bool
	Fp         FpOp
	FpDouble   bool
	Csr        uint32
	CsrImm     bool
}

func (inst *DecodedInstruction) String() string {
	if inst == nil {
		return "<bubble>"
	}
	switch inst.Class {
	case ClassCustom:
		return fmt.Sprintf("%s rd=x%d rs1=x%d rs2=x%d", inst.Custom, inst.Rd, inst.Rs1, inst.Rs2)
	case ClassCsr:
		return fmt.Sprintf("csr[%#03x] rd=x%d rs1=x%d", inst.Csr, inst.Rd, inst.Rs1)
	default:
		return fmt.Sprintf("%s rd=x%d rs1=x%d rs2=x%d imm=%d",
			inst.Class, inst.Rd, inst.Rs1, inst.Rs2, inst.Imm)
	}
}
