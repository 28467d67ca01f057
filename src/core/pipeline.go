package core

import (
	"mirvsim/src/arith"
	"mirvsim/src/isa"
	"mirvsim/src/units"
)

// Pipeline stage registers. Each is rebuilt every cycle from its upstream
// stage's outputs; Valid=false is a bubble. The Cycle method computes all
// next-state values from the current registers before committing them, so
// every stage observes the same consistent cycle-start state.

// IfIdRegister carries the fetched word into decode.
type IfIdRegister struct {
	Valid bool
	PC    uint32
	Word  uint32
}

// IdExRegister carries the decoded instruction and its register-file reads
// into execute.
type IdExRegister struct {
	Valid    bool
	PC       uint32
	Inst     *isa.DecodedInstruction
	Rs1Value uint32
	Rs2Value uint32
}

// ExMemRegister carries execute results into the memory stage. WriteEnabled
// is RegWrite gated by result validity so a rejected operation can never
// propagate a stale valid signal into a register-file write.
type ExMemRegister struct {
	Valid        bool
	PC           uint32
	Inst         *isa.DecodedInstruction
	AluResult    uint32
	StoreValue   uint32
	UnitResult   uint32
	WriteEnabled bool
}

// MemWbRegister carries the final write-back value.
type MemWbRegister struct {
	Valid        bool
	PC           uint32
	Inst         *isa.DecodedInstruction
	Value        uint32
	WriteEnabled bool
}

// Cycle advances the whole core by one clock. Stage effects are applied in
// WB, MEM, EX, ID, IF order so the register file observes write-before-read
// semantics within the cycle, and every busy functional unit is polled
// exactly once.
func (c *Core) Cycle() {
	c.stats.Cycles++
	c.retire = RetireInfo{}

	// Multi-cycle units advance first; execute samples their done flags
	// afterwards in the same cycle.
	c.matmul.Tick()
	c.dot.Tick()
	c.pool.Tick()
	c.dma.Tick()
	c.vector.Tick()
	c.fpu.Tick()

	oldIfId := c.ifid
	oldIdEx := c.idex
	oldExMem := c.exmem
	oldMemWb := c.memwb

	c.writeBack(oldMemWb)
	nextMemWb := c.memoryStage(oldExMem)
	nextExMem, stallEx, flush, flushTarget := c.executeStage(oldIdEx, nextMemWb, oldMemWb)

	switch {
	case stallEx:
		// Multi-cycle unit still busy: hold PC, IF/ID and ID/EX, let a
		// bubble flow downstream.
		c.stats.Stalls++
		c.exmem = nextExMem
		c.memwb = nextMemWb

	case flush:
		// Taken branch/jump resolved in EX: the wrong-path fetches in
		// IF/ID and ID/EX become no-ops and fetch redirects.
		c.stats.Flushes++
		c.ifid = IfIdRegister{}
		c.idex = IdExRegister{}
		c.exmem = nextExMem
		c.memwb = nextMemWb
		c.pc = flushTarget

	default:
		nextIdEx, stallLoadUse := c.decodeStage(oldIfId, oldIdEx)
		if stallLoadUse {
			// Load-use hazard: one bubble into EX, fetch holds.
			c.stats.Stalls++
			c.idex = IdExRegister{}
		} else {
			c.idex = nextIdEx
			c.fetchStage()
		}
		c.exmem = nextExMem
		c.memwb = nextMemWb
	}
}

// writeBack commits the MEM/WB register to the register file and records
// the retire debug surface.
func (c *Core) writeBack(wb MemWbRegister) {
	if !wb.Valid {
		return
	}

	if wb.WriteEnabled {
		c.regs.Write(wb.Inst.Rd, wb.Value)
	}
	if wb.Inst.Class == isa.ClassHalt {
		c.halted = true
	}

	c.stats.Instructions++
	c.retire = RetireInfo{
		Valid:    true,
		PC:       wb.PC,
		Raw:      wb.Inst.Raw,
		Rd:       wb.Inst.Rd,
		Value:    wb.Value,
		RegWrite: wb.WriteEnabled,
	}
}

// memoryStage performs the data access and selects the write-back value.
func (c *Core) memoryStage(ex ExMemRegister) MemWbRegister {
	if !ex.Valid {
		return MemWbRegister{}
	}

	inst := ex.Inst
	writeEnabled := ex.WriteEnabled
	value := ex.AluResult

	if inst.Ctrl.MemWrite {
		c.mem.Store(ex.AluResult, ex.StoreValue)
	}

	switch inst.Ctrl.RegSrc {
	case 1:
		word, ok := c.mem.Load(ex.AluResult)
		if !ok {
			word = 0
			writeEnabled = false
		}
		value = word
	case 2:
		value = ex.PC + 4
	case 3:
		value = ex.UnitResult
	}

	return MemWbRegister{
		Valid:        true,
		PC:           ex.PC,
		Inst:         inst,
		Value:        value,
		WriteEnabled: writeEnabled,
	}
}

// forward resolves one EX operand against the younger in-flight writes.
// The MEM-stage instruction (whose combinational output this cycle is
// memStage) has priority over the WB-stage instruction: the more recent
// value wins.
func forward(reg int, regValue uint32, memStage, wbStage MemWbRegister) uint32 {
	if reg == 0 {
		return regValue
	}
	if memStage.Valid && memStage.WriteEnabled && memStage.Inst.Rd == reg {
		return memStage.Value
	}
	if wbStage.Valid && wbStage.WriteEnabled && wbStage.Inst.Rd == reg {
		return wbStage.Value
	}
	return regValue
}

// executeStage evaluates the ID/EX instruction. It returns the next EX/MEM
// register, whether the pipeline must stall for a busy unit, and whether a
// control-flow redirect flushes the front end.
func (c *Core) executeStage(idex IdExRegister, memStage, wbStage MemWbRegister) (next ExMemRegister, stall bool, flush bool, target uint32) {
	if !idex.Valid {
		return ExMemRegister{}, false, false, 0
	}

	inst := idex.Inst
	rs1 := forward(inst.Rs1, idex.Rs1Value, memStage, wbStage)
	rs2 := forward(inst.Rs2, idex.Rs2Value, memStage, wbStage)

	next = ExMemRegister{
		Valid:        true,
		PC:           idex.PC,
		Inst:         inst,
		StoreValue:   rs2,
		WriteEnabled: inst.Ctrl.RegWrite,
	}

	operandB := rs2
	if inst.Ctrl.AluSrc {
		operandB = uint32(inst.Imm)
	}

	switch inst.Class {
	case isa.ClassAlu, isa.ClassLui, isa.ClassLoad, isa.ClassStore:
		result, _ := arith.Execute(inst.Ctrl.AluOp, rs1, operandB)
		next.AluResult = result

	case isa.ClassAuipc:
		next.AluResult = idex.PC + uint32(inst.Imm)

	case isa.ClassBranch:
		result, flags := arith.Execute(inst.Ctrl.AluOp, rs1, rs2)
		if branchTaken(inst.Funct3, result, flags) {
			flush = true
			target = idex.PC + uint32(inst.Imm)
		}

	case isa.ClassJal:
		flush = true
		target = idex.PC + uint32(inst.Imm)

	case isa.ClassJalr:
		flush = true
		target = (rs1 + uint32(inst.Imm)) &^ 1

	case isa.ClassCsr:
		next.UnitResult = c.executeCsr(inst, rs1)

	case isa.ClassAmo:
		old, ok := c.amo.Execute(inst.Amo, rs1, rs2, inst.AmoAcquire, inst.AmoRelease)
		next.UnitResult = old
		next.WriteEnabled = inst.Ctrl.RegWrite && ok

	case isa.ClassFp:
		return c.executeFp(idex, next, rs1, rs2)

	case isa.ClassCustom:
		return c.executeCustom(idex, next, rs1, rs2)

	case isa.ClassHalt:
		// Stop fetching; younger wrong-path fetches are discarded.
		c.fetchStop = true
		flush = true
		target = idex.PC
	}

	return next, false, flush, target
}

// branchTaken evaluates the branch condition per funct3 on the comparator
// outputs: BEQ/BNE use the zero flag, the rest use the comparator result
// bit.
func branchTaken(funct3 uint32, result uint32, flags arith.Flags) bool {
	switch funct3 {
	case 0x0: // BEQ
		return flags.Zero
	case 0x1: // BNE
		return !flags.Zero
	case 0x4, 0x6: // BLT/BLTU
		return result != 0
	case 0x5, 0x7: // BGE/BGEU
		return result == 0
	default:
		return false
	}
}

// executeCsr performs the read-modify-write against the CSR bank and
// returns the pre-operation value. Set/clear forms with a zero source do
// not write, per the ISA convention.
func (c *Core) executeCsr(inst *isa.DecodedInstruction, rs1 uint32) uint32 {
	operand := rs1
	if inst.CsrImm {
		operand = uint32(inst.Rs1)
	}

	old := c.csr.Read(inst.Csr)
	switch inst.Funct3 & 0x3 {
	case 0x1: // CSRRW
		c.csr.Write(inst.Csr, operand)
	case 0x2: // CSRRS
		if inst.Rs1 != 0 {
			c.csr.Write(inst.Csr, old|operand)
		}
	case 0x3: // CSRRC
		if inst.Rs1 != 0 {
			c.csr.Write(inst.Csr, old&^operand)
		}
	}
	return old
}

// executeFp issues the floating-point unit and stalls until it is ready.
func (c *Core) executeFp(idex IdExRegister, next ExMemRegister, rs1, rs2 uint32) (ExMemRegister, bool, bool, uint32) {
	inst := idex.Inst

	if !c.unitActive {
		var started bool
		if inst.FpDouble {
			started = c.fpu.StartDouble(inst.Fp, rs1)
		} else {
			started = c.fpu.StartSingle(inst.Fp, rs1, rs2)
		}
		if !started {
			// Rejected operation: retire without a result.
			next.WriteEnabled = false
			return next, false, false, 0
		}
		c.unitActive = true
		return ExMemRegister{}, true, false, 0
	}

	if !c.fpu.Done() {
		return ExMemRegister{}, true, false, 0
	}

	if c.fpu.Valid() {
		next.UnitResult = c.fpu.Result32()
	} else {
		// Rejected completion: no result, no register write.
		next.WriteEnabled = false
	}
	c.fpu.Ack()
	c.unitActive = false
	return next, false, false, 0
}

// executeCustom dispatches the medical-imaging instructions. Single-cycle
// units complete in place; multi-cycle units follow the start/poll/collect
// protocol and hold the pipeline until ready.
func (c *Core) executeCustom(idex IdExRegister, next ExMemRegister, rs1, rs2 uint32) (ExMemRegister, bool, bool, uint32) {
	inst := idex.Inst

	switch inst.Custom {
	case isa.CustomMac:
		next.UnitResult = c.mac.Mac(rs1, rs2)
		return next, false, false, 0

	case isa.CustomMacClear:
		c.mac.Clear()
		return next, false, false, 0

	case isa.CustomSigmoid, isa.CustomTanh:
		kind := units.ActSigmoid
		if inst.Custom == isa.CustomTanh {
			kind = units.ActTanh
		}
		result, ok := c.activation.Apply(kind, rs1)
		next.UnitResult = result
		next.WriteEnabled = inst.Ctrl.RegWrite && ok
		return next, false, false, 0
	}

	// Multi-cycle units.
	if !c.unitActive {
		if !c.startCustom(inst, rs1, rs2) {
			next.WriteEnabled = false
			return next, false, false, 0
		}
		c.unitActive = true
		return ExMemRegister{}, true, false, 0
	}

	unitDone, unitValid, result := c.pollCustom(inst)
	if !unitDone {
		return ExMemRegister{}, true, false, 0
	}

	// A rejected completion retires with no result and no register write;
	// everything else in flight is untouched.
	next.UnitResult = result
	next.WriteEnabled = inst.Ctrl.RegWrite && unitValid
	c.unitActive = false
	return next, false, false, 0
}

// startCustom issues the start signal for a multi-cycle custom instruction.
// rs1 carries the descriptor (or base) address, rs2 the auxiliary operand.
func (c *Core) startCustom(inst *isa.DecodedInstruction, rs1, rs2 uint32) bool {
	switch inst.Custom {
	case isa.CustomMatMul:
		return c.matmul.Start(rs1)
	case isa.CustomDot:
		return c.dot.Start(rs1)
	case isa.CustomMaxPool:
		return c.pool.Start(units.PoolMax, rs1)
	case isa.CustomAvgPool:
		return c.pool.Start(units.PoolAvg, rs1)
	case isa.CustomDmaLoad:
		return c.dma.Start(units.DmaModeLoad, rs1, int(rs2))
	case isa.CustomDmaStore:
		return c.dma.Start(units.DmaModeStore, rs1, int(rs2))
	case isa.CustomVecVV:
		return c.vector.Start(units.VecModeVV, rs1, 0)
	case isa.CustomVecVX:
		return c.vector.Start(units.VecModeVX, rs1, rs2)
	case isa.CustomVecVI:
		// The 5-bit rs2 field itself is the broadcast immediate.
		imm := int32(uint32(inst.Rs2)<<27) >> 27
		return c.vector.Start(units.VecModeVI, rs1, uint32(imm))
	default:
		return false
	}
}

// pollCustom samples the active unit's done flag; when set it collects the
// validity and result and acknowledges the unit back to idle. A rejected
// completion reports done with valid false and a zero result.
func (c *Core) pollCustom(inst *isa.DecodedInstruction) (done bool, valid bool, result uint32) {
	switch inst.Custom {
	case isa.CustomMatMul:
		if c.matmul.Done() {
			valid = c.matmul.Valid()
			c.matmul.Ack()
			return true, valid, 0
		}
	case isa.CustomDot:
		if c.dot.Done() {
			valid = c.dot.Valid()
			if valid {
				result = c.dot.Result()
			}
			c.dot.Ack()
			return true, valid, result
		}
	case isa.CustomMaxPool, isa.CustomAvgPool:
		if c.pool.Done() {
			valid = c.pool.Valid()
			c.pool.Ack()
			return true, valid, 0
		}
	case isa.CustomDmaLoad, isa.CustomDmaStore:
		if c.dma.Done() {
			valid = c.dma.Valid()
			c.dma.Ack()
			return true, valid, 0
		}
	case isa.CustomVecVV, isa.CustomVecVX, isa.CustomVecVI:
		if c.vector.Done() {
			valid = c.vector.Valid()
			c.vector.Ack()
			return true, valid, 0
		}
	}
	return false, false, 0
}

// decodeStage decodes the IF/ID word and reads the register file. It also
// runs load-use hazard detection against the instruction currently in EX.
func (c *Core) decodeStage(ifid IfIdRegister, idex IdExRegister) (IdExRegister, bool) {
	if !ifid.Valid {
		return IdExRegister{}, false
	}

	inst := c.decoder.Decode(ifid.Word)

	// Load-use hazard: the EX-stage instruction reads memory and its
	// destination matches one of our sources.
	if idex.Valid && idex.Inst.Ctrl.MemRead && idex.Inst.Rd != 0 &&
		(idex.Inst.Rd == inst.Rs1 || idex.Inst.Rd == inst.Rs2) {
		return IdExRegister{}, true
	}

	return IdExRegister{
		Valid:    true,
		PC:       ifid.PC,
		Inst:     inst,
		Rs1Value: c.regs.Read(inst.Rs1),
		Rs2Value: c.regs.Read(inst.Rs2),
	}, false
}

// fetchStage fills IF/ID from instruction memory. A not-ready fetch is
// substituted with the NOP encoding so downstream stages never observe an
// undefined word; once fetchStop is set only bubbles enter the pipeline.
func (c *Core) fetchStage() {
	if c.fetchStop {
		c.ifid = IfIdRegister{}
		return
	}

	word, ready := c.mem.Fetch(c.pc)
	if !ready {
		word = isa.NopWord
	}
	c.ifid = IfIdRegister{Valid: true, PC: c.pc, Word: word}
	c.pc += 4
}
