package core

import (
	"mirvsim/src/isa"
	"mirvsim/src/units"
)

// RetireInfo is the debug/observability surface for the cycle just
// completed: the minimum state an external harness needs to check
// correctness without reaching into internals.
type RetireInfo struct {
	Valid    bool
	PC       uint32
	Raw      uint32
	Rd       int
	Value    uint32
	RegWrite bool
}

// Stats aggregates run counters. CPI is derived on demand.
type Stats struct {
	Cycles       uint64
	Instructions uint64
	Stalls       uint64
	Flushes      uint64
}

func (s Stats) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}

// Core is one simulated MIRV-32 core: the 5-stage pipeline plus the state it
// owns (register file, memory image, CSR bank) and the custom functional
// units it dispatches to. Everything is instance-scoped; independent cores
// can run side by side.
type Core struct {
	decoder *isa.Decoder
	regs    *RegisterFile
	mem     *Memory
	csr     *CsrBank

	matmul     *units.MatMulUnit
	dot        *units.DotUnit
	mac        *units.MacUnit
	pool       *units.PoolUnit
	activation *units.ActivationUnit
	dma        *units.DmaUnit
	amo        *units.AmoUnit
	vector     *units.VectorUnit
	fpu        *units.FpuUnit

	pc    uint32
	ifid  IfIdRegister
	idex  IdExRegister
	exmem ExMemRegister
	memwb MemWbRegister

	// unitActive marks that the EX-stage instruction has already issued
	// its start signal to a multi-cycle unit.
	unitActive bool
	// fetchStop suppresses fetch once a halt has been seen in execute so
	// the pipeline drains bubbles behind it.
	fetchStop bool

	halted bool
	stats  Stats
	retire RetireInfo
}

// NewCore builds a core with a memory image of memWords 32-bit words.
func NewCore(memWords int) *Core {
	mem := NewMemory(memWords)
	return &Core{
		decoder:    isa.NewDecoder(),
		regs:       NewRegisterFile(),
		mem:        mem,
		csr:        NewCsrBank(),
		matmul:     units.NewMatMulUnit(mem),
		dot:        units.NewDotUnit(mem),
		mac:        units.NewMacUnit(),
		pool:       units.NewPoolUnit(mem),
		activation: units.NewActivationUnit(),
		dma:        units.NewDmaUnit(mem),
		amo:        units.NewAmoUnit(mem),
		vector:     units.NewVectorUnit(mem),
		fpu:        units.NewFpuUnit(mem),
	}
}

// Reset returns the core to its power-on state. The memory image is left in
// place so a preloaded program survives the reset. The functional units are
// forced back to idle so a unit left mid-flight by an aborted run cannot
// reject the first custom instruction of the next one.
func (c *Core) Reset() {
	c.regs.Reset()
	c.csr.Reset()
	c.matmul.Reset()
	c.dot.Reset()
	c.mac.Clear()
	c.pool.Reset()
	c.dma.Reset()
	c.vector.Reset()
	c.fpu.Reset()
	c.pc = 0
	c.ifid = IfIdRegister{}
	c.idex = IdExRegister{}
	c.exmem = ExMemRegister{}
	c.memwb = MemWbRegister{}
	c.unitActive = false
	c.fetchStop = false
	c.halted = false
	c.stats = Stats{}
	c.retire = RetireInfo{}
}

// PC returns the current fetch program counter.
func (c *Core) PC() uint32 {
	return c.pc
}

// SetPC redirects fetch, typically after preloading a program.
func (c *Core) SetPC(pc uint32) {
	c.pc = pc
}

// Halted reports whether an EBREAK has retired.
func (c *Core) Halted() bool {
	return c.halted
}

// Memory exposes the flat image for preloading and inspection.
func (c *Core) Memory() *Memory {
	return c.mem
}

// Registers exposes the register file for harness assertions.
func (c *Core) Registers() *RegisterFile {
	return c.regs
}

// Csr exposes the CSR bank.
func (c *Core) Csr() *CsrBank {
	return c.csr
}

// Dma exposes the DMA channel buffer to the harness.
func (c *Core) Dma() *units.DmaUnit {
	return c.dma
}

// Stats returns the aggregate counters so far.
func (c *Core) Stats() Stats {
	return c.stats
}

// LastRetire returns the debug surface for the cycle just completed.
func (c *Core) LastRetire() RetireInfo {
	return c.retire
}

// Drain steps the core until the pipeline is empty or maxCycles elapses,
// which is how a harness settles in-flight state after the last fetch.
func (c *Core) Drain(maxCycles int) {
	for i := 0; i < maxCycles; i++ {
		if c.halted {
			return
		}
		c.Cycle()
	}
}
