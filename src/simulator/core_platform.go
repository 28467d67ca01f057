package simulator

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"mirvsim/src/core"
	"mirvsim/src/misc"
)

// CorePlatform drives a single pipelined core until it halts or the
// cycle watchdog fires.
type CorePlatform struct {
	config_loader *misc.ConfigLoader
	core          *core.Core

	cycles     int64
	max_cycles int64

	out_dirpath  string
	stat_factory *misc.StatFactory
}

func (this *CorePlatform) Init(command_line_parser *misc.CommandLineParser) {
	config_loader := new(misc.ConfigLoader)
	config_loader.Init()
	this.config_loader = config_loader

	this.max_cycles = config_loader.MaxCycles()
	this.out_dirpath = config_loader.OutDirpath()

	stat_factory := new(misc.StatFactory)
	stat_factory.Init("CorePlatform")
	this.stat_factory = stat_factory

	this.core = core.NewCore(config_loader.MemoryWords())

	image_filepath := config_loader.ImageFilepath()
	if image_filepath != "" {
		this.loadImage(image_filepath)
	}

	this.core.SetPC(config_loader.StartPc())

	misc.Logf(1, "[core] initialized: %d memory words, start pc 0x%08x",
		config_loader.MemoryWords(), config_loader.StartPc())
}

func (this *CorePlatform) Fini() {
}

func (this *CorePlatform) IsFinished() bool {
	if this.core.Halted() {
		return true
	}

	if this.cycles >= this.max_cycles {
		misc.Logf(0, "[core] watchdog: %d cycles elapsed without halting", this.cycles)
		return true
	}

	return false
}

func (this *CorePlatform) Cycle() {
	this.core.Cycle()
	this.cycles++

	retire := this.core.LastRetire()
	if retire.Valid {
		misc.Logf(1, "[cycle %d] pc=0x%08x inst=0x%08x", this.cycles, retire.PC, retire.Raw)
		if retire.RegWrite && retire.Rd != 0 {
			misc.Logf(2, "          x%d <- 0x%08x", retire.Rd, retire.Value)
		}
	}
}

func (this *CorePlatform) Dump() {
	stats := this.core.Stats()

	this.stat_factory.Set("cycles_total", int64(stats.Cycles))
	this.stat_factory.Set("instructions_total", int64(stats.Instructions))
	this.stat_factory.Set("stalls_total", int64(stats.Stalls))
	this.stat_factory.Set("flushes_total", int64(stats.Flushes))

	dma_transfers, dma_words := this.core.Dma().Totals()
	this.stat_factory.Set("dma_transfers_total", dma_transfers)
	this.stat_factory.Set("dma_words_total", dma_words)

	lines := this.stat_factory.ToLines()
	lines = append(lines, fmt.Sprintf("CorePlatform_cpi: %.4f", stats.CPI()))

	for i := 0; i < 32; i++ {
		lines = append(lines, fmt.Sprintf("x%d: 0x%08x", i, this.core.Registers().Read(i)))
	}

	for _, line := range lines {
		misc.Logf(0, "%s", line)
	}

	if this.out_dirpath == "" {
		return
	}

	file_dumper := new(misc.FileDumper)
	file_dumper.Init(filepath.Join(this.out_dirpath, "sim_log.txt"))
	file_dumper.WriteLines(lines)

	memory_lines := make([]string, 0)
	memory := this.core.Memory()
	for word := 0; word < memory.SizeWords(); word++ {
		value, _ := memory.Load(uint32(word * 4))
		if value != 0 {
			memory_lines = append(memory_lines, fmt.Sprintf("%08x: %08x", word*4, value))
		}
	}

	memory_dumper := new(misc.FileDumper)
	memory_dumper.Init(filepath.Join(this.out_dirpath, "memory_dump.txt"))
	memory_dumper.WriteLines(memory_lines)
}

func (this *CorePlatform) Core() *core.Core {
	return this.core
}

// loadImage fills memory from a text image. Each line is either a bare
// hex word placed at the next sequential address, or "addr: value" with
// both in hex. Blank lines and '#' comments are skipped.
func (this *CorePlatform) loadImage(image_filepath string) {
	file_loader := new(misc.FileLoader)
	file_loader.Init(image_filepath)

	memory := this.core.Memory()

	next_addr := uint32(0)
	for line_num, line := range file_loader.ReadLines() {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		addr := next_addr
		value_field := line
		if colon := strings.Index(line, ":"); colon >= 0 {
			addr_field := strings.TrimSpace(line[:colon])
			parsed_addr, err := strconv.ParseUint(strings.TrimPrefix(addr_field, "0x"), 16, 32)
			if err != nil {
				panic(fmt.Errorf("%s:%d: bad address %q", image_filepath, line_num+1, addr_field))
			}
			addr = uint32(parsed_addr)
			value_field = strings.TrimSpace(line[colon+1:])
		}

		value, err := strconv.ParseUint(strings.TrimPrefix(value_field, "0x"), 16, 32)
		if err != nil {
			panic(fmt.Errorf("%s:%d: bad word %q", image_filepath, line_num+1, value_field))
		}

		if !memory.InRange(addr) {
			panic(fmt.Errorf("%s:%d: address 0x%08x is outside memory", image_filepath, line_num+1, addr))
		}
		memory.Store(addr, uint32(value))
		next_addr = addr + 4
	}
}
