package core

// RegisterFile holds the 32 general-purpose registers. Register 0 is
// hardwired to zero: writes to it are dropped and reads always return 0.
// The file is instance-scoped so multiple simulator instances can coexist.
type RegisterFile struct {
	regs [32]uint32
}

func NewRegisterFile() *RegisterFile {
	return &RegisterFile{}
}

// Read returns the register value. Out-of-range indices read as zero, the
// same way an undriven select reads in the hardware.
func (rf *RegisterFile) Read(index int) uint32 {
	if index <= 0 || index >= len(rf.regs) {
		return 0
	}
	return rf.regs[index]
}

// Write stores value into the register. Writes to x0 are ignored.
func (rf *RegisterFile) Write(index int, value uint32) {
	if index <= 0 || index >= len(rf.regs) {
		return
	}
	rf.regs[index] = value
}

// Reset zeroes every register.
func (rf *RegisterFile) Reset() {
	rf.regs = [32]uint32{}
}
