package core

// Supported CSR addresses. Everything else reads zero and ignores writes.
const (
	CsrMstatus = 0x300
	CsrMtvec   = 0x305
	CsrMepc    = 0x341
	CsrMcause  = 0x342
)

// CsrBank backs the machine-mode CSR subset with storage. The 12-bit address
// space outside the subset is wired to zero.
type CsrBank struct {
	values map[uint32]uint32
}

func NewCsrBank() *CsrBank {
	bank := &CsrBank{}
	bank.Reset()
	return bank
}

func (b *CsrBank) backed(addr uint32) bool {
	_, ok := b.values[addr]
	return ok
}

// Read returns the CSR value, or zero for unbacked addresses.
func (b *CsrBank) Read(addr uint32) uint32 {
	return b.values[addr&0xFFF]
}

// Write stores value if the address is backed; unbacked writes are dropped.
func (b *CsrBank) Write(addr uint32, value uint32) {
	addr &= 0xFFF
	if b.backed(addr) {
		b.values[addr] = value
	}
}

// Reset restores every backed CSR to zero.
func (b *CsrBank) Reset() {
	b.values = map[uint32]uint32{
		CsrMstatus: 0,
		CsrMtvec:   0,
		CsrMepc:    0,
		CsrMcause:  0,
	}
}
