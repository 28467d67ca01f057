package units

// DmaMode selects the transfer direction. Any other mode value leaves the
// unit inert: no transfer starts and no completion is ever asserted.
type DmaMode int

const (
	DmaModeLoad  DmaMode = iota // memory -> channel
	DmaModeStore                // channel -> memory
)

// DmaUnit moves size consecutive words between a base address and the
// caller-visible channel buffer, one word per cycle. Completion asserts only
// after the full transfer count; aggregate counters mirror what the host
// logs at end of run.
type DmaUnit struct {
	mem   WordMemory
	state State

	mode    DmaMode
	base    uint32
	size    int
	index   int
	channel []uint32
	valid   bool

	totalTransfers int64
	totalWords     int64
}

func NewDmaUnit(mem WordMemory) *DmaUnit {
	return &DmaUnit{mem: mem}
}

// Start begins a transfer of size words at base. Load mode fills the channel
// from memory; Store mode drains the current channel contents to memory and
// requires the channel to hold at least size words. Unknown modes and
// non-positive sizes are silently inert. The whole range is validated up
// front so a rejected transfer leaves no partial memory mutation.
func (u *DmaUnit) Start(mode DmaMode, base uint32, size int) bool {
	if u.state != StateIdle || size <= 0 {
		return false
	}
	if !wordsAddressable(u.mem, base, size) {
		return false
	}
	switch mode {
	case DmaModeLoad:
		u.channel = make([]uint32, 0, size)
	case DmaModeStore:
		if len(u.channel) < size {
			return false
		}
	default:
		return false
	}

	u.mode = mode
	u.base = base
	u.size = size
	u.index = 0
	u.state = StateCompute
	u.valid = false
	return true
}

// Tick moves one word.
func (u *DmaUnit) Tick() {
	if u.state != StateCompute {
		return
	}

	addr := u.base + uint32(u.index)*4
	switch u.mode {
	case DmaModeLoad:
		word, ok := u.mem.Load(addr)
		if !ok {
			u.state = StateDone
			return
		}
		u.channel = append(u.channel, word)
	case DmaModeStore:
		if !u.mem.Store(addr, u.channel[u.index]) {
			u.state = StateDone
			return
		}
	}

	u.index++
	if u.index == u.size {
		u.state = StateDone
		u.valid = true
		u.totalTransfers++
		u.totalWords += int64(u.size)
	}
}

func (u *DmaUnit) Busy() bool {
	return u.state == StateCompute
}

func (u *DmaUnit) Done() bool {
	return u.state == StateDone
}

func (u *DmaUnit) Valid() bool {
	return u.valid
}

func (u *DmaUnit) Ack() {
	if u.state == StateDone {
		u.state = StateIdle
		u.valid = false
	}
}

// Reset returns the unit to its power-on state: idle, channel drained and
// the aggregate counters cleared.
func (u *DmaUnit) Reset() {
	u.state = StateIdle
	u.valid = false
	u.channel = nil
	u.totalTransfers = 0
	u.totalWords = 0
}

// Channel exposes the caller-visible buffer of the last completed load.
func (u *DmaUnit) Channel() []uint32 {
	return u.channel
}

// SetChannel preloads the channel ahead of a store transfer.
func (u *DmaUnit) SetChannel(words []uint32) {
	u.channel = append(u.channel[:0], words...)
}

// Totals reports aggregate transfer statistics.
func (u *DmaUnit) Totals() (transfers int64, words int64) {
	return u.totalTransfers, u.totalWords
}
