package peripheral

// Keyboard ports, per SPEC_FULL.md §12: 0x3000 yields the next queued
// keycode (0 if empty), writing 0 to 0x3001 acknowledges and pops it.
// Grounded in original_source/aiz32emu/src/keyboard.rs's VecDeque-backed
// acknowledge-on-write-0 protocol, reimplemented over a plain Go slice
// since the machine mutex already serializes access (SPEC_FULL.md §5).
const (
	KeyboardPortNext = 0x3000
	KeyboardPortAck  = 0x3001
)

// Keyboard is a queued keycode input peripheral.
type Keyboard struct {
	queue []uint32
}

// NewKeyboard returns an empty keyboard.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Push enqueues a keycode for the guest program to observe. Called by
// the embedder between CPU steps (SPEC_FULL.md §5).
func (k *Keyboard) Push(keycode uint32) {
	k.queue = append(k.queue, keycode)
}

func (k *Keyboard) HandlesPort(port uint16) bool {
	return port == KeyboardPortNext || port == KeyboardPortAck
}

func (k *Keyboard) Read(port uint16) uint32 {
	if port != KeyboardPortNext {
		return 0
	}
	if len(k.queue) == 0 {
		return 0
	}
	return k.queue[0]
}

func (k *Keyboard) Write(port uint16, value uint32) {
	if port != KeyboardPortAck || value != 0 {
		return
	}
	if len(k.queue) > 0 {
		k.queue = k.queue[1:]
	}
}
