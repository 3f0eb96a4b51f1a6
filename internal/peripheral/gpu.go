package peripheral

// GPU port range, per SPEC_FULL.md §1's Non-goal on pixel logic and
// §12's supplemented-feature note: the range is claimed so port-claim
// conflict and first-match-wins behavior (SPEC_FULL.md §4.5) are
// exercisable end to end, but no pixel buffer is interpreted.
const (
	gpuPortLo = 0x2000
	gpuPortHi = 0x20FF
)

// GPU is a port-claim stub: it stores the last value written to each
// port and reads it back, without interpreting it. Real pixel logic is
// out of scope
// (original_source/aiz32emu/src/gpu.rs's framebuffer and command set are
// explicitly not ported here).
type GPU struct {
	lastWritten [gpuPortHi - gpuPortLo + 1]uint32
}

func NewGPU() *GPU {
	return &GPU{}
}

func (g *GPU) HandlesPort(port uint16) bool {
	return port >= gpuPortLo && port <= gpuPortHi
}

func (g *GPU) Read(port uint16) uint32 {
	return g.lastWritten[port-gpuPortLo]
}

func (g *GPU) Write(port uint16, value uint32) {
	g.lastWritten[port-gpuPortLo] = value
}
