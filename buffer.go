// buffer.go - the fixed-size sample block every inter-node signal flows through

package graphcore

// ProcBuf is a pre-allocated, MaxBlockSize-sample block. Nodes never see
// raw slices directly; they read and write through a ProcBuf so every
// buffer in a Program is identically sized and never reallocated.
type ProcBuf struct {
	samples [MaxBlockSize]float32
}

// Read returns the sample at frame.
func (b *ProcBuf) Read(frame int) float32 {
	return b.samples[frame]
}

// Write stores v at frame.
func (b *ProcBuf) Write(frame int, v float32) {
	b.samples[frame] = v
}

// Fill sets every frame in the block to v. Used to materialize a
// smoother's final value across a full block and to give freshly added
// inputs a defined baseline.
func (b *ProcBuf) Fill(v float32) {
	for i := range b.samples {
		b.samples[i] = v
	}
}

// WriteFrom copies src into the first len(src) frames of the block.
func (b *ProcBuf) WriteFrom(src []float32) {
	copy(b.samples[:], src)
}

// Slice returns the first n samples as a plain slice, for callers (such
// as the monitor tap) that need a read-only view rather than per-frame
// access.
func (b *ProcBuf) Slice(n int) []float32 {
	return b.samples[:n]
}
