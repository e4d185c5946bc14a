// modop.go - modulation operators

package graphcore

import (
	"math"
	"sync/atomic"
)

// ModOp mixes a source buffer into a destination input buffer with a
// scalar amount. Amount is the only mutable field, set from the
// command queue (ModamtUpdate) and read on the audio thread, so it is
// stored atomically rather than behind a lock.
type ModOp struct {
	src    *ProcBuf
	destIn int // index into Program.CurInp this op modulates
	amt    atomic.Uint32 // float32 bits
}

// NewModOp builds a ModOp reading from src and writing into the input
// buffer at destIn.
func NewModOp(src *ProcBuf, destIn int) *ModOp {
	m := &ModOp{src: src, destIn: destIn}
	m.SetAmt(0)
	return m
}

// SetAmt is the sole mutator, invoked from the command queue.
func (m *ModOp) SetAmt(amt float32) {
	m.amt.Store(math.Float32bits(amt))
}

// Amt returns the current amount.
func (m *ModOp) Amt() float32 {
	return math.Float32frombits(m.amt.Load())
}

// DestIn returns the destination input-buffer index this op modulates.
func (m *ModOp) DestIn() int { return m.destIn }

// Process blends src*amt into the destination input buffer for nframes.
func (m *ModOp) Process(dest *ProcBuf, nframes int) {
	amt := m.Amt()
	for f := 0; f < nframes; f++ {
		dest.Write(f, dest.Read(f)+m.src.Read(f)*amt)
	}
}
