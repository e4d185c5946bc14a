// led.go - LED/phase telemetry atomics

package graphcore

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a lock-free float32, written by the audio thread and
// read by the editor thread. Relaxed ordering is acceptable: these are
// UI hints, not consistency points.
type AtomicFloat struct {
	bits atomic.Uint32
}

// Set stores v.
func (a *AtomicFloat) Set(v float32) { a.bits.Store(math.Float32bits(v)) }

// Load returns the current value.
func (a *AtomicFloat) Load() float32 { return math.Float32frombits(a.bits.Load()) }

// NodeCtxValues is the flat array of 2*MaxAllocatedNodes telemetry
// atomics published to the editor: LED and phase, interleaved per node
// slot.
type NodeCtxValues struct {
	values [2 * MaxAllocatedNodes]AtomicFloat
}

// NewNodeCtxValues allocates the telemetry array.
func NewNodeCtxValues() *NodeCtxValues { return &NodeCtxValues{} }

// Slot returns the [led, phase] pair for a given node index.
func (v *NodeCtxValues) Slot(nodeIdx int) LEDPhase {
	base := nodeIdx * 2
	return LEDPhase{&v.values[base], &v.values[base+1]}
}
