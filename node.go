// node.go - the kernel contract

package graphcore

// NodeContext carries per-Op connection masks and the raw parameter
// values backing each input, so a kernel can skip work on unconnected
// ports without inspecting the Program directly.
type NodeContext struct {
	OutConnected []bool
	InConnected  []bool
	Params       []*ProcBuf
}

// LEDPhase is the pair of telemetry floats a kernel may publish per
// block: index 0 is the LED value, index 1 an optional phase-like
// value. Both are lock-free atomics shared with the editor thread.
type LEDPhase = [2]*AtomicFloat

// Node is the kernel contract every DSP node satisfies, dispatched
// through an interface rather than a closed tagged union - the
// idiomatic shape in Go.
type Node interface {
	// Outputs is the static count of output signals this kernel produces.
	Outputs() int
	// SetSampleRate reconfigures rate-dependent state; may reset history.
	SetSampleRate(srate float32)
	// Reset returns the node to a quiescent state without allocating.
	Reset()
	// Process consumes its input ports for ctx.NFrames() frames,
	// writes the same count to every output, and may publish up to two
	// telemetry floats via ledPhase.
	Process(ctx AudioContext, ectx *ExecContext, nctx *NodeContext, atoms []Atom, inputs, outputs []*ProcBuf, ledPhase LEDPhase)
}

// ExecContext carries global state every node may access at runtime.
// Presently this is only the per-node feedback delay buffers used by
// the FbWr/FbRd pair, the only legal way to form a cycle.
type ExecContext struct {
	FeedbackDelayBuffers []*FeedbackBuffer
}

// NewExecContext allocates one feedback buffer per node slot.
func NewExecContext() *ExecContext {
	ec := &ExecContext{FeedbackDelayBuffers: make([]*FeedbackBuffer, MaxAllocatedNodes)}
	for i := range ec.FeedbackDelayBuffers {
		ec.FeedbackDelayBuffers[i] = NewFeedbackBuffer()
	}
	return ec
}

func (ec *ExecContext) SetSampleRate(sr float32) {
	for _, b := range ec.FeedbackDelayBuffers {
		b.SetSampleRate(sr)
	}
}

func (ec *ExecContext) Clear() {
	for _, b := range ec.FeedbackDelayBuffers {
		b.Clear()
	}
}

// IsNop reports whether n is the quiescent placeholder node, used by
// Clear/NewNode to decide what needs draining to the drop queue.
func IsNop(n Node) bool {
	_, ok := n.(*NopNode)
	return ok
}
