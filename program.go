// program.go - the compiled, flat execution plan for one graph configuration

package graphcore

// Op describes one node invocation within a Program: which node slot to
// run, and the slices of the Program's buffer pools that feed it.
type Op struct {
	NodeIdx int

	InIdx, InLen   int
	OutIdx, OutLen int
	AtIdx, AtLen   int
	ModIdx, ModLen int

	OutConnected []bool
	InConnected  []bool
}

// Program is an immutable-once-installed, flat representation of a
// compiled graph: an ordered list of Ops plus the buffer pools they
// slice into. A Program produced by the (out of scope) compiler is
// handed to the Executor via a NewProg command.
type Program struct {
	Ops []Op

	Inp    []ProcBuf // current-block input buffers, one per Op input port
	CurInp []ProcBuf // working copy ModOps write into before a kernel reads it

	Out []ProcBuf // output buffers, one per Op output port

	Atoms  []Atom
	ModOps []*ModOp

	// OutFeedback holds the last-frame sample of every output buffer,
	// published once per block for cross-block UI feedback.
	OutFeedback []float32

	// Params mirrors the last value handed to each input index via
	// ParamUpdate/smoother convergence - the baseline a Smoother ramps
	// from and what InitializeInputBuffers() replays into Inp.
	Params []float32

	// MonitorIdx holds up to MonSigCnt buffer-pool indices selected by
	// the editor; UnusedMonitorIdx marks a disabled slot. Which pool an
	// index selects is determined by its channel position, not its
	// magnitude: channels 0-2 index into CurInp (the per-block
	// modulated working copy), channels 3-5 index into Out.
	MonitorIdx [MonSigCnt]uint32
}

// Empty returns a zero-op program safe to run immediately (e.g. before
// the first NewProg arrives, or after a Clear).
func Empty() *Program {
	p := &Program{}
	for i := range p.MonitorIdx {
		p.MonitorIdx[i] = UnusedMonitorIdx
	}
	return p
}

// InitializeInputBuffers fills every input buffer with its last known
// parameter value, giving freshly added inputs a defined baseline
// instead of silence or garbage.
func (p *Program) InitializeInputBuffers() {
	for i := range p.Inp {
		v := float32(0)
		if i < len(p.Params) {
			v = p.Params[i]
		}
		p.Inp[i].Fill(v)
	}
}

// SwapPreviousOutputs migrates smoothed-parameter history from prev so
// in-flight ramps continue seamlessly across a Program swap. Output
// buffers are deliberately NOT carried over: the engine disallows
// cycles that would cross a program boundary, so there is nothing
// meaningful to preserve there.
func (p *Program) SwapPreviousOutputs(prev *Program) {
	if prev == nil {
		return
	}
	n := len(p.Params)
	if len(prev.Params) < n {
		n = len(prev.Params)
	}
	for i := 0; i < n; i++ {
		p.Params[i] = prev.Params[i]
	}
	m := len(p.Inp)
	if len(prev.Inp) < m {
		m = len(prev.Inp)
	}
	for i := 0; i < m; i++ {
		p.Inp[i] = prev.Inp[i]
	}
}

// AssignOutputs binds each Op's output-slice indices into the physical
// Out buffer pool. Called after a Program's buffer pools and Ops are
// otherwise populated, by the (out of scope) compiler or by tests
// constructing a Program by hand, and again by the Executor when it
// installs the Program; repeated calls yield the same indices.
func (p *Program) AssignOutputs() {
	next := 0
	for i := range p.Ops {
		op := &p.Ops[i]
		op.OutIdx = next
		next += op.OutLen
	}
	if next > len(p.Out) {
		grown := make([]ProcBuf, next)
		copy(grown, p.Out)
		p.Out = grown
	}
}

// validOp reports whether op's slice bounds fit within p's pools - the
// invariant every Op must satisfy before the executor runs it.
func (p *Program) validOp(op Op) bool {
	if op.NodeIdx < 0 {
		return false
	}
	if op.InIdx < 0 || op.InIdx+op.InLen > len(p.Inp) {
		return false
	}
	if op.OutIdx < 0 || op.OutIdx+op.OutLen > len(p.Out) {
		return false
	}
	if op.AtIdx < 0 || op.AtIdx+op.AtLen > len(p.Atoms) {
		return false
	}
	if op.ModIdx < 0 || op.ModIdx+op.ModLen > len(p.ModOps) {
		return false
	}
	return true
}
