// node_tseq.go - TSeq: a tracker-driven sequencer

package graphcore

// tseqCMode selects how the "clock" input drives pattern position.
type tseqCMode int32

const (
	// TseqCModeRowT: clock is a wrapping 0..1 ramp, each wrap advances
	// one pattern row; trigger = advance row.
	TseqCModeRowT tseqCMode = iota
	// TseqCModePatT: clock is a wrapping 0..1 ramp, each wrap advances
	// one full pattern cycle; trigger = pattern rate.
	TseqCModePatT
	// TseqCModePhase: clock is taken directly as a 0..1 phase into the
	// pattern (no edge/wrap tracking).
	TseqCModePhase
)

// triggerClock unwraps a repeating 0..1 ramp into a continuous,
// monotonically increasing phase by detecting wraparounds (a decrease
// in the input) and counting them.
type triggerClock struct {
	offset      float64
	prev        float64
	initialized bool
}

func (t *triggerClock) nextPhase(clock float64) float64 {
	if t.initialized && clock < t.prev-1e-6 {
		t.offset++
	}
	t.prev = clock
	t.initialized = true
	return t.offset + clock
}

func (t *triggerClock) reset() {
	t.offset = 0
	t.prev = 0
	t.initialized = false
}

// NodeTSeq is the TSeq kernel: reads a shared TrackerBackend (owned
// externally, injected via SetBackend); its atom selector cmode picks
// row-trigger / pattern-trigger / direct-phase semantics. Per frame, it
// derives a phase in [0,1) over the current pattern length; per column
// (6 tracks), it asks the backend for (value, gate) slices at those
// phases, writing 12 outputs (6 tracks x {signal, gate}: outputs[0..5]
// are the six track signals, outputs[6..11] the six gates).
//
// Missing backend produces silence this block.
type NodeTSeq struct {
	backend TrackerBackend
	clock   triggerClock
	srate   float32
}

// NewNodeTSeq returns a fresh TSeq kernel with no backend attached.
func NewNodeTSeq() *NodeTSeq {
	return &NodeTSeq{srate: DefaultSampleRate}
}

// SetBackend injects the pattern-data source.
func (n *NodeTSeq) SetBackend(b TrackerBackend) { n.backend = b }

func (n *NodeTSeq) Outputs() int { return 12 }

func (n *NodeTSeq) SetSampleRate(srate float32) { n.srate = srate }

func (n *NodeTSeq) Reset() {
	n.backend = nil
	n.clock.reset()
}

func (n *NodeTSeq) Process(ctx AudioContext, ectx *ExecContext, nctx *NodeContext, atoms []Atom, inputs, outputs []*ProcBuf, ledPhase LEDPhase) {
	clockIn := inputs[0]
	cmode := tseqCMode(atoms[0].I())

	if n.backend == nil {
		for _, o := range outputs {
			o.Fill(0)
		}
		return
	}
	n.backend.CheckUpdates()

	nframes := ctx.NFrames()

	var phaseOut [MaxBlockSize]float32
	plen := float64(n.backend.PatternLen())
	if plen < 1 {
		plen = 1
	}

	for frame := 0; frame < nframes; frame++ {
		clockVal := float64(clockIn.Read(frame))

		var clockPhase float64
		if cmode < TseqCModePhase {
			clockPhase = n.clock.nextPhase(clockVal)
		} else {
			v := clockVal
			if v < 0 {
				v = -v
			}
			clockPhase = v
		}

		var phase float64
		switch cmode {
		case TseqCModeRowT:
			for clockPhase >= plen {
				clockPhase -= plen
			}
			phase = clockPhase / plen
		default: // PatT, Phase
			phase = clockPhase - float64(int(clockPhase))
		}

		phaseOut[frame] = float32(phase)
	}

	var colSig, colGate [MaxBlockSize]float32
	phaseSlice := phaseOut[:nframes]

	for col := 0; col < 6; col++ {
		sigSlice := colSig[:nframes]
		gateSlice := colGate[:nframes]
		n.backend.GetColAtPhase(col, phaseSlice, sigSlice, gateSlice)
		outputs[col].WriteFrom(sigSlice)
		outputs[6+col].WriteFrom(gateSlice)
	}

	ledPhase[0].Set(colSig[nframes-1])
	ledPhase[1].Set(phaseOut[nframes-1])
}
