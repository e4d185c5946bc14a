// executor.go - drives one audio block end to end

package graphcore

import "time"

// maxOpPorts bounds the input/output port count any single Op may
// reference - generous headroom above the largest kernel in the family
// (TSeq, at 12 outputs) so per-Op port slices reuse fixed scratch
// arrays instead of allocating on the audio thread.
const maxOpPorts = 16

// GraphMessageKind tags the variant carried by a GraphMessage.
type GraphMessageKind int

const (
	MsgNewNode GraphMessageKind = iota
	MsgClear
	MsgNewProg
	MsgAtomUpdate
	MsgParamUpdate
	MsgModamtUpdate
	MsgSetMonitor
)

// GraphMessage is one command sent from the editor thread to the audio
// thread over the graph-update queue. Only the fields relevant to Kind
// are meaningful.
type GraphMessage struct {
	Kind GraphMessageKind

	NodeIdx int
	Node    Node

	Prog       *Program
	CopyOldOut bool

	AtomIdx int
	AtomVal Atom

	ParamIdx int
	ParamVal float32

	ModIdx int
	ModAmt float32

	MonitorIdx [MonSigCnt]uint32
}

// DropMsgKind tags the variant carried by a DropMsg.
type DropMsgKind int

const (
	DropNode DropMsgKind = iota
	DropProgram
	DropAtomMsg
)

// DropMsg carries an object displaced from the audio thread to the
// drop queue for deallocation off-audio.
type DropMsg struct {
	Kind DropMsgKind
	Node Node
	Prog *Program
	Atom Atom
}

// SharedQueues are the two SPSC rings connecting the editor thread and
// the audio thread: commands flow down via Graph, displaced objects
// flow up via Drop.
type SharedQueues struct {
	Graph *Queue[GraphMessage]
	Drop  *Queue[DropMsg]
}

// NewSharedQueues allocates both rings.
func NewSharedQueues() *SharedQueues {
	return &SharedQueues{Graph: NewQueue[GraphMessage](), Drop: NewQueue[DropMsg]()}
}

type targetRefreshEntry struct {
	idx int
	v   float32
}

// Executor owns the live node instances and the compiled Program; it
// is driven entirely by the audio thread.
type Executor struct {
	nodes         []Node
	smoothers     []Smoother
	smootherOwner []int // input idx each smoother targets, -1 if idle
	targetRefresh []targetRefreshEntry

	prog  *Program
	ectx  *ExecContext
	leds  *NodeCtxValues
	mon   MonitorBackend
	queue *SharedQueues

	sampleRate float32
	logger     threadLogger

	// OutFeedback is the published (block-end-consistent) copy of the
	// Program's per-output last-frame samples.
	OutFeedback []float32

	inPtrScratch    [maxOpPorts]*ProcBuf
	paramPtrScratch [maxOpPorts]*ProcBuf
	outPtrScratch   [maxOpPorts]*ProcBuf
	nctxScratch     NodeContext
}

// NewExecutor allocates MaxAllocatedNodes Nop nodes, MaxSmoothers idle
// smoothers, per-node feedback buffers, and an empty Program. Intended
// to be called before the audio thread starts.
func NewExecutor(queue *SharedQueues, mon MonitorBackend) *Executor {
	e := &Executor{
		nodes:         make([]Node, MaxAllocatedNodes),
		smoothers:     make([]Smoother, MaxSmoothers),
		smootherOwner: make([]int, MaxSmoothers),
		targetRefresh: make([]targetRefreshEntry, 0, MaxSmoothers),
		prog:          Empty(),
		ectx:          NewExecContext(),
		leds:          NewNodeCtxValues(),
		mon:           mon,
		queue:         queue,
		sampleRate:    DefaultSampleRate,
	}
	for i := range e.nodes {
		e.nodes[i] = &NopNode{}
	}
	for i := range e.smoothers {
		e.smoothers[i] = NewSmoother()
		e.smootherOwner[i] = -1
	}
	return e
}

// SetSampleRate propagates a host sample-rate change to every node,
// every smoother, and every feedback buffer.
func (e *Executor) SetSampleRate(sr float32) {
	e.sampleRate = sr
	for _, n := range e.nodes {
		n.SetSampleRate(sr)
	}
	for i := range e.smoothers {
		e.smoothers[i].SetSampleRate(sr)
	}
	e.ectx.SetSampleRate(sr)
}

// LEDPhase returns the telemetry slot for a node index, for the editor
// thread to poll.
func (e *Executor) LEDPhase(nodeIdx int) LEDPhase { return e.leds.Slot(nodeIdx) }

// Queue returns the shared command/drop queues, so collaborators on
// the editor side (or a demo driver standing in for one) can push
// GraphMessages without the Executor exposing its internal state.
func (e *Executor) Queue() *SharedQueues { return e.queue }

// drop pushes a displaced object to the drop queue; if the queue is
// full the object is leaked in preference to stalling the audio
// thread.
func (e *Executor) drop(msg DropMsg) {
	e.queue.Drop.Push(msg)
}

// ProcessGraphUpdates drains the command queue. Any displaced object
// is pushed to the drop queue and never touched again on this thread.
// Malformed commands (out-of-range indices) are silently ignored.
func (e *Executor) ProcessGraphUpdates() {
	for {
		msg, ok := e.queue.Graph.Pop()
		if !ok {
			return
		}
		switch msg.Kind {
		case MsgNewNode:
			if msg.NodeIdx < 0 || msg.NodeIdx >= len(e.nodes) || msg.Node == nil {
				continue
			}
			msg.Node.SetSampleRate(e.sampleRate)
			old := e.nodes[msg.NodeIdx]
			e.nodes[msg.NodeIdx] = msg.Node
			if !IsNop(old) {
				e.drop(DropMsg{Kind: DropNode, Node: old})
			}

		case MsgClear:
			for i := range e.nodes {
				if !IsNop(e.nodes[i]) {
					e.drop(DropMsg{Kind: DropNode, Node: e.nodes[i]})
					e.nodes[i] = &NopNode{}
				}
			}
			e.ectx.Clear()
			oldProg := e.prog
			if msg.Prog != nil {
				e.prog = msg.Prog
			} else {
				e.prog = Empty()
			}
			for i := range e.prog.MonitorIdx {
				e.prog.MonitorIdx[i] = UnusedMonitorIdx
			}
			for i := range e.smootherOwner {
				e.smootherOwner[i] = -1
			}
			e.targetRefresh = e.targetRefresh[:0]
			if oldProg != nil {
				e.drop(DropMsg{Kind: DropProgram, Prog: oldProg})
			}

		case MsgNewProg:
			if msg.Prog == nil {
				continue
			}
			enableFlushToZero()

			old := e.prog
			e.prog = msg.Prog

			// Every input gets a defined baseline first, including
			// ports that didn't exist in the previous Program. The
			// modulation/smoother history preserved below then
			// overwrites the surviving indices.
			e.prog.InitializeInputBuffers()
			if msg.CopyOldOut {
				e.prog.SwapPreviousOutputs(old)
			}
			e.prog.AssignOutputs()

			for i := range e.prog.MonitorIdx {
				e.prog.MonitorIdx[i] = UnusedMonitorIdx
			}
			if old != nil {
				e.drop(DropMsg{Kind: DropProgram, Prog: old})
			}

		case MsgAtomUpdate:
			if msg.AtomIdx < 0 || msg.AtomIdx >= len(e.prog.Atoms) {
				continue
			}
			old := e.prog.Atoms[msg.AtomIdx]
			e.prog.Atoms[msg.AtomIdx] = msg.AtomVal
			e.drop(DropMsg{Kind: DropAtomMsg, Atom: old})

		case MsgParamUpdate:
			e.setParam(msg.ParamIdx, msg.ParamVal)

		case MsgModamtUpdate:
			if msg.ModIdx < 0 || msg.ModIdx >= len(e.prog.ModOps) {
				continue
			}
			e.prog.ModOps[msg.ModIdx].SetAmt(msg.ModAmt)

		case MsgSetMonitor:
			e.prog.MonitorIdx = msg.MonitorIdx
		}
	}
}

// setParam implements the Smoother claim/retarget contract: retarget
// an in-flight smoother for idx if one exists, else claim an idle one,
// else silently drop the update.
func (e *Executor) setParam(idx int, value float32) {
	if idx < 0 || idx >= len(e.prog.Params) {
		return
	}
	for i := range e.smoothers {
		if e.smootherOwner[i] == idx {
			e.smoothers[i].Set(e.prog.Params[idx], value)
			return
		}
	}
	for i := range e.smoothers {
		if e.smootherOwner[i] == -1 {
			e.smootherOwner[i] = idx
			e.smoothers[i].Set(e.prog.Params[idx], value)
			return
		}
	}
	// All smoothers busy: dropped, editor is expected to rate-limit.
}

func (e *Executor) processSmoothers(nframes int) {
	prog := e.prog

	for _, tr := range e.targetRefresh {
		if tr.idx >= 0 && tr.idx < len(prog.Inp) {
			prog.Inp[tr.idx].Fill(tr.v)
		}
	}
	e.targetRefresh = e.targetRefresh[:0]

	for i := range e.smoothers {
		idx := e.smootherOwner[i]
		if idx == -1 {
			continue
		}
		s := &e.smoothers[i]
		if s.IsDone() {
			continue
		}
		var last float32
		for f := 0; f < nframes; f++ {
			last = s.Next()
			if idx < len(prog.Inp) {
				prog.Inp[idx].Write(f, last)
			}
		}
		if idx < len(prog.Params) {
			prog.Params[idx] = last
		}
		if s.IsDone() {
			e.targetRefresh = append(e.targetRefresh, targetRefreshEntry{idx: idx, v: last})
			e.smootherOwner[i] = -1
		}
	}
}

// Process runs one audio block: drains pending commands, advances
// smoothers, iterates the Program's ops, then publishes feedback and
// monitor data.
func (e *Executor) Process(ctx AudioContext) {
	e.logger.installOnce()

	e.ProcessGraphUpdates()

	nframes := ctx.NFrames()
	if nframes > MaxBlockSize {
		nframes = MaxBlockSize
	}

	e.processSmoothers(nframes)

	prog := e.prog

	// CurInp is re-derived from Inp at the start of every block: it is
	// the working copy ModOps accumulate onto, so mod-driven inputs
	// never integrate the previous block's contribution on top of the
	// new one.
	if len(prog.CurInp) != len(prog.Inp) {
		prog.CurInp = make([]ProcBuf, len(prog.Inp))
	}
	copy(prog.CurInp, prog.Inp)

	for i := range prog.Ops {
		op := &prog.Ops[i]
		if !prog.validOp(*op) {
			continue
		}
		if op.NodeIdx >= len(e.nodes) {
			continue
		}

		for m := 0; m < op.ModLen; m++ {
			mo := prog.ModOps[op.ModIdx+m]
			if mo.DestIn() >= 0 && mo.DestIn() < len(prog.CurInp) {
				mo.Process(&prog.CurInp[mo.DestIn()], nframes)
			}
		}

		inLen := op.InLen
		if inLen > maxOpPorts {
			inLen = maxOpPorts
		}
		for j := 0; j < inLen; j++ {
			e.inPtrScratch[j] = &prog.CurInp[op.InIdx+j]
			e.paramPtrScratch[j] = &prog.Inp[op.InIdx+j]
		}
		inputs := e.inPtrScratch[:inLen]
		params := e.paramPtrScratch[:inLen]

		outLen := op.OutLen
		if outLen > maxOpPorts {
			outLen = maxOpPorts
		}
		for j := 0; j < outLen; j++ {
			e.outPtrScratch[j] = &prog.Out[op.OutIdx+j]
		}
		outputs := e.outPtrScratch[:outLen]

		atoms := prog.Atoms[op.AtIdx : op.AtIdx+op.AtLen]

		e.nctxScratch.OutConnected = op.OutConnected
		e.nctxScratch.InConnected = op.InConnected
		e.nctxScratch.Params = params

		node := e.nodes[op.NodeIdx]
		node.Process(ctx, e.ectx, &e.nctxScratch, atoms, inputs, outputs, e.leds.Slot(op.NodeIdx))

		for j := 0; j < outLen; j++ {
			if op.OutIdx+j < len(prog.OutFeedback) {
				prog.OutFeedback[op.OutIdx+j] = outputs[j].Read(nframes - 1)
			}
		}
	}

	if len(e.OutFeedback) != len(prog.OutFeedback) {
		e.OutFeedback = make([]float32, len(prog.OutFeedback))
	}
	copy(e.OutFeedback, prog.OutFeedback)

	e.publishMonitors(nframes)
}

// monitorInputChannels is the number of leading monitor channels
// sourced from CurInp; the rest are sourced from Out.
const monitorInputChannels = 3

func (e *Executor) publishMonitors(nframes int) {
	if e.mon == nil {
		return
	}
	prog := e.prog
	for ch := 0; ch < MonSigCnt; ch++ {
		idx := int(prog.MonitorIdx[ch])
		if prog.MonitorIdx[ch] == UnusedMonitorIdx {
			continue
		}
		buf := e.mon.GetUnusedMonBuf()
		if buf == nil {
			continue
		}
		var src *ProcBuf
		if ch < monitorInputChannels {
			if idx < 0 || idx >= len(prog.CurInp) {
				continue
			}
			src = &prog.CurInp[idx]
		} else {
			if idx < 0 || idx >= len(prog.Out) {
				continue
			}
			src = &prog.Out[idx]
		}
		buf.N = nframes
		copy(buf.Samples[:nframes], src.Slice(nframes))
		e.mon.SendMonBuf(ch, buf)
	}
}

// TestRun is an offline driver: it synthesizes a host context at
// 44.1kHz in MaxBlockSize chunks for the given duration, optionally
// sleeping wall-clock time between blocks, and returns the rendered
// mono samples (channel 0 of the output context). Intended for
// automated testing.
func (e *Executor) TestRun(seconds float64, realtime bool) []float32 {
	const channels = 1
	totalFrames := int(seconds * float64(DefaultSampleRate))
	out := make([]float32, 0, totalFrames)

	outBuf := make([]float32, MaxBlockSize)
	ctx := &Context{
		Out: [][]float32{outBuf},
		In:  [][]float32{make([]float32, MaxBlockSize)},
	}

	blockDur := time.Duration(MaxBlockSize) * time.Second / time.Duration(DefaultSampleRate)

	for len(out) < totalFrames {
		n := MaxBlockSize
		if remaining := totalFrames - len(out); remaining < n {
			n = remaining
		}
		ctx.Frames = n
		for i := 0; i < n; i++ {
			outBuf[i] = 0
		}

		e.Process(ctx)
		out = append(out, outBuf[:n]...)

		if realtime {
			time.Sleep(blockDur)
		}
	}
	return out
}
