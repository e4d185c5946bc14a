// node_out.go - Out: the audio-host sink, forwarding a signal to the host context

package graphcore

// NodeOut is a minimal sink kernel: it has no outputs of its own and
// instead forwards its input ports directly to the host via
// ctx.Output(channel, frame, v), one input port per host channel. It
// follows the same contract as every other kernel - this is the one
// whose whole job is to cross from the Program's buffer pool back out
// to the host.
type NodeOut struct {
	channels int
}

// NewNodeOut returns a sink forwarding channels input ports to the
// host's output channels of the same index.
func NewNodeOut(channels int) *NodeOut {
	if channels < 1 {
		channels = 1
	}
	return &NodeOut{channels: channels}
}

func (n *NodeOut) Outputs() int { return 0 }

func (n *NodeOut) SetSampleRate(srate float32) {}

func (n *NodeOut) Reset() {}

func (n *NodeOut) Process(ctx AudioContext, ectx *ExecContext, nctx *NodeContext, atoms []Atom, inputs, outputs []*ProcBuf, ledPhase LEDPhase) {
	nframes := ctx.NFrames()
	var last float32
	for ch := 0; ch < n.channels && ch < len(inputs); ch++ {
		in := inputs[ch]
		for frame := 0; frame < nframes; frame++ {
			v := in.Read(frame)
			ctx.Output(ch, frame, v)
			last = v
		}
	}
	ledPhase[0].Set(last)
}
