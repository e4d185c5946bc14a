// node_nop.go - the quiescent placeholder node

package graphcore

// NopNode fills every allocated-but-unused node slot. It produces no
// outputs and costs no work.
type NopNode struct{}

func (n *NopNode) Outputs() int                 { return 0 }
func (n *NopNode) SetSampleRate(srate float32)   {}
func (n *NopNode) Reset()                        {}
func (n *NopNode) Process(ctx AudioContext, ectx *ExecContext, nctx *NodeContext, atoms []Atom, inputs, outputs []*ProcBuf, ledPhase LEDPhase) {
}
