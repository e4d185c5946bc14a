// node_sine.go - Sin: phase-accumulator sine oscillator

package graphcore

import "math"

// pitchOctaveUnit is the pitch-value-per-octave convention shared with
// NodeQuant's "oct" input: signal values are multiples of 0.1 per
// octave, giving exact octave offsets without floating-point drift.
const pitchOctaveUnit = 0.1

// sineBaseFreq is the reference frequency for pitch value 0.0.
const sineBaseFreq = 440.0

// pitchToFreq converts a pitch value (in pitchOctaveUnit-per-octave
// units) to Hz.
func pitchToFreq(pitch float32) float32 {
	octaves := pitch / pitchOctaveUnit
	return sineBaseFreq * pow2(octaves)
}

func pow2(x float32) float32 {
	// exp2 via the standard library keeps this exact without pulling in
	// a table; it is not in the per-sample hot loop's LUT budget since
	// it runs once per frame on a control-rate signal, not per partial.
	return float32(math.Exp2(float64(x)))
}

// NodeSine is the Sin kernel: freq is denormalized with semitone/cent
// detune from det (folded together as a pitch sum, then mapped through
// the shared pitch convention); phase wraps via fract(). Only the LED
// telemetry slot is published (no phase).
type NodeSine struct {
	srate float32
	phase float32
}

// NewNodeSine returns a fresh Sin kernel.
func NewNodeSine() *NodeSine {
	return &NodeSine{srate: DefaultSampleRate}
}

func (n *NodeSine) Outputs() int { return 1 }

func (n *NodeSine) SetSampleRate(srate float32) { n.srate = srate }

func (n *NodeSine) Reset() { n.phase = 0 }

func (n *NodeSine) Process(ctx AudioContext, ectx *ExecContext, nctx *NodeContext, atoms []Atom, inputs, outputs []*ProcBuf, ledPhase LEDPhase) {
	freq := inputs[0]
	det := inputs[1]
	out := outputs[0]

	isr := float32(1.0) / n.srate
	nframes := ctx.NFrames()

	var lastVal float32
	for frame := 0; frame < nframes; frame++ {
		pitch := freq.Read(frame) + det.Read(frame)
		f := pitchToFreq(pitch)

		lastVal = fastSin(n.phase * twoPi)
		out.Write(frame, lastVal)

		n.phase += f * isr
		n.phase -= float32(int(n.phase))
		if n.phase < 0 {
			n.phase += 1
		}
	}

	ledPhase[0].Set(lastVal)
}
