// node_quant.go - Quant: a pitch quantizer

package graphcore

// quantSemitoneUnit is the pitch-value distance between adjacent
// semitones, derived from the shared pitchOctaveUnit convention (12
// semitones per octave).
const quantSemitoneUnit = pitchOctaveUnit / 12.0

// NodeQuant is the Quant kernel: snaps a continuous pitch signal
// (freq, octave-mapped) to the nearest enabled semitone in the current
// octave, adds the oct offset, and emits a short trigger (t) on each
// change. Keys are supplied via an atom (bit-set of 12 semitones); an
// empty key-set quantizes chromatically. Both telemetry slots are
// published, unlike AllP/Sin which publish only the LED.
type NodeQuant struct {
	lastSemitone int
	haveLast     bool
}

// NewNodeQuant returns a fresh Quant kernel.
func NewNodeQuant() *NodeQuant { return &NodeQuant{} }

func (n *NodeQuant) Outputs() int { return 2 }

func (n *NodeQuant) SetSampleRate(srate float32) {}

func (n *NodeQuant) Reset() {
	n.haveLast = false
	n.lastSemitone = 0
}

// nearestEnabledSemitone returns the enabled semitone (0..11) closest
// to pos (a fractional semitone position within the octave, 0..12).
// If no key is enabled, every semitone counts as enabled (chromatic
// fallback).
func nearestEnabledSemitone(keys Atom, pos float32) int {
	best := 0
	bestDist := float32(1 << 30)
	any := keys.AnyKey()
	for s := 0; s < 12; s++ {
		if any && !keys.HasKey(s) {
			continue
		}
		d := pos - float32(s)
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			bestDist = d
			best = s
		}
	}
	return best
}

func (n *NodeQuant) Process(ctx AudioContext, ectx *ExecContext, nctx *NodeContext, atoms []Atom, inputs, outputs []*ProcBuf, ledPhase LEDPhase) {
	freq := inputs[0]
	oct := inputs[1]
	keys := atoms[0]
	sig := outputs[0]
	trig := outputs[1]

	nframes := ctx.NFrames()
	var lastSemitoneFrac float32

	for frame := 0; frame < nframes; frame++ {
		v := freq.Read(frame)

		octaveIdx := int(v / pitchOctaveUnit)
		if v < 0 && float32(octaveIdx)*pitchOctaveUnit != v {
			octaveIdx--
		}
		fracInOctave := v - float32(octaveIdx)*pitchOctaveUnit
		semitonePos := fracInOctave / quantSemitoneUnit

		semitone := nearestEnabledSemitone(keys, semitonePos)
		quantized := float32(octaveIdx)*pitchOctaveUnit + float32(semitone)*quantSemitoneUnit

		changed := !n.haveLast || semitone != n.lastSemitone
		n.lastSemitone = semitone
		n.haveLast = true

		if changed {
			trig.Write(frame, 1.0)
		} else {
			trig.Write(frame, 0.0)
		}

		sig.Write(frame, quantized+oct.Read(frame))
		lastSemitoneFrac = float32(semitone) / 12.0
	}

	ledPhase[1].Set(lastSemitoneFrac + 0.0001)
	ledPhase[0].Set((lastSemitoneFrac - 0.5) * 2.0)
}
