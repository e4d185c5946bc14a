// node_allpass.go - AllP: a single Schroeder allpass filter

package graphcore

// allpassMaxDelayMS bounds the interpolated delay line length. Typical
// allpass diffusion arrangements run from well under a millisecond up
// to the low tens of milliseconds; 64ms gives headroom above that
// range.
const allpassMaxDelayMS = 64.0

// allpassBufLen is sized for allpassMaxDelayMS of delay at the highest
// rate graphcore's feedback ring supports, plus interpolation taps.
const allpassBufLen = (MaxFBDelaySRate*allpassMaxDelayMS)/1000 + 8

// allpassDelay is a cubic-interpolated fractional delay line feeding a
// first-order Schroeder allpass: y = -g*x + d, d fed back as
// buf[write] = x + g*d, read back at a fractional offset behind write.
type allpassDelay struct {
	buf      [allpassBufLen]float64
	writePos int
	srate    float64
}

func newAllpassDelay() *allpassDelay {
	return &allpassDelay{srate: DefaultSampleRate}
}

func (a *allpassDelay) setSampleRate(srate float64) {
	a.srate = srate
	a.reset()
}

func (a *allpassDelay) reset() {
	for i := range a.buf {
		a.buf[i] = 0
	}
	a.writePos = 0
}

// next advances the delay by one sample. timeMS is the (already
// denormalized) delay time in milliseconds, g the allpass coefficient,
// x the input sample.
func (a *allpassDelay) next(timeMS, g, x float64) float64 {
	delaySamples := timeMS * a.srate / 1000.0
	if delaySamples < 1 {
		delaySamples = 1
	}
	max := float64(allpassBufLen - 4)
	if delaySamples > max {
		delaySamples = max
	}

	readPos := float64(a.writePos) - delaySamples
	n := float64(allpassBufLen)
	for readPos < 0 {
		readPos += n
	}

	i0 := int(readPos)
	frac := readPos - float64(i0)

	im1 := (i0 - 1 + allpassBufLen) % allpassBufLen
	i1 := (i0 + 1) % allpassBufLen
	i2 := (i0 + 2) % allpassBufLen
	i0m := i0 % allpassBufLen

	d := cubicInterp(a.buf[im1], a.buf[i0m], a.buf[i1], a.buf[i2], frac)

	y := -g*x + d
	a.buf[a.writePos] = x + g*d

	a.writePos++
	if a.writePos >= allpassBufLen {
		a.writePos = 0
	}

	return y
}

// cubicInterp is a 4-point Catmull-Rom style cubic interpolation over
// samples y0..y3 at fractional position t in [0,1) between y1 and y2.
func cubicInterp(y0, y1, y2, y3, t float64) float64 {
	a0 := y3 - y2 - y0 + y1
	a1 := y0 - y1 - a0
	a2 := y2 - y0
	a3 := y1
	return a0*t*t*t + a1*t*t + a2*t + a3
}

// NodeAllpass is the AllP kernel: inp in [-1,1], g in [-1,1], time in
// (0,1] mapped to milliseconds, output the allpass response. Only the
// LED telemetry slot is published (no phase).
type NodeAllpass struct {
	ap *allpassDelay
}

// NewNodeAllpass returns a fresh AllP kernel.
func NewNodeAllpass() *NodeAllpass {
	return &NodeAllpass{ap: newAllpassDelay()}
}

func (n *NodeAllpass) Outputs() int { return 1 }

func (n *NodeAllpass) SetSampleRate(srate float32) {
	n.ap.setSampleRate(float64(srate))
}

func (n *NodeAllpass) Reset() {
	n.ap.reset()
}

// denormAllpassTime maps the normalized (0,1] "time" input to milliseconds.
func denormAllpassTime(v float32) float64 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return float64(v) * allpassMaxDelayMS
}

func (n *NodeAllpass) Process(ctx AudioContext, ectx *ExecContext, nctx *NodeContext, atoms []Atom, inputs, outputs []*ProcBuf, ledPhase LEDPhase) {
	inp := inputs[0]
	g := inputs[1]
	timeBuf := inputs[2]
	out := outputs[0]

	nframes := ctx.NFrames()
	var last float32
	for frame := 0; frame < nframes; frame++ {
		v := inp.Read(frame)
		timeMS := denormAllpassTime(timeBuf.Read(frame))
		gv := float64(g.Read(frame))

		y := float32(n.ap.next(timeMS, gv, float64(v)))
		out.Write(frame, y)
		last = y
	}

	ledPhase[0].Set(last)
}
