// smoother.go - per-input ramps that turn control-rate changes into sample-rate sweeps

package graphcore

// smootherRampMS is the fixed ramp duration, the common convention for
// zipper-noise-free control ramps.
const smootherRampMS = 10.0

// Smoother linearly ramps from an old value to a new target over a
// fixed duration, then reports itself done. It holds no reference to
// which input index it serves - the Executor's smoother pool tracks
// that pairing.
type Smoother struct {
	sampleRate float32
	cur        float32
	target     float32
	step       float32
	remaining  int
	done       bool
}

// NewSmoother returns an idle smoother at the default sample rate.
func NewSmoother() Smoother {
	s := Smoother{sampleRate: DefaultSampleRate}
	s.done = true
	return s
}

// SetSampleRate reconfigures the ramp rate. Does not reset progress of
// an in-flight ramp's target/current values, only the per-sample step.
func (s *Smoother) SetSampleRate(sr float32) {
	s.sampleRate = sr
	if !s.done && s.remaining > 0 {
		s.step = (s.target - s.cur) / float32(s.remaining)
	}
}

// Set retargets the ramp from cur to target over the fixed duration.
func (s *Smoother) Set(cur, target float32) {
	n := int(s.sampleRate * smootherRampMS / 1000.0)
	if n < 1 {
		n = 1
	}
	s.cur = cur
	s.target = target
	s.remaining = n
	s.step = (target - cur) / float32(n)
	s.done = false
}

// IsDone reports whether the ramp has converged.
func (s *Smoother) IsDone() bool { return s.done }

// Next produces the next ramp sample. Once the ramp converges it keeps
// returning the target value and remains "done" until retargeted.
func (s *Smoother) Next() float32 {
	if s.done {
		return s.target
	}
	s.remaining--
	if s.remaining <= 0 {
		s.cur = s.target
		s.done = true
		return s.cur
	}
	s.cur += s.step
	return s.cur
}
