package graphcore

import (
	"math"
	"testing"
)

func TestNodeSineOutputsUnitRange(t *testing.T) {
	n := NewNodeSine()
	n.SetSampleRate(44100)

	freq := &ProcBuf{}
	freq.Fill(0) // pitch 0 -> sineBaseFreq
	det := &ProcBuf{}

	ctx := &Context{Frames: MaxBlockSize}
	led := LEDPhase{&AtomicFloat{}, &AtomicFloat{}}

	out := &ProcBuf{}
	n.Process(ctx, nil, nil, nil, []*ProcBuf{freq, det}, []*ProcBuf{out}, led)

	for i := 0; i < MaxBlockSize; i++ {
		v := out.Read(i)
		if v != v || math.Abs(float64(v)) > 1.0001 {
			t.Fatalf("frame %d out of range or NaN: %v", i, v)
		}
	}
	if led[0].Load() != out.Read(MaxBlockSize-1) {
		t.Fatal("LED slot should mirror the last rendered sample")
	}
}

func TestNodeSineResetZeroesPhase(t *testing.T) {
	n := NewNodeSine()
	n.SetSampleRate(44100)
	n.phase = 0.5
	n.Reset()
	if n.phase != 0 {
		t.Fatalf("Reset() left phase = %v, want 0", n.phase)
	}
}

func TestPitchToFreqOctaveDoubling(t *testing.T) {
	base := pitchToFreq(0)
	oneOctUp := pitchToFreq(pitchOctaveUnit)
	if math.Abs(float64(oneOctUp/base)-2.0) > 1e-4 {
		t.Fatalf("one octave up should double frequency, got ratio %v", oneOctUp/base)
	}
}
