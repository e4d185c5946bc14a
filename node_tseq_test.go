package graphcore

import "testing"

func TestNodeTSeqSilentWithoutBackend(t *testing.T) {
	n := NewNodeTSeq()
	n.SetSampleRate(44100)

	clock := &ProcBuf{}
	ctx := &Context{Frames: MaxBlockSize}
	atoms := []Atom{IntAtom(int32(TseqCModeRowT))}
	outputs := make([]*ProcBuf, 12)
	for i := range outputs {
		outputs[i] = &ProcBuf{}
		outputs[i].Fill(42) // sentinel - must be overwritten with silence
	}
	led := LEDPhase{&AtomicFloat{}, &AtomicFloat{}}

	n.Process(ctx, nil, nil, atoms, []*ProcBuf{clock}, outputs, led)

	for i, o := range outputs {
		if o.Read(0) != 0 {
			t.Fatalf("output %d was not silenced despite missing backend", i)
		}
	}
}

func TestNodeTSeqRowTriggerAdvancesRows(t *testing.T) {
	n := NewNodeTSeq()
	n.SetSampleRate(44100)
	backend := NewBasicTrackerBackend(4)
	backend.SetCell(0, 0, 0.1, 1)
	backend.SetCell(1, 0, 0.2, 1)
	backend.SetCell(2, 0, 0.3, 1)
	backend.SetCell(3, 0, 0.4, 1)
	backend.CheckUpdates()
	n.SetBackend(backend)

	clock := &ProcBuf{}
	// Four 0..1 ramps across the block, wrapping three times - each wrap
	// advances one row, so every row is visited.
	for i := 0; i < MaxBlockSize; i++ {
		clock.Write(i, float32(i%32)/32)
	}

	atoms := []Atom{IntAtom(int32(TseqCModeRowT))}
	outputs := make([]*ProcBuf, 12)
	for i := range outputs {
		outputs[i] = &ProcBuf{}
	}
	ctx := &Context{Frames: MaxBlockSize}
	led := LEDPhase{&AtomicFloat{}, &AtomicFloat{}}

	n.Process(ctx, nil, nil, atoms, []*ProcBuf{clock}, outputs, led)

	seen := map[float32]bool{}
	for i := 0; i < MaxBlockSize; i++ {
		seen[outputs[0].Read(i)] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected the sequencer to visit more than one row over a full ramp")
	}
}

func TestTriggerClockUnwrapsRamp(t *testing.T) {
	var tc triggerClock
	a := tc.nextPhase(0.1)
	b := tc.nextPhase(0.9)
	c := tc.nextPhase(0.2) // wrapped: should add +1 offset
	if !(a < b && b < c) {
		t.Fatalf("unwrapped phase should be monotonic across a wrap: %v %v %v", a, b, c)
	}
}
