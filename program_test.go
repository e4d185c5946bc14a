package graphcore

import "testing"

func TestEmptyProgramHasAllMonitorsUnused(t *testing.T) {
	p := Empty()
	for i, idx := range p.MonitorIdx {
		if idx != UnusedMonitorIdx {
			t.Fatalf("monitor slot %d = %d, want UnusedMonitorIdx", i, idx)
		}
	}
}

func TestInitializeInputBuffersReplaysParams(t *testing.T) {
	p := Empty()
	p.Inp = make([]ProcBuf, 2)
	p.Params = []float32{1.5, -2.0}

	p.InitializeInputBuffers()

	for i := 0; i < MaxBlockSize; i++ {
		if p.Inp[0].Read(i) != 1.5 {
			t.Fatalf("Inp[0] frame %d = %v, want 1.5", i, p.Inp[0].Read(i))
		}
		if p.Inp[1].Read(i) != -2.0 {
			t.Fatalf("Inp[1] frame %d = %v, want -2.0", i, p.Inp[1].Read(i))
		}
	}
}

func TestAssignOutputsGrowsPoolAndBindsIndices(t *testing.T) {
	p := Empty()
	p.Ops = []Op{
		{OutLen: 3},
		{OutLen: 2},
	}
	p.AssignOutputs()

	if p.Ops[0].OutIdx != 0 {
		t.Fatalf("Ops[0].OutIdx = %d, want 0", p.Ops[0].OutIdx)
	}
	if p.Ops[1].OutIdx != 3 {
		t.Fatalf("Ops[1].OutIdx = %d, want 3", p.Ops[1].OutIdx)
	}
	if len(p.Out) != 5 {
		t.Fatalf("len(Out) = %d, want 5", len(p.Out))
	}
}

func TestSwapPreviousOutputsCarriesParamsAndInputHistory(t *testing.T) {
	prev := Empty()
	prev.Inp = make([]ProcBuf, 2)
	prev.Params = []float32{0.25, 0.75}
	prev.Inp[0].Fill(0.25)
	prev.Inp[1].Fill(0.75)

	next := Empty()
	next.Inp = make([]ProcBuf, 2)
	next.Params = make([]float32, 2)

	next.SwapPreviousOutputs(prev)

	if next.Params[0] != 0.25 || next.Params[1] != 0.75 {
		t.Fatalf("Params not carried over: %v", next.Params)
	}
	if next.Inp[0].Read(0) != 0.25 || next.Inp[1].Read(0) != 0.75 {
		t.Fatal("input buffer history not carried over")
	}
}

func TestValidOpRejectsOutOfBoundsSlices(t *testing.T) {
	p := Empty()
	p.Inp = make([]ProcBuf, 4)
	p.Out = make([]ProcBuf, 4)
	p.Atoms = make([]Atom, 1)
	p.ModOps = nil

	good := Op{NodeIdx: 0, InIdx: 0, InLen: 2, OutIdx: 0, OutLen: 2}
	if !p.validOp(good) {
		t.Fatal("expected a well-formed Op to validate")
	}

	bad := Op{NodeIdx: 0, InIdx: 3, InLen: 2}
	if p.validOp(bad) {
		t.Fatal("expected an out-of-bounds Op to fail validation")
	}
}
