package graphcore

import "testing"

func TestNopNodeIsSilentAndHarmless(t *testing.T) {
	var n NopNode
	if n.Outputs() != 0 {
		t.Fatal("NopNode should expose zero outputs")
	}
	n.SetSampleRate(44100)
	n.Reset()
	n.Process(nil, nil, nil, nil, nil, nil, LEDPhase{})
}

func TestIsNopDetectsNopNode(t *testing.T) {
	if !IsNop(&NopNode{}) {
		t.Fatal("IsNop should recognize a *NopNode")
	}
	if IsNop(NewNodeSine()) {
		t.Fatal("IsNop should not recognize a real node as nop")
	}
}
