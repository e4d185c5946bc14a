package graphcore

import "testing"

func TestAtomicFloatRoundTrips(t *testing.T) {
	var a AtomicFloat
	a.Set(-3.25)
	if a.Load() != -3.25 {
		t.Fatalf("Load() = %v, want -3.25", a.Load())
	}
}

func TestNodeCtxValuesSlotIsPerNode(t *testing.T) {
	v := NewNodeCtxValues()
	s0 := v.Slot(0)
	s1 := v.Slot(1)

	s0[0].Set(1.0)
	s0[1].Set(0.5)
	s1[0].Set(2.0)
	s1[1].Set(0.75)

	if s0[0].Load() != 1.0 || s0[1].Load() != 0.5 {
		t.Fatal("slot 0 values clobbered by slot 1 writes")
	}
	if s1[0].Load() != 2.0 || s1[1].Load() != 0.75 {
		t.Fatal("slot 1 did not retain its own values")
	}
}
