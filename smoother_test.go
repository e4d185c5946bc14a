package graphcore

import "testing"

func TestSmootherConverges(t *testing.T) {
	s := NewSmoother()
	s.SetSampleRate(44100)
	s.Set(0, 1.0)

	if s.IsDone() {
		t.Fatal("freshly retargeted smoother reports done")
	}

	n := int(44100 * smootherRampMS / 1000.0)
	var last float32
	for i := 0; i < n+10; i++ {
		last = s.Next()
	}

	if !s.IsDone() {
		t.Fatal("smoother did not converge within its ramp duration")
	}
	if last != 1.0 {
		t.Fatalf("converged value = %v, want 1.0", last)
	}
	if s.Next() != 1.0 {
		t.Fatal("done smoother should keep returning its target")
	}
}

func TestSmootherMonotonicNoNaN(t *testing.T) {
	s := NewSmoother()
	s.SetSampleRate(44100)
	s.Set(-1.0, 1.0)

	prev := float32(-2.0)
	for !s.IsDone() {
		v := s.Next()
		if v != v { // NaN check
			t.Fatal("smoother produced NaN")
		}
		if v < prev {
			t.Fatalf("smoother value decreased: prev=%v v=%v", prev, v)
		}
		prev = v
	}
}

func TestSmootherRapidRetargetStaysFinite(t *testing.T) {
	s := NewSmoother()
	s.SetSampleRate(44100)

	target := float32(0)
	for i := 0; i < 1000; i++ {
		target = float32(i%7) - 3
		s.Set(s.Next(), target)
		v := s.Next()
		if v != v {
			t.Fatalf("NaN after retarget %d", i)
		}
	}
}

func TestSmootherSetSampleRateRecomputesStep(t *testing.T) {
	s := NewSmoother()
	s.SetSampleRate(44100)
	s.Set(0, 10)
	s.Next()
	s.SetSampleRate(88200)

	for i := 0; i < 10000 && !s.IsDone(); i++ {
		v := s.Next()
		if v != v {
			t.Fatal("NaN after sample-rate change mid-ramp")
		}
	}
	if !s.IsDone() {
		t.Fatal("smoother never converged after sample-rate change")
	}
}
