package graphcore

import "testing"

func TestFeedbackBufferDelayByN(t *testing.T) {
	fb := NewFeedbackBuffer()
	fb.SetSampleRate(44100)

	n := int(44100) * FBDelayTimeUS / 1_000_000

	fb.Write(1.0)
	for i := 0; i < n; i++ {
		v := fb.Read()
		if v != 0 {
			t.Fatalf("frame %d: expected silence before delay elapses, got %v", i, v)
		}
		fb.Write(0)
	}

	v := fb.Read()
	if v != 1.0 {
		t.Fatalf("impulse did not reappear after N=%d frames, got %v", n, v)
	}
}

func TestFeedbackBufferClearZeroesWithoutMovingCursors(t *testing.T) {
	fb := NewFeedbackBuffer()
	fb.SetSampleRate(44100)
	fb.Write(5.0)
	fb.Clear()

	for i := 0; i < MaxFBDelaySize; i++ {
		if fb.Read() != 0 {
			t.Fatal("Clear left a nonzero sample in the ring")
		}
	}
}

func TestFeedbackBufferSetSampleRateResets(t *testing.T) {
	fb := NewFeedbackBuffer()
	fb.SetSampleRate(44100)
	fb.Write(9.0)
	fb.SetSampleRate(96000)

	for i := 0; i < MaxFBDelaySize; i++ {
		if fb.Read() != 0 {
			t.Fatal("SetSampleRate should clear stale samples from the old rate")
		}
	}
}
