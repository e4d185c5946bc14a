// feedback.go - the only legal way to form a cycle in a compiled graph

package graphcore

// FeedbackBuffer is a fixed-length ring with independent read/write
// cursors. The writer (FbWr kernel) and reader (FbRd kernel) advance
// their own cursor by one sample per call; the write cursor starts
// ahead of the read cursor by floor(srate * FBDelayTimeUS / 1e6)
// samples, producing the ~3.14ms inter-block delay.
type FeedbackBuffer struct {
	buf      [MaxFBDelaySize]float32
	writePtr int
	readPtr  int
}

// NewFeedbackBuffer returns a buffer configured for the default sample rate.
func NewFeedbackBuffer() *FeedbackBuffer {
	fb := &FeedbackBuffer{}
	fb.SetSampleRate(DefaultSampleRate)
	return fb
}

// Clear zeros the ring without touching the cursors.
func (fb *FeedbackBuffer) Clear() {
	for i := range fb.buf {
		fb.buf[i] = 0
	}
}

// SetSampleRate recomputes the initial cursor offset for a new sample
// rate and clears the ring (stale samples at the old delay are not
// meaningful at the new rate).
func (fb *FeedbackBuffer) SetSampleRate(sr float32) {
	fb.Clear()
	delaySamples := int(sr) * FBDelayTimeUS / 1_000_000
	fb.writePtr = delaySamples % MaxFBDelaySize
	fb.readPtr = 0
}

// Write advances the write cursor and stores s.
func (fb *FeedbackBuffer) Write(s float32) {
	fb.writePtr = (fb.writePtr + 1) % MaxFBDelaySize
	fb.buf[fb.writePtr] = s
}

// Read advances the read cursor and returns the sample there.
func (fb *FeedbackBuffer) Read() float32 {
	fb.readPtr = (fb.readPtr + 1) % MaxFBDelaySize
	return fb.buf[fb.readPtr]
}
