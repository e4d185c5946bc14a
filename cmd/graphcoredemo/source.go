// source.go - pulls rendered samples from an Executor for live playback

package main

import "github.com/sigwave-audio/graphcore"

// execSource renders the executor one block at a time and hands
// samples out one at a time to whichever player backend is active.
// It is driven entirely from the playback callback goroutine; the
// executor itself still only runs on the one logical "audio thread"
// that calls Process.
type execSource struct {
	exec    *graphcore.Executor
	ctx     graphcore.Context
	outBuf  []float32
	inBuf   []float32
	pending []float32

	// beforeBlock, if set, runs immediately before each block is
	// rendered - used to drive an external clock/param generator.
	beforeBlock func()
}

func newExecSource(exec *graphcore.Executor) *execSource {
	s := &execSource{
		exec:   exec,
		outBuf: make([]float32, graphcore.MaxBlockSize),
		inBuf:  make([]float32, graphcore.MaxBlockSize),
	}
	s.ctx.Out = [][]float32{s.outBuf}
	s.ctx.In = [][]float32{s.inBuf}
	return s
}

func (s *execSource) nextBlock() {
	if s.beforeBlock != nil {
		s.beforeBlock()
	}
	s.ctx.Frames = len(s.outBuf)
	for i := range s.outBuf {
		s.outBuf[i] = 0
	}
	s.exec.Process(&s.ctx)
	s.pending = s.outBuf
}

// ReadSample returns the next rendered sample, running a fresh block
// through the executor whenever the previous one is exhausted.
func (s *execSource) ReadSample() float32 {
	if len(s.pending) == 0 {
		s.nextBlock()
	}
	v := s.pending[0]
	s.pending = s.pending[1:]
	return v
}
