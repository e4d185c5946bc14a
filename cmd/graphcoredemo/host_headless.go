//go:build headless

// host_headless.go - no-output stand-in for environments without an audio device

package main

type OtoPlayer struct {
	started bool
	src     *execSource
}

func NewOtoPlayer(sampleRate int) (*OtoPlayer, error) {
	return &OtoPlayer{}, nil
}

func (op *OtoPlayer) SetupPlayer(src *execSource) {
	op.src = src
}

func (op *OtoPlayer) Read(p []byte) (n int, err error) {
	return len(p), nil
}

func (op *OtoPlayer) Start() { op.started = true }

func (op *OtoPlayer) Stop() { op.started = false }

func (op *OtoPlayer) Close() { op.started = false }

func (op *OtoPlayer) IsStarted() bool { return op.started }
