//go:build !headless

// host_oto.go - oto v3 live audio output, pulling samples from an execSource

package main

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

// OtoPlayer streams float32 samples from an execSource through oto.
// The hot Read path loads the source pointer atomically so it never
// contends with SetupPlayer's setup-time lock.
type OtoPlayer struct {
	ctx       *oto.Context
	player    *oto.Player
	src       atomic.Pointer[execSource]
	sampleBuf []float32
	started   bool
	mutex     sync.Mutex
}

// NewOtoPlayer opens an oto context for mono float32 playback at sampleRate.
func NewOtoPlayer(sampleRate int) (*OtoPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &OtoPlayer{ctx: ctx}, nil
}

// SetupPlayer attaches the sample source and creates the oto player.
func (op *OtoPlayer) SetupPlayer(src *execSource) {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	op.src.Store(src)
	op.player = op.ctx.NewPlayer(op)
	op.sampleBuf = make([]float32, 4096)
}

// Read implements io.Reader for oto's player: it fills p with samples
// pulled one at a time from the attached execSource.
func (op *OtoPlayer) Read(p []byte) (n int, err error) {
	src := op.src.Load()
	if src == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	numSamples := len(p) / 4
	if len(op.sampleBuf) < numSamples {
		op.sampleBuf = make([]float32, numSamples)
	}
	samples := op.sampleBuf[:numSamples]

	for i := 0; i < numSamples; i++ {
		samples[i] = src.ReadSample()
	}

	copy(p, (*[1 << 30]byte)(unsafe.Pointer(&samples[0]))[:len(p)])
	return len(p), nil
}

func (op *OtoPlayer) Start() {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	if !op.started && op.player != nil {
		op.player.Play()
		op.started = true
	}
}

func (op *OtoPlayer) Stop() {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	if op.started && op.player != nil {
		op.player.Close()
		op.started = false
	}
}

func (op *OtoPlayer) Close() {
	op.Stop()
	op.mutex.Lock()
	defer op.mutex.Unlock()
	if op.player != nil {
		op.player.Close()
		op.player = nil
	}
}

func (op *OtoPlayer) IsStarted() bool {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	return op.started
}
