// bounce.go - offline render to a 16-bit PCM WAV file

package main

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/sigwave-audio/graphcore"
)

const bounceSampleRate = int(graphcore.DefaultSampleRate)

// bounce drives the executor through seconds of audio, advancing the
// demo's simulated row clock once per block, and writes the result as
// mono 16-bit PCM to path.
func bounce(exec *graphcore.Executor, seconds float64, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, bounceSampleRate, 16, 1, 1)
	defer enc.Close()

	clock := newClockDriver(exec.Queue())

	outBuf := make([]float32, graphcore.MaxBlockSize)
	inBuf := make([]float32, graphcore.MaxBlockSize)
	ctx := &graphcore.Context{
		Out: [][]float32{outBuf},
		In:  [][]float32{inBuf},
	}

	intBuf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: bounceSampleRate},
		Data:   make([]int, graphcore.MaxBlockSize),
	}

	totalFrames := int(seconds * float64(bounceSampleRate))
	rendered := 0

	for rendered < totalFrames {
		n := graphcore.MaxBlockSize
		if remaining := totalFrames - rendered; remaining < n {
			n = remaining
		}

		clock()
		ctx.Frames = n
		for i := 0; i < n; i++ {
			outBuf[i] = 0
		}
		exec.Process(ctx)

		intBuf.Data = intBuf.Data[:n]
		for i := 0; i < n; i++ {
			v := outBuf[i]
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			intBuf.Data[i] = int(v * 32767)
		}
		if err := enc.Write(intBuf); err != nil {
			return err
		}

		rendered += n
	}

	return nil
}
