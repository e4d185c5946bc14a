// fastsin.go - lookup-table sine approximation with linear interpolation

package graphcore

import "math"

const (
	sinLUTSize  = 4096
	twoPi       = float32(2 * math.Pi)
	sinLUTScale = float32(sinLUTSize) / twoPi
)

var sinLUT [sinLUTSize]float32

func init() {
	for i := 0; i < sinLUTSize; i++ {
		phase := float64(i) * 2 * math.Pi / float64(sinLUTSize)
		sinLUT[i] = float32(math.Sin(phase))
	}
}

// fastSin returns sin(phase) using a lookup table with linear
// interpolation. phase is in radians and wrapped to [0, 2pi).
//
//go:nosplit
func fastSin(phase float32) float32 {
	if phase < 0 {
		phase += twoPi * float32(int(-phase/twoPi)+1)
	} else if phase >= twoPi {
		phase -= twoPi * float32(int(phase/twoPi))
	}

	indexF := phase * sinLUTScale
	index := int(indexF)
	frac := indexF - float32(index)

	next := index + 1
	if next >= sinLUTSize {
		next = 0
	}

	return sinLUT[index] + (sinLUT[next]-sinLUT[index])*frac
}
