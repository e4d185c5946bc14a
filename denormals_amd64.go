// denormals_amd64.go - flush-to-zero mitigation for denormal numerics on Program install

package graphcore

import "golang.org/x/sys/cpu"

// ftzBit and dazBit are the MXCSR control-register bits that enable
// flush-to-zero and denormals-are-zero on SSE2-capable x86 cores.
const (
	ftzBit = 1 << 15
	dazBit = 1 << 6
)

// denormalsSupported reports whether this process can enable
// hardware flush-to-zero.
func denormalsSupported() bool {
	return cpu.X86.HasSSE2
}

// enableFlushToZero sets FTZ and DAZ in MXCSR, called once when a new
// Program is installed. No-op on CPUs without SSE2.
func enableFlushToZero() {
	if !denormalsSupported() {
		return
	}
	setMXCSR(getMXCSR() | ftzBit | dazBit)
}

func getMXCSR() uint32
func setMXCSR(v uint32)
