//go:build !amd64

// denormals_generic.go - no-op flush-to-zero fallback for non-SIMD architectures

package graphcore

// denormalsSupported is always false outside the amd64 implementation;
// callers should document (as here) that no equivalent mitigation is
// applied on this architecture.
func denormalsSupported() bool { return false }

// enableFlushToZero is a no-op: this architecture has no known
// cheap denormal mitigation wired in.
func enableFlushToZero() {}
