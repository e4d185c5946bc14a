// constants.go - fixed limits shared across the executor, program and node kernels

package graphcore

// MaxBlockSize is the largest number of frames the host may request per
// process() call. Every inter-node buffer is pre-sized to this so the
// audio thread never allocates. Changing this constant is a breaking
// change: several kernels (TSeq) use it to size stack scratch arrays.
const MaxBlockSize = 128

// MaxAllocatedNodes bounds the node slot table and the LED/phase atomics.
const MaxAllocatedNodes = 256

// MaxSmoothers bounds the number of simultaneously ramping parameters.
const MaxSmoothers = 256

// MonSigCnt is the number of live monitor channels the editor may select.
const MonSigCnt = 6

// UnusedMonitorIdx marks a monitor slot as disabled. It is distinct from
// every valid buffer index because program buffer pools never reach it.
const UnusedMonitorIdx = ^uint32(0)

// FBDelayTimeUS is the feedback buffer's target inter-block delay, in
// microseconds (~3.14ms).
const FBDelayTimeUS = 3140

// MaxFBDelaySRate is the highest sample rate the feedback ring is sized
// for. Above this rate the effective delay shortens rather than the ring
// growing.
const MaxFBDelaySRate = 192000

// MaxFBDelaySize is sized so that the delay at MaxFBDelaySRate always
// fits in the ring.
const MaxFBDelaySize = (MaxFBDelaySRate*FBDelayTimeUS)/1_000_000 + 1

// DefaultSampleRate is used before the host ever calls SetSampleRate.
const DefaultSampleRate = 44100.0
