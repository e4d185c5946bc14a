package graphcore

import "testing"

func TestModOpBlendsScaledSource(t *testing.T) {
	src := &ProcBuf{}
	src.Fill(2.0)
	dest := &ProcBuf{}
	dest.Fill(1.0)

	m := NewModOp(src, 0)
	m.SetAmt(0.5)
	m.Process(dest, MaxBlockSize)

	for i := 0; i < MaxBlockSize; i++ {
		if dest.Read(i) != 2.0 { // 1.0 + 2.0*0.5
			t.Fatalf("frame %d = %v, want 2.0", i, dest.Read(i))
		}
	}
}

func TestModOpZeroAmountIsNoop(t *testing.T) {
	src := &ProcBuf{}
	src.Fill(99.0)
	dest := &ProcBuf{}
	dest.Fill(3.0)

	m := NewModOp(src, 0)
	m.Process(dest, MaxBlockSize)

	for i := 0; i < MaxBlockSize; i++ {
		if dest.Read(i) != 3.0 {
			t.Fatalf("default amount should be 0, frame %d = %v", i, dest.Read(i))
		}
	}
}
