// tracker.go - the TSeq kernel's injectable pattern-data backend

package graphcore

// TrackerBackend is the collaborator TSeq reads pattern data from. It
// is owned externally and injected via NodeTSeq.SetBackend; it is
// assumed internally lock-free and polled once per block via
// CheckUpdates. graphcore does not persist or edit patterns - that
// belongs to the (out of scope) editor.
type TrackerBackend interface {
	// CheckUpdates is polled once per block so the backend can apply
	// any pending edit without the node blocking on a lock.
	CheckUpdates()
	// PatternLen returns the current pattern's row count.
	PatternLen() int
	// GetColAtPhase fills outSig/outGate (len(outSig) frames) for
	// track col, sampling the pattern at each entry of phase (each in
	// [0,1)).
	GetColAtPhase(col int, phase []float32, outSig, outGate []float32)
}

// trackerCell is one row's value/gate pair for a single track.
type trackerCell struct {
	value float32
	gate  float32
}

// BasicTrackerBackend is a minimal in-memory TrackerBackend: a fixed
// grid of rows x 6 tracks. It exists so graphcore's TSeq kernel and the
// demo command have a concrete, testable backend without depending on
// the (out of scope) pattern editor.
type BasicTrackerBackend struct {
	rows    [][6]trackerCell
	pending [][6]trackerCell
	hasEdit bool
}

// NewBasicTrackerBackend builds a backend with rows empty rows (silence).
func NewBasicTrackerBackend(rows int) *BasicTrackerBackend {
	if rows < 1 {
		rows = 1
	}
	return &BasicTrackerBackend{rows: make([][6]trackerCell, rows)}
}

// SetCell queues a value/gate for (row, col), applied on the next
// CheckUpdates call.
func (b *BasicTrackerBackend) SetCell(row, col int, value, gate float32) {
	if b.pending == nil {
		b.pending = make([][6]trackerCell, len(b.rows))
		copy(b.pending, b.rows)
	}
	if row < 0 || row >= len(b.pending) || col < 0 || col >= 6 {
		return
	}
	b.pending[row][col] = trackerCell{value: value, gate: gate}
	b.hasEdit = true
}

func (b *BasicTrackerBackend) CheckUpdates() {
	if b.hasEdit {
		b.rows = b.pending
		b.pending = nil
		b.hasEdit = false
	}
}

func (b *BasicTrackerBackend) PatternLen() int { return len(b.rows) }

func (b *BasicTrackerBackend) GetColAtPhase(col int, phase []float32, outSig, outGate []float32) {
	n := len(b.rows)
	for i, ph := range phase {
		if i >= len(outSig) || i >= len(outGate) {
			break
		}
		row := int(ph * float32(n))
		if row >= n {
			row = n - 1
		}
		if row < 0 {
			row = 0
		}
		cell := b.rows[row][col]
		outSig[i] = cell.value
		outGate[i] = cell.gate
	}
}
