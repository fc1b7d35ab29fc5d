package dataset

import "fmeca/pkg/schema"

// snapshotLimit bounds undo memory: at most this many snapshots are kept,
// oldest discarded first.
const snapshotLimit = 30

// History is a bounded stack of immutable dataset snapshots. Each snapshot is
// a deep copy taken immediately before a mutating commit.
type History struct {
	stack [][]schema.Record
}

// Push records a pre-mutation snapshot, evicting the oldest entry when full.
func (h *History) Push(records []schema.Record) {
	if len(h.stack) >= snapshotLimit {
		h.stack = h.stack[1:]
	}
	h.stack = append(h.stack, schema.CloneRecords(records))
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() ([]schema.Record, bool) {
	if len(h.stack) == 0 {
		return nil, false
	}
	top := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return top, true
}

// Len returns the number of retained snapshots.
func (h *History) Len() int {
	return len(h.stack)
}

// Clear discards all snapshots.
func (h *History) Clear() {
	h.stack = nil
}
