package dataset

import (
	"log/slog"

	"fmeca/pkg/schema"
)

// Engine is the single owner of the canonical dataset. All mutation flows
// through its API; every other component sees copies. Each proposal commits
// independently and atomically: it either fully succeeds or is a no-op.
type Engine struct {
	records []schema.Record
	history History
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Records returns a deep copy of the current dataset.
func (e *Engine) Records() []schema.Record {
	return schema.CloneRecords(e.records)
}

// Len returns the number of records in the dataset.
func (e *Engine) Len() int {
	return len(e.records)
}

// Get returns a copy of the record with the given id.
func (e *Engine) Get(id string) (schema.Record, bool) {
	for i := range e.records {
		if e.records[i].ID == id {
			return e.records[i].Clone(), true
		}
	}
	return schema.Record{}, false
}

// HistoryLen reports how many undo snapshots are retained.
func (e *Engine) HistoryLen() int {
	return e.history.Len()
}

// Apply commits one proposal against the dataset. It reports whether the
// dataset changed; an unmatched UPDATE or DELETE is a no-op, not an error.
func (e *Engine) Apply(p schema.Proposal) bool {
	switch p.Type {
	case schema.ProposalAdd:
		return e.applyAdd(p)
	case schema.ProposalUpdate:
		return e.applyUpdate(p)
	case schema.ProposalDelete:
		return e.applyDelete(p)
	default:
		slog.Warn("proposal with unknown type dropped", "type", string(p.Type))
		return false
	}
}

func (e *Engine) applyAdd(p schema.Proposal) bool {
	rec, err := schema.NormalizeNew(p.Item, schema.DefaultsCopilot)
	if err != nil {
		slog.Error("record id generation failed", "error", err)
		return false
	}
	rec.IsNew = true

	e.history.Push(e.records)
	e.records = append(e.records, rec)
	return true
}

func (e *Engine) applyUpdate(p schema.Proposal) bool {
	if p.Item == nil {
		return false
	}

	idx := -1
	if p.Item.ID != "" {
		idx = e.indexByID(p.Item.ID)
	}
	if idx < 0 && p.Item.Component != nil {
		// Legacy fallback: first record with the same component name. Wrong
		// record risk when components repeat; id matching is the supported
		// path.
		idx = e.indexByComponent(*p.Item.Component)
		if idx >= 0 {
			slog.Warn("update matched by component name fallback",
				"component", *p.Item.Component,
				"matched_id", e.records[idx].ID,
			)
		}
	}
	if idx < 0 {
		return false
	}

	e.history.Push(e.records)

	merged := e.records[idx].Clone()
	p.Item.Overlay(&merged)
	merged.ID = e.records[idx].ID
	schema.NormalizeMerged(&merged)
	merged.IsNew = false
	e.records[idx] = merged
	return true
}

func (e *Engine) applyDelete(p schema.Proposal) bool {
	if p.Item == nil || p.Item.ID == "" {
		return false
	}
	idx := e.indexByID(p.Item.ID)
	if idx < 0 {
		return false
	}

	e.history.Push(e.records)
	e.records = append(e.records[:idx], e.records[idx+1:]...)
	return true
}

// SetInspectionSheet attaches a generated sheet to the record with the given
// id. Used by batch generation to merge each sub-result as it completes.
func (e *Engine) SetInspectionSheet(id string, sheet *schema.InspectionSheet) bool {
	idx := e.indexByID(id)
	if idx < 0 || sheet == nil {
		return false
	}

	e.history.Push(e.records)
	attached := sheet.Clone()
	attached.RepackSteps()
	e.records[idx].InspectionSheet = attached
	return true
}

// SetComponentIntel attaches generated component intel to the record with the
// given id.
func (e *Engine) SetComponentIntel(id string, intel *schema.ComponentIntel) bool {
	idx := e.indexByID(id)
	if idx < 0 || intel == nil {
		return false
	}

	e.history.Push(e.records)
	owned := *intel
	e.records[idx].ComponentIntel = &owned
	return true
}

// Undo restores the most recent snapshot. No-op when the history is empty.
// There is no redo: the discarded state is unrecoverable.
func (e *Engine) Undo() bool {
	snapshot, ok := e.history.Pop()
	if !ok {
		return false
	}
	e.records = snapshot
	return true
}

// replace swaps the dataset for a new value, pushing an undo snapshot first.
func (e *Engine) replace(records []schema.Record) {
	e.history.Push(e.records)
	e.records = records
}

// reset swaps the dataset and discards the history. Used by full
// regeneration.
func (e *Engine) reset(records []schema.Record) {
	e.history.Clear()
	e.records = records
}

func (e *Engine) indexByID(id string) int {
	for i := range e.records {
		if e.records[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) indexByComponent(component string) int {
	for i := range e.records {
		if e.records[i].Component == component {
			return i
		}
	}
	return -1
}
