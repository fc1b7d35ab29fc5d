package dataset

import (
	"fmt"
	"strings"

	"fmeca/pkg/schema"
)

// MergeCoordinator orchestrates incremental, non-duplicating generation over
// an engine's dataset: it summarizes what exists for the generation request,
// tags appended records as new, and reconciles the new-status on save.
type MergeCoordinator struct {
	Engine *Engine
}

// NewMergeCoordinator wraps an engine.
func NewMergeCoordinator(engine *Engine) *MergeCoordinator {
	return &MergeCoordinator{Engine: engine}
}

// AvoidanceSummary formats every existing record as "{component}
// ({failureMode})", joined with ", ", for inclusion in an incremental
// generation request. Advisory only: it does not guarantee the service will
// not duplicate.
func (m *MergeCoordinator) AvoidanceSummary() string {
	var parts []string
	for _, r := range m.Engine.records {
		parts = append(parts, fmt.Sprintf("%s (%s)", r.Component, r.FailureMode))
	}
	return strings.Join(parts, ", ")
}

// TagAndAppend marks the freshly generated records as new and appends them.
// Merge generation never reconciles against existing records; it only adds.
func (m *MergeCoordinator) TagAndAppend(records []schema.Record) {
	if len(records) == 0 {
		return
	}
	next := schema.CloneRecords(m.Engine.records)
	for _, r := range records {
		appended := r.Clone()
		appended.IsNew = true
		next = append(next, appended)
	}
	m.Engine.replace(next)
}

// Regenerate discards the existing dataset and its history entirely and
// installs the freshly generated records.
func (m *MergeCoordinator) Regenerate(records []schema.Record) {
	m.Engine.reset(schema.CloneRecords(records))
}

// CommitSave clears every record's IsNew flag, both in the returned items and
// in the engine's own dataset, so a later edit does not revert to new
// styling. The returned slice is what the study store receives. Clearing is an
// ordinary mutation: a snapshot is pushed first, so undo restores the flags.
// When no record is flagged the dataset is unchanged and no snapshot is taken.
func (m *MergeCoordinator) CommitSave() []schema.Record {
	anyNew := false
	for i := range m.Engine.records {
		if m.Engine.records[i].IsNew {
			anyNew = true
			break
		}
	}
	if anyNew {
		next := schema.CloneRecords(m.Engine.records)
		for i := range next {
			next[i].IsNew = false
		}
		m.Engine.replace(next)
	}
	return m.Engine.Records()
}
