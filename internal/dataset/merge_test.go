package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fmeca/pkg/schema"
)

func TestAvoidanceSummary(t *testing.T) {
	e := NewEngine()
	m := NewMergeCoordinator(e)

	assert.Equal(t, "", m.AvoidanceSummary())

	seedRecord(t, e, "Pump")
	seedRecord(t, e, "Seal")

	records := e.Records()
	want := records[0].Component + " (" + records[0].FailureMode + "), " +
		records[1].Component + " (" + records[1].FailureMode + ")"
	assert.Equal(t, want, m.AvoidanceSummary())
}

func TestTagAndAppend(t *testing.T) {
	e := NewEngine()
	m := NewMergeCoordinator(e)
	existing := seedRecord(t, e, "Pump")

	fresh, err := schema.NormalizeNew(&schema.RecordPatch{Component: strPtr("Seal")}, schema.DefaultsBatch)
	require.NoError(t, err)
	m.TagAndAppend([]schema.Record{fresh})

	records := e.Records()
	require.Len(t, records, 2)
	assert.Equal(t, existing.ID, records[0].ID, "existing records are never touched")
	assert.True(t, records[1].IsNew)

	// Appending is undoable.
	require.True(t, e.Undo())
	assert.Equal(t, 1, e.Len())
}

func TestTagAndAppendEmptyIsNoOp(t *testing.T) {
	e := NewEngine()
	m := NewMergeCoordinator(e)
	seedRecord(t, e, "Pump")
	historyBefore := e.HistoryLen()

	m.TagAndAppend(nil)
	assert.Equal(t, 1, e.Len())
	assert.Equal(t, historyBefore, e.HistoryLen())
}

func TestRegenerateDiscardsHistory(t *testing.T) {
	e := NewEngine()
	m := NewMergeCoordinator(e)
	seedRecord(t, e, "Old")
	require.Greater(t, e.HistoryLen(), 0)

	fresh, err := schema.NormalizeNew(&schema.RecordPatch{Component: strPtr("New")}, schema.DefaultsBatch)
	require.NoError(t, err)
	m.Regenerate([]schema.Record{fresh})

	require.Equal(t, 1, e.Len())
	assert.Equal(t, "New", e.Records()[0].Component)
	assert.Equal(t, 0, e.HistoryLen())
	assert.False(t, e.Undo(), "regeneration is the new baseline")
}

func TestCommitSaveClearsNewFlags(t *testing.T) {
	e := NewEngine()
	m := NewMergeCoordinator(e)
	seedRecord(t, e, "Pump")
	require.True(t, e.Records()[0].IsNew)

	saved := m.CommitSave()
	require.Len(t, saved, 1)
	assert.False(t, saved[0].IsNew)
	assert.False(t, e.Records()[0].IsNew, "the engine's own copy is cleared too")
}

func TestCommitSaveIsUndoable(t *testing.T) {
	e := NewEngine()
	m := NewMergeCoordinator(e)
	seedRecord(t, e, "Pump")
	historyBefore := e.HistoryLen()

	m.CommitSave()
	assert.Equal(t, historyBefore+1, e.HistoryLen(), "clearing flags is an ordinary mutation")

	require.True(t, e.Undo())
	assert.True(t, e.Records()[0].IsNew, "undo restores the new flags")

	// A second save with nothing flagged changes nothing and takes no snapshot.
	m.CommitSave()
	afterClear := e.HistoryLen()
	m.CommitSave()
	assert.Equal(t, afterClear, e.HistoryLen())
}

func TestTagAndAppendClonesSubDocuments(t *testing.T) {
	e := NewEngine()
	m := NewMergeCoordinator(e)

	fresh, err := schema.NormalizeNew(&schema.RecordPatch{Component: strPtr("Seal")}, schema.DefaultsBatch)
	require.NoError(t, err)
	fresh.InspectionSheet = &schema.InspectionSheet{
		Responsibility: "Tech",
		Steps:          []schema.InspectionStep{{Step: 1, Description: "original"}},
	}
	fresh.ComponentIntel = &schema.ComponentIntel{Description: "original"}

	batch := []schema.Record{fresh}
	m.TagAndAppend(batch)

	batch[0].InspectionSheet.Steps[0].Description = "mutated"
	batch[0].ComponentIntel.Description = "mutated"

	got := e.Records()[0]
	assert.Equal(t, "original", got.InspectionSheet.Steps[0].Description,
		"appended records must not alias the caller's sub-documents")
	assert.Equal(t, "original", got.ComponentIntel.Description)
}
