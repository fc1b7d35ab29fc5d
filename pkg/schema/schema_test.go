package schema

import (
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func TestIDGeneration(t *testing.T) {
	recID, err := NewRecordID()
	if err != nil {
		t.Fatalf("Failed to generate record ID: %v", err)
	}
	if !strings.HasPrefix(recID, "FM-") {
		t.Errorf("Record ID should start with FM-, got %s", recID)
	}
	if len(strings.TrimPrefix(recID, "FM-")) != 10 {
		t.Errorf("Nanoid portion should be 10 characters")
	}

	studyID, err := NewStudyID()
	if err != nil {
		t.Fatalf("Failed to generate study ID: %v", err)
	}
	if !strings.HasPrefix(studyID, "STUDY-") {
		t.Errorf("Study ID should start with STUDY-, got %s", studyID)
	}
}

func TestIDCollisionResistance(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		id, err := NewRecordID()
		if err != nil {
			t.Fatalf("Failed to generate ID: %v", err)
		}
		if ids[id] {
			t.Fatalf("Collision detected after %d iterations: %s", i, id)
		}
		ids[id] = true
	}
}

func TestNormalizeNewComputesRPN(t *testing.T) {
	patch := &RecordPatch{
		Component:   strPtr("Test Bearing"),
		FailureMode: strPtr("Spalling"),
		Severity:    intPtr(9),
		Occurrence:  intPtr(4),
		Detection:   intPtr(7),
	}

	rec, err := NormalizeNew(patch, DefaultsCopilot)
	if err != nil {
		t.Fatalf("NormalizeNew failed: %v", err)
	}

	if rec.RPN != 252 {
		t.Errorf("RPN should be 9*4*7=252, got %d", rec.RPN)
	}
	if rec.Criticality != CriticalityHigh {
		t.Errorf("severity 9 should derive High criticality, got %s", rec.Criticality)
	}
	if rec.ID == "" {
		t.Error("normalized record should have an ID")
	}
}

func TestNormalizeNewDiscardsInputID(t *testing.T) {
	patch := &RecordPatch{ID: "FM-injected00", Component: strPtr("Pump")}

	rec, err := NormalizeNew(patch, DefaultsCopilot)
	if err != nil {
		t.Fatalf("NormalizeNew failed: %v", err)
	}
	if rec.ID == "FM-injected00" {
		t.Error("input ID should be discarded in favor of a fresh one")
	}
}

func TestNormalizeNewClampsScores(t *testing.T) {
	patch := &RecordPatch{
		Severity:   intPtr(15),
		Occurrence: intPtr(0),
		Detection:  intPtr(-3),
	}

	rec, err := NormalizeNew(patch, DefaultsCopilot)
	if err != nil {
		t.Fatalf("NormalizeNew failed: %v", err)
	}
	if rec.Severity != 10 || rec.Occurrence != 1 || rec.Detection != 1 {
		t.Errorf("scores should clamp to [1,10], got S%d O%d D%d",
			rec.Severity, rec.Occurrence, rec.Detection)
	}
	if rec.RPN != 10 {
		t.Errorf("RPN should use clamped scores, got %d", rec.RPN)
	}
}

func TestNormalizeNewDefaultsByMode(t *testing.T) {
	copilot, err := NormalizeNew(&RecordPatch{}, DefaultsCopilot)
	if err != nil {
		t.Fatalf("NormalizeNew failed: %v", err)
	}
	if copilot.Severity != 5 || copilot.Occurrence != 3 || copilot.Detection != 3 {
		t.Errorf("copilot defaults should be 5/3/3, got %d/%d/%d",
			copilot.Severity, copilot.Occurrence, copilot.Detection)
	}
	if copilot.Criticality != CriticalityMedium {
		t.Errorf("severity 5 should derive Medium, got %s", copilot.Criticality)
	}

	batch, err := NormalizeNew(&RecordPatch{}, DefaultsBatch)
	if err != nil {
		t.Fatalf("NormalizeNew failed: %v", err)
	}
	if batch.Severity != 8 || batch.Occurrence != 5 || batch.Detection != 6 {
		t.Errorf("batch defaults should be 8/5/6, got %d/%d/%d",
			batch.Severity, batch.Occurrence, batch.Detection)
	}
	if batch.Criticality != CriticalityHigh {
		t.Errorf("severity 8 should derive High, got %s", batch.Criticality)
	}
}

func TestNormalizeNewFillsPlaceholders(t *testing.T) {
	rec, err := NormalizeNew(&RecordPatch{}, DefaultsCopilot)
	if err != nil {
		t.Fatalf("NormalizeNew failed: %v", err)
	}

	if rec.Component != "Unknown Component" {
		t.Errorf("missing component should take placeholder, got %q", rec.Component)
	}
	if rec.FailureMode != "Wear due to Cause" {
		t.Errorf("missing failure mode should take placeholder, got %q", rec.FailureMode)
	}
	if rec.ConsequenceCategory != ConsequenceEvidentOperational {
		t.Errorf("missing consequence should default to Evident Operational, got %s", rec.ConsequenceCategory)
	}
	if rec.TaskType != TaskConditionMonitoring {
		t.Errorf("missing task type should default to Condition Monitoring, got %s", rec.TaskType)
	}
}

func TestNormalizeMergedRepairsInvariants(t *testing.T) {
	rec := Record{
		ID:          "FM-0000000001",
		Severity:    9,
		Occurrence:  2,
		Detection:   2,
		RPN:         999, // stale
		Criticality: "Bogus",
	}

	NormalizeMerged(&rec)

	if rec.RPN != 36 {
		t.Errorf("RPN should be recomputed to 36, got %d", rec.RPN)
	}
	if rec.Criticality != CriticalityHigh {
		t.Errorf("invalid criticality should be rederived, got %s", rec.Criticality)
	}
	if rec.ID != "FM-0000000001" {
		t.Errorf("merge normalization must not touch the ID, got %s", rec.ID)
	}
}

func TestOverlayAppliesOnlyPresentFields(t *testing.T) {
	rec := Record{
		ID:          "FM-0000000001",
		Component:   "Pump",
		FailureMode: "Cavitation",
		Severity:    7,
	}

	patch := RecordPatch{
		ID:       "FM-other",
		Severity: intPtr(3),
	}
	patch.Overlay(&rec)

	if rec.Severity != 3 {
		t.Errorf("present severity should apply, got %d", rec.Severity)
	}
	if rec.Component != "Pump" || rec.FailureMode != "Cavitation" {
		t.Error("absent fields must not be touched")
	}
	if rec.ID != "FM-0000000001" {
		t.Errorf("overlay must never replace the ID, got %s", rec.ID)
	}
}

func TestOverlayRepacksSheetSteps(t *testing.T) {
	rec := Record{ID: "FM-0000000001"}
	patch := RecordPatch{
		InspectionSheet: &InspectionSheet{
			Steps: []InspectionStep{
				{Step: 4, Description: "a"},
				{Step: 9, Description: "b"},
			},
		},
	}
	patch.Overlay(&rec)

	if rec.InspectionSheet.Steps[0].Step != 1 || rec.InspectionSheet.Steps[1].Step != 2 {
		t.Errorf("steps should repack to 1..n, got %d,%d",
			rec.InspectionSheet.Steps[0].Step, rec.InspectionSheet.Steps[1].Step)
	}

	// The patch's sheet must not be aliased.
	patch.InspectionSheet.Steps[0].Description = "mutated"
	if rec.InspectionSheet.Steps[0].Description != "a" {
		t.Error("overlaid sheet should be an independent copy")
	}
}

func TestRecordCloneIsDeep(t *testing.T) {
	rec := Record{
		ID:             "FM-0000000001",
		ComponentIntel: &ComponentIntel{Description: "original"},
		InspectionSheet: &InspectionSheet{
			Steps: []InspectionStep{{Step: 1, Description: "original"}},
		},
	}

	clone := rec.Clone()
	clone.ComponentIntel.Description = "changed"
	clone.InspectionSheet.Steps[0].Description = "changed"

	if rec.ComponentIntel.Description != "original" {
		t.Error("clone should not share component intel")
	}
	if rec.InspectionSheet.Steps[0].Description != "original" {
		t.Error("clone should not share inspection steps")
	}
}

func TestConsequenceCategoryEnum(t *testing.T) {
	want := map[ConsequenceCategory]bool{
		ConsequenceHiddenSafetyEnv:       true,
		ConsequenceHiddenOperational:     true,
		ConsequenceEvidentSafetyEnv:      true,
		ConsequenceEvidentOperational:    true,
		ConsequenceEvidentNonOperational: true,
	}
	if len(want) != len(ValidConsequenceCategories) {
		t.Fatalf("expected %d categories, got %d", len(want), len(ValidConsequenceCategories))
	}
	for _, c := range ValidConsequenceCategories {
		if !want[c] {
			t.Errorf("unexpected category %q", c)
		}
		if !IsValidConsequenceCategory(c) {
			t.Errorf("category %q should be valid", c)
		}
	}
	if ConsequenceEvidentNonOperational != "Evident Non-Operational" {
		t.Errorf("unexpected wire value: %q", ConsequenceEvidentNonOperational)
	}
	if IsValidConsequenceCategory("Evident NonOperational") {
		t.Error("near-miss spelling should be rejected")
	}
}

func TestDeriveCriticality(t *testing.T) {
	cases := []struct {
		severity int
		want     Criticality
	}{
		{10, CriticalityHigh},
		{8, CriticalityHigh},
		{7, CriticalityMedium},
		{5, CriticalityMedium},
		{4, CriticalityLow},
		{1, CriticalityLow},
	}
	for _, c := range cases {
		if got := DeriveCriticality(c.severity); got != c.want {
			t.Errorf("severity %d: want %s, got %s", c.severity, c.want, got)
		}
	}
}

func TestValidateRecordCatchesStaleRPN(t *testing.T) {
	rec, err := NormalizeNew(&RecordPatch{Severity: intPtr(6)}, DefaultsCopilot)
	if err != nil {
		t.Fatalf("NormalizeNew failed: %v", err)
	}
	if err := ValidateRecord(&rec); err != nil {
		t.Errorf("normalized record should validate, got %v", err)
	}

	rec.RPN++
	if err := ValidateRecord(&rec); err == nil {
		t.Error("stale RPN should fail validation")
	}
}

func TestValidateDatasetRejectsDuplicateIDs(t *testing.T) {
	a, _ := NormalizeNew(nil, DefaultsCopilot)
	b := a.Clone()

	if err := ValidateDataset([]Record{a, b}); err == nil {
		t.Error("duplicate IDs should fail dataset validation")
	}

	c, _ := NormalizeNew(nil, DefaultsCopilot)
	if err := ValidateDataset([]Record{a, c}); err != nil {
		t.Errorf("distinct records should validate, got %v", err)
	}
}
