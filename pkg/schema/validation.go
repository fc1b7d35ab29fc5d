package schema

import "fmt"

// ValidateRecord performs strict structural validation for diagnostics.
// The normalizer is the lenient path; this reports what it would have fixed.
func ValidateRecord(r *Record) error {
	if r.ID == "" {
		return fmt.Errorf("id is required")
	}
	if !IsValidConsequenceCategory(r.ConsequenceCategory) {
		return fmt.Errorf("invalid consequence category: %s", r.ConsequenceCategory)
	}
	if !IsValidCriticality(r.Criticality) {
		return fmt.Errorf("invalid criticality: %s", r.Criticality)
	}
	if !IsValidTaskType(r.TaskType) {
		return fmt.Errorf("invalid task type: %s", r.TaskType)
	}
	for _, score := range []struct {
		name  string
		value int
	}{
		{"severity", r.Severity},
		{"occurrence", r.Occurrence},
		{"detection", r.Detection},
	} {
		if score.value < ScoreMin || score.value > ScoreMax {
			return fmt.Errorf("%s must be %d-%d, got %d", score.name, ScoreMin, ScoreMax, score.value)
		}
	}
	if r.RPN != r.Severity*r.Occurrence*r.Detection {
		return fmt.Errorf("stale rpn: %d != %d*%d*%d", r.RPN, r.Severity, r.Occurrence, r.Detection)
	}
	if r.InspectionSheet != nil {
		for i, step := range r.InspectionSheet.Steps {
			if step.Step != i+1 {
				return fmt.Errorf("inspection step %d has number %d, want %d", i, step.Step, i+1)
			}
		}
	}
	return nil
}

// ValidateDataset checks dataset-wide invariants: every record valid and all
// IDs pairwise distinct.
func ValidateDataset(records []Record) error {
	seen := make(map[string]bool, len(records))
	for i := range records {
		if err := ValidateRecord(&records[i]); err != nil {
			return fmt.Errorf("record %d (%s): %w", i, records[i].ID, err)
		}
		if seen[records[i].ID] {
			return fmt.Errorf("duplicate record id: %s", records[i].ID)
		}
		seen[records[i].ID] = true
	}
	return nil
}
