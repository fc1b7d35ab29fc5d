package schema

// DefaultsMode selects the score fallbacks used when a candidate record omits
// severity/occurrence/detection. Copilot edits assume conservative mid-risk
// estimates; batch generation assumes the service already skews toward
// flagging criticality.
type DefaultsMode int

const (
	DefaultsCopilot DefaultsMode = iota
	DefaultsBatch
)

type scoreDefaults struct {
	severity   int
	occurrence int
	detection  int
}

func defaultsFor(mode DefaultsMode) scoreDefaults {
	if mode == DefaultsBatch {
		return scoreDefaults{severity: 8, occurrence: 5, detection: 6}
	}
	return scoreDefaults{severity: 5, occurrence: 3, detection: 3}
}

// Text placeholders for missing fields, so downstream display never shows a
// blank cell.
const (
	placeholderComponent       = "Unknown Component"
	placeholderFunction        = "Primary Function"
	placeholderFunctionalFail  = "Loss of Function"
	placeholderFailureMode     = "Wear due to Cause"
	placeholderFailureEffect   = "Degraded Performance"
	placeholderISO14224        = "Unclassified"
	placeholderMaintenanceTask = "Inspect and Assess"
	placeholderInterval        = "Monthly"
)

// NormalizeNew builds a fully-populated canonical record from a raw candidate.
// This is the ADD path: a fresh globally-unique ID is always assigned, any ID
// carried by the candidate is discarded. Missing scores take the mode's
// fallbacks, scores are clamped to [1,10], RPN is recomputed from the clamped
// scores and never trusted from input, and criticality is derived from
// severity when absent or invalid.
func NormalizeNew(patch *RecordPatch, mode DefaultsMode) (Record, error) {
	id, err := NewRecordID()
	if err != nil {
		return Record{}, err
	}

	d := defaultsFor(mode)
	rec := Record{
		ID:         id,
		Severity:   d.severity,
		Occurrence: d.occurrence,
		Detection:  d.detection,
	}
	if patch != nil {
		p := *patch
		p.ID = ""
		p.Overlay(&rec)
	}

	normalizeFields(&rec)
	return rec, nil
}

// NormalizeMerged re-establishes the derived invariants on a record after an
// UPDATE-path shallow merge. The record's existing ID is never replaced.
func NormalizeMerged(rec *Record) {
	normalizeFields(rec)
}

func normalizeFields(rec *Record) {
	rec.RecomputeRPN()

	if !IsValidCriticality(rec.Criticality) {
		rec.Criticality = DeriveCriticality(rec.Severity)
	}
	if !IsValidConsequenceCategory(rec.ConsequenceCategory) {
		rec.ConsequenceCategory = ConsequenceEvidentOperational
	}
	if !IsValidTaskType(rec.TaskType) {
		rec.TaskType = TaskConditionMonitoring
	}

	if rec.Component == "" {
		rec.Component = placeholderComponent
	}
	if rec.Function == "" {
		rec.Function = placeholderFunction
	}
	if rec.FunctionalFailure == "" {
		rec.FunctionalFailure = placeholderFunctionalFail
	}
	if rec.FailureMode == "" {
		rec.FailureMode = placeholderFailureMode
	}
	if rec.FailureEffect == "" {
		rec.FailureEffect = placeholderFailureEffect
	}
	if rec.ISO14224Code == "" {
		rec.ISO14224Code = placeholderISO14224
	}
	if rec.MaintenanceTask == "" {
		rec.MaintenanceTask = placeholderMaintenanceTask
	}
	if rec.Interval == "" {
		rec.Interval = placeholderInterval
	}

	if rec.InspectionSheet != nil {
		rec.InspectionSheet.RepackSteps()
	}
}
