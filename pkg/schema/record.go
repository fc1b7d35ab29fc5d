package schema

// ComponentIntel is an optional sub-document describing the physical component.
// It is owned exclusively by its Record and never shared.
type ComponentIntel struct {
	Description string `json:"description" yaml:"description"`
	Location    string `json:"location" yaml:"location"`
	VisualCues  string `json:"visualCues" yaml:"visual_cues"`
}

// InspectionStep is one step of an inspection sheet. Step numbers form a
// dense 1-based sequence; call RepackSteps after any insertion or removal.
type InspectionStep struct {
	Step        int    `json:"step" yaml:"step"`
	Description string `json:"description" yaml:"description"`
	Criteria    string `json:"criteria" yaml:"criteria"`
	Technique   string `json:"technique" yaml:"technique"`
}

// InspectionSheet is an optional sub-document carrying the executable
// inspection procedure for a failure mode.
type InspectionSheet struct {
	Responsibility    string           `json:"responsibility" yaml:"responsibility"`
	EstimatedTime     string           `json:"estimatedTime" yaml:"estimated_time"`
	SafetyPrecautions string           `json:"safetyPrecautions" yaml:"safety_precautions"`
	ToolsRequired     string           `json:"toolsRequired" yaml:"tools_required"`
	Steps             []InspectionStep `json:"steps" yaml:"steps"`
}

// RepackSteps renumbers steps to a contiguous sequence starting at 1.
func (s *InspectionSheet) RepackSteps() {
	for i := range s.Steps {
		s.Steps[i].Step = i + 1
	}
}

// Clone returns an independent deep copy of the sheet.
func (s *InspectionSheet) Clone() *InspectionSheet {
	if s == nil {
		return nil
	}
	out := *s
	out.Steps = make([]InspectionStep, len(s.Steps))
	copy(out.Steps, s.Steps)
	return &out
}

// Record is a single FMECA/RCM failure-mode entry.
//
// RPN is derived; it always equals Severity*Occurrence*Detection and is
// recomputed whenever any of the three scores changes. IsNew is transient:
// true only between a merge-generation append and the next explicit save.
type Record struct {
	ID                  string              `json:"id" yaml:"id"`
	Component           string              `json:"component" yaml:"component"`
	Function            string              `json:"function" yaml:"function"`
	FunctionalFailure   string              `json:"functionalFailure" yaml:"functional_failure"`
	FailureMode         string              `json:"failureMode" yaml:"failure_mode"`
	FailureEffect       string              `json:"failureEffect" yaml:"failure_effect"`
	ConsequenceCategory ConsequenceCategory `json:"consequenceCategory" yaml:"consequence_category"`
	ISO14224Code        string              `json:"iso14224Code" yaml:"iso14224_code"`
	Criticality         Criticality         `json:"criticality" yaml:"criticality"`
	Severity            int                 `json:"severity" yaml:"severity"`
	Occurrence          int                 `json:"occurrence" yaml:"occurrence"`
	Detection           int                 `json:"detection" yaml:"detection"`
	RPN                 int                 `json:"rpn" yaml:"rpn"`
	MaintenanceTask     string              `json:"maintenanceTask" yaml:"maintenance_task"`
	Interval            string              `json:"interval" yaml:"interval"`
	TaskType            TaskType            `json:"taskType" yaml:"task_type"`
	IsNew               bool                `json:"isNew,omitempty" yaml:"is_new,omitempty"`
	ComponentIntel      *ComponentIntel     `json:"componentIntel,omitempty" yaml:"component_intel,omitempty"`
	InspectionSheet     *InspectionSheet    `json:"inspectionSheet,omitempty" yaml:"inspection_sheet,omitempty"`
}

// RecomputeRPN clamps the three scores and rederives the risk priority number.
func (r *Record) RecomputeRPN() {
	r.Severity = ClampScore(r.Severity)
	r.Occurrence = ClampScore(r.Occurrence)
	r.Detection = ClampScore(r.Detection)
	r.RPN = r.Severity * r.Occurrence * r.Detection
}

// Clone returns an independent deep copy of the record, including owned
// sub-documents.
func (r Record) Clone() Record {
	out := r
	if r.ComponentIntel != nil {
		intel := *r.ComponentIntel
		out.ComponentIntel = &intel
	}
	out.InspectionSheet = r.InspectionSheet.Clone()
	return out
}

// CloneRecords deep-copies a whole dataset.
func CloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// ClampScore bounds a severity/occurrence/detection score to [ScoreMin, ScoreMax].
func ClampScore(v int) int {
	if v < ScoreMin {
		return ScoreMin
	}
	if v > ScoreMax {
		return ScoreMax
	}
	return v
}

// DeriveCriticality maps a severity score to a criticality band.
func DeriveCriticality(severity int) Criticality {
	switch {
	case severity >= CriticalityHighThreshold:
		return CriticalityHigh
	case severity >= CriticalityMediumThreshold:
		return CriticalityMedium
	default:
		return CriticalityLow
	}
}
