package schema

// ProposalType discriminates the three mutation kinds a proposal can carry.
type ProposalType string

const (
	ProposalAdd    ProposalType = "ADD"
	ProposalUpdate ProposalType = "UPDATE"
	ProposalDelete ProposalType = "DELETE"
)

// RecordPatch is a partial record: nil fields were absent from the input.
// It is the raw candidate shape produced by generation output and by action
// blocks, before normalization.
type RecordPatch struct {
	ID                  string               `json:"id,omitempty"`
	Component           *string              `json:"component,omitempty"`
	Function            *string              `json:"function,omitempty"`
	FunctionalFailure   *string              `json:"functionalFailure,omitempty"`
	FailureMode         *string              `json:"failureMode,omitempty"`
	FailureEffect       *string              `json:"failureEffect,omitempty"`
	ConsequenceCategory *ConsequenceCategory `json:"consequenceCategory,omitempty"`
	ISO14224Code        *string              `json:"iso14224Code,omitempty"`
	Criticality         *Criticality         `json:"criticality,omitempty"`
	Severity            *int                 `json:"severity,omitempty"`
	Occurrence          *int                 `json:"occurrence,omitempty"`
	Detection           *int                 `json:"detection,omitempty"`
	MaintenanceTask     *string              `json:"maintenanceTask,omitempty"`
	Interval            *string              `json:"interval,omitempty"`
	TaskType            *TaskType            `json:"taskType,omitempty"`
	ComponentIntel      *ComponentIntel      `json:"componentIntel,omitempty"`
	InspectionSheet     *InspectionSheet     `json:"inspectionSheet,omitempty"`
}

// Overlay shallow-merges the patch's present fields onto a record.
// The record's ID is never replaced; derived fields are not recomputed here.
func (p *RecordPatch) Overlay(r *Record) {
	if p.Component != nil {
		r.Component = *p.Component
	}
	if p.Function != nil {
		r.Function = *p.Function
	}
	if p.FunctionalFailure != nil {
		r.FunctionalFailure = *p.FunctionalFailure
	}
	if p.FailureMode != nil {
		r.FailureMode = *p.FailureMode
	}
	if p.FailureEffect != nil {
		r.FailureEffect = *p.FailureEffect
	}
	if p.ConsequenceCategory != nil {
		r.ConsequenceCategory = *p.ConsequenceCategory
	}
	if p.ISO14224Code != nil {
		r.ISO14224Code = *p.ISO14224Code
	}
	if p.Criticality != nil {
		r.Criticality = *p.Criticality
	}
	if p.Severity != nil {
		r.Severity = *p.Severity
	}
	if p.Occurrence != nil {
		r.Occurrence = *p.Occurrence
	}
	if p.Detection != nil {
		r.Detection = *p.Detection
	}
	if p.MaintenanceTask != nil {
		r.MaintenanceTask = *p.MaintenanceTask
	}
	if p.Interval != nil {
		r.Interval = *p.Interval
	}
	if p.TaskType != nil {
		r.TaskType = *p.TaskType
	}
	if p.ComponentIntel != nil {
		intel := *p.ComponentIntel
		r.ComponentIntel = &intel
	}
	if p.InspectionSheet != nil {
		sheet := p.InspectionSheet.Clone()
		sheet.RepackSteps()
		r.InspectionSheet = sheet
	}
}

// Proposal is a transient create/update/delete instruction. It is produced by
// the action-block parser or by a direct UI action, consumed exactly once by
// the reconciliation engine, then discarded.
type Proposal struct {
	ID     string       `json:"id,omitempty"`
	Type   ProposalType `json:"type"`
	Item   *RecordPatch `json:"item,omitempty"`
	Reason string       `json:"reason,omitempty"`
}
