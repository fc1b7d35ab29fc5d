package tasks

import (
	"fmeca/pkg/schema"
)

// Record Batch Task Types

// RecordBatchInput is the input for bulk failure-mode generation.
// AvoidanceSummary is non-empty for incremental (merge) generation.
type RecordBatchInput struct {
	ContextText      string `json:"context_text"`
	Count            int    `json:"count"`
	AvoidanceSummary string `json:"avoidance_summary,omitempty"`
}

// Inspection Sheet Task Types

// SheetGenInput is the input for inspection-sheet generation.
type SheetGenInput struct {
	Record schema.Record `json:"record"`
}

// Component Intel Task Types

// IntelGenInput is the input for component-intel generation.
type IntelGenInput struct {
	Record schema.Record `json:"record"`
}

// Copilot Task Types

// CopilotInput is the input for a conversational analysis round.
type CopilotInput struct {
	ContextText string          `json:"context_text"`
	Records     []schema.Record `json:"records"`
	UserMessage string          `json:"user_message"`
}

// CopilotOutput carries the commentary shown to the engineer and the
// proposals extracted from the response's action blocks.
type CopilotOutput struct {
	Commentary string
	Proposals  []schema.Proposal
}
