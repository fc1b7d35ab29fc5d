package llm

import (
	"fmt"
	"strings"

	"fmeca/pkg/schema"
)

// Record JSON contract repeated in every structured prompt. The enumerations
// here mirror pkg/schema exactly; the normalizer still clamps and defaults
// whatever comes back.
const recordContract = `Each record is a JSON object with this exact structure:
{
  "component": "string",
  "function": "string",
  "functionalFailure": "string",
  "failureMode": "string",
  "failureEffect": "string",
  "consequenceCategory": "Hidden Safety-Env" | "Hidden Operational" | "Evident Safety-Env" | "Evident Operational" | "Evident Non-Operational",
  "iso14224Code": "string",
  "criticality": "High" | "Medium" | "Low",
  "severity": 1-10,
  "occurrence": 1-10,
  "detection": 1-10,
  "maintenanceTask": "string",
  "interval": "string",
  "taskType": "Condition Monitoring" | "Scheduled Restoration" | "Scheduled Discard" | "Failure Finding" | "Run to Failure" | "Redesign" | "Lubrication" | "Servicing" | "Visual Inspection"
}`

// BuildRecordBatchPrompt creates the prompt for bulk failure-mode generation.
// When avoidanceSummary is non-empty the generation is incremental and the
// model is told which component/failure-mode pairs already exist. Advisory
// only: the service may still duplicate.
func BuildRecordBatchPrompt(contextText string, count int, avoidanceSummary string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`You are a reliability engineer performing an FMECA/RCM analysis.

OPERATIONAL CONTEXT:
%s

Generate %d failure-mode records for this equipment.

`, contextText, count))

	if avoidanceSummary != "" {
		sb.WriteString(fmt.Sprintf(`ALREADY ANALYZED (do not repeat these component/failure-mode pairs):
%s

`, avoidanceSummary))
	}

	sb.WriteString(recordContract)
	sb.WriteString("\n\nReturn ONLY a valid JSON array of record objects. No commentary, no markdown.")
	return sb.String()
}

// BuildCopilotPrompt creates the prompt for a conversational analysis round.
// The model may embed directives in <ACTION> blocks; everything outside the
// blocks is shown to the user as commentary.
func BuildCopilotPrompt(contextText string, records []schema.Record, userMessage string) string {
	var sb strings.Builder

	sb.WriteString(`You are an FMECA analysis copilot. You can discuss the analysis and propose
changes to the dataset.

To propose a change, embed one or more directive blocks in your answer:

<ACTION>
{"type": "ADD" | "UPDATE" | "DELETE", "item": { ...record fields... }, "reason": "string"}
</ACTION>

Rules:
- ADD: item carries the new record's fields (id is assigned for you).
- UPDATE: item must carry the target "id" plus only the fields to change.
- DELETE: item must carry the target "id".
- A block may contain a single object or an array of objects.
- Text outside the blocks is commentary shown to the engineer.

`)

	if contextText != "" {
		sb.WriteString(fmt.Sprintf("OPERATIONAL CONTEXT:\n%s\n\n", contextText))
	}

	if len(records) > 0 {
		sb.WriteString("CURRENT DATASET:\n")
		for _, r := range records {
			sb.WriteString(fmt.Sprintf("- [%s] %s | %s | RPN %d | %s\n",
				r.ID, r.Component, r.FailureMode, r.RPN, r.Criticality))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("ENGINEER: %s\n", userMessage))
	return sb.String()
}

// BuildSheetPrompt creates the prompt for inspection-sheet generation for a
// single failure mode.
func BuildSheetPrompt(rec schema.Record) string {
	return fmt.Sprintf(`Create an inspection sheet for this failure mode:

Component: %s
Function: %s
Failure Mode: %s
Failure Effect: %s
Maintenance Task: %s (%s)

Return ONLY valid JSON with this exact structure:
{
  "responsibility": "string",
  "estimatedTime": "string",
  "safetyPrecautions": "string",
  "toolsRequired": "string",
  "steps": [
    {"step": 1, "description": "string", "criteria": "string", "technique": "string"}
  ]
}

Steps must be numbered sequentially from 1. Provide 3-8 steps.`,
		rec.Component, rec.Function, rec.FailureMode, rec.FailureEffect,
		rec.MaintenanceTask, rec.Interval)
}

// BuildIntelPrompt creates the prompt for component-intel generation.
func BuildIntelPrompt(rec schema.Record) string {
	return fmt.Sprintf(`Describe the physical component for a field technician:

Component: %s
Function: %s
Known failure mode: %s

Return ONLY valid JSON with this exact structure:
{
  "description": "string (technical description of the component)",
  "location": "string (where to find it on the equipment)",
  "visualCues": "string (what it looks like, identifying marks)"
}`,
		rec.Component, rec.Function, rec.FailureMode)
}
