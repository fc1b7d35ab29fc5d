package dataset

import (
	"strconv"
	"strings"

	"fmeca/pkg/schema"
)

// Export column sets. Fixed per format; downstream spreadsheet paste depends
// on them being reproduced exactly.
var flatHeader = []string{
	"Component", "Function", "Functional Failure", "Failure Mode",
	"Failure Effect", "Consequence Category", "ISO 14224 Code", "Criticality",
	"Severity", "Occurrence", "Detection", "RPN",
	"Maintenance Task", "Interval", "Task Type",
	"Responsibility", "Estimated Time", "Safety Precautions", "Tools Required",
	"Step", "Step Description", "Acceptance Criteria", "Technique",
}

var classicalHeader = []string{
	"Component", "Technical Description",
	"Step", "Inspection Task", "Acceptance Criteria", "Technique",
	"Responsibility", "Estimated Time", "Safety Precautions", "Tools Required",
}

// ExportFlat renders the view in the flat format: one row per inspection step
// (one row with empty step cells when no sheet exists), with every record
// field repeated on each of its rows. Cells are tab-separated, rows
// newline-separated.
func ExportFlat(records []schema.Record) string {
	var sb strings.Builder
	writeRow(&sb, flatHeader)

	for _, r := range records {
		base := []string{
			r.Component, r.Function, r.FunctionalFailure, r.FailureMode,
			r.FailureEffect, string(r.ConsequenceCategory), r.ISO14224Code,
			string(r.Criticality),
			strconv.Itoa(r.Severity), strconv.Itoa(r.Occurrence),
			strconv.Itoa(r.Detection), strconv.Itoa(r.RPN),
			r.MaintenanceTask, r.Interval, string(r.TaskType),
		}
		base = append(base, sheetMeta(r.InspectionSheet)...)

		if r.InspectionSheet == nil || len(r.InspectionSheet.Steps) == 0 {
			writeRow(&sb, append(append([]string{}, base...), "", "", "", ""))
			continue
		}
		for _, step := range r.InspectionSheet.Steps {
			row := append(append([]string{}, base...),
				strconv.Itoa(step.Step), step.Description, step.Criteria, step.Technique)
			writeRow(&sb, row)
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// ExportClassical renders the view in the classical inspection-sheet format:
// one row per step, with the leading identification columns written only on a
// record's first row and left blank on its continuation rows.
func ExportClassical(records []schema.Record) string {
	var sb strings.Builder
	writeRow(&sb, classicalHeader)

	for _, r := range records {
		ident := []string{r.Component, intelDescription(r.ComponentIntel)}
		meta := sheetMeta(r.InspectionSheet)

		if r.InspectionSheet == nil || len(r.InspectionSheet.Steps) == 0 {
			writeRow(&sb, append(append(append([]string{}, ident...), "", "", "", ""), meta...))
			continue
		}
		for i, step := range r.InspectionSheet.Steps {
			lead := ident
			if i > 0 {
				lead = []string{"", ""}
			}
			row := append(append([]string{}, lead...),
				strconv.Itoa(step.Step), step.Description, step.Criteria, step.Technique)
			row = append(row, meta...)
			writeRow(&sb, row)
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func sheetMeta(sheet *schema.InspectionSheet) []string {
	if sheet == nil {
		return []string{"", "", "", ""}
	}
	return []string{
		sheet.Responsibility, sheet.EstimatedTime,
		sheet.SafetyPrecautions, sheet.ToolsRequired,
	}
}

func intelDescription(intel *schema.ComponentIntel) string {
	if intel == nil {
		return ""
	}
	return intel.Description
}

func writeRow(sb *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteByte('\t')
		}
		sb.WriteString(escapeCell(cell))
	}
	sb.WriteByte('\n')
}

// escapeCell quotes a cell when it contains a tab, newline, or double quote,
// doubling every internal quote.
func escapeCell(s string) string {
	if !strings.ContainsAny(s, "\t\n\"") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
