package tasks

import (
	"context"
	"fmt"

	"fmeca/internal/llm"
	"fmeca/pkg/schema"
)

// ExecuteSheetGenTask generates an inspection sheet for a single failure mode.
func ExecuteSheetGenTask(
	client *llm.Client,
	ctx context.Context,
	input *SheetGenInput,
) (*schema.InspectionSheet, error) {
	prompt := llm.BuildSheetPrompt(input.Record)

	result, err := llm.GenerateStructured[schema.InspectionSheet](
		client,
		ctx,
		"", // Use default model
		prompt,
		ValidateSheet,
	)
	if err != nil {
		return nil, fmt.Errorf("sheet generation task failed: %w", err)
	}

	result.RepackSteps()
	return result, nil
}

// ValidateSheet checks the generated sheet's structure. Step numbering is not
// validated: the engine re-packs it regardless.
func ValidateSheet(sheet *schema.InspectionSheet) error {
	if len(sheet.Steps) == 0 {
		return fmt.Errorf("steps cannot be empty")
	}
	for i, step := range sheet.Steps {
		if step.Description == "" {
			return fmt.Errorf("steps[%d]: description is required", i)
		}
	}
	if sheet.Responsibility == "" {
		return fmt.Errorf("responsibility is required")
	}
	return nil
}
