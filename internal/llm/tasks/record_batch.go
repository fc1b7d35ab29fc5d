package tasks

import (
	"context"
	"fmt"

	"fmeca/internal/llm"
	"fmeca/pkg/schema"
)

// ExecuteRecordBatchTask generates a batch of candidate failure-mode records.
// The service must return a schema-conformant JSON array; structural problems
// are fed back for retry. Returned patches are raw: the caller normalizes
// them with batch defaults before they enter the dataset.
func ExecuteRecordBatchTask(
	client *llm.Client,
	ctx context.Context,
	input *RecordBatchInput,
) ([]schema.RecordPatch, error) {
	prompt := llm.BuildRecordBatchPrompt(input.ContextText, input.Count, input.AvoidanceSummary)

	result, err := llm.GenerateStructured[[]schema.RecordPatch](
		client,
		ctx,
		"", // Use default model
		prompt,
		ValidateRecordBatch,
	)
	if err != nil {
		return nil, fmt.Errorf("record batch task failed: %w", err)
	}

	return *result, nil
}

// ValidateRecordBatch checks the batch output's structure. Scores and enums
// are left to the normalizer; only shape problems are worth a retry.
func ValidateRecordBatch(items *[]schema.RecordPatch) error {
	if len(*items) == 0 {
		return fmt.Errorf("batch is empty, at least one record is required")
	}
	for i, item := range *items {
		if item.Component == nil || *item.Component == "" {
			return fmt.Errorf("items[%d]: component is required", i)
		}
		if item.FailureMode == nil || *item.FailureMode == "" {
			return fmt.Errorf("items[%d]: failureMode is required", i)
		}
	}
	return nil
}
