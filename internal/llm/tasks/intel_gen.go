package tasks

import (
	"context"
	"fmt"

	"fmeca/internal/llm"
	"fmeca/pkg/schema"
)

// ExecuteIntelGenTask generates a component-intel sub-document for a single
// record.
func ExecuteIntelGenTask(
	client *llm.Client,
	ctx context.Context,
	input *IntelGenInput,
) (*schema.ComponentIntel, error) {
	prompt := llm.BuildIntelPrompt(input.Record)

	result, err := llm.GenerateStructured[schema.ComponentIntel](
		client,
		ctx,
		"", // Use default model
		prompt,
		ValidateIntel,
	)
	if err != nil {
		return nil, fmt.Errorf("component intel task failed: %w", err)
	}

	return result, nil
}

// ValidateIntel checks the generated intel's structure.
func ValidateIntel(intel *schema.ComponentIntel) error {
	if intel.Description == "" {
		return fmt.Errorf("description is required")
	}
	return nil
}
