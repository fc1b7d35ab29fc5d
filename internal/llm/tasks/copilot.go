package tasks

import (
	"context"
	"fmt"

	"fmeca/internal/llm"
)

// ExecuteCopilotTask runs one conversational round: free text in, commentary
// plus extracted proposals out. The response is not retried on parse
// problems; a malformed block is simply dropped by the action-block parser.
func ExecuteCopilotTask(
	client *llm.Client,
	ctx context.Context,
	input *CopilotInput,
) (*CopilotOutput, error) {
	prompt := llm.BuildCopilotPrompt(input.ContextText, input.Records, input.UserMessage)

	content, err := client.GenerateText(ctx, "", prompt)
	if err != nil {
		return nil, fmt.Errorf("copilot task failed: %w", err)
	}

	commentary, proposals := llm.ParseActionBlocks(content)
	return &CopilotOutput{
		Commentary: commentary,
		Proposals:  proposals,
	}, nil
}
