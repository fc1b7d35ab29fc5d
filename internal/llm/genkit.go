package llm

import (
	"context"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// RegisterAnalystProvider registers the FMECA analyst models as Genkit model
// providers, so the engine can be driven from a Genkit flow host.
func RegisterAnalystProvider(ctx context.Context, client *Client) (*genkit.Genkit, error) {
	g := genkit.Init(ctx)

	genkit.DefineModel(
		g,
		"fmeca/analyst",
		&ai.ModelOptions{
			Label: "FMECA Analyst (chat-completions backend)",
			Supports: &ai.ModelSupports{
				Multiturn:  true,
				SystemRole: true,
			},
		},
		func(ctx context.Context, req *ai.ModelRequest, cb ai.ModelStreamCallback) (*ai.ModelResponse, error) {
			prompt := flattenMessages(req)
			content, err := client.GenerateText(ctx, "", prompt)
			if err != nil {
				return nil, err
			}
			return &ai.ModelResponse{
				Request: req,
				Message: &ai.Message{
					Content: []*ai.Part{
						ai.NewTextPart(content),
					},
				},
			}, nil
		},
	)

	return g, nil
}

// flattenMessages joins the request's message parts into one prompt string
// for the single-turn chat-completions backend.
func flattenMessages(req *ai.ModelRequest) string {
	var prompt string
	for _, msg := range req.Messages {
		for _, part := range msg.Content {
			if part.IsText() {
				if prompt != "" {
					prompt += "\n"
				}
				prompt += part.Text
			}
		}
	}
	return prompt
}
