package openai

import (
	"context"
	"fmt"

	"github.com/poiesic/jotpad/ai"
	"github.com/tmc/langchaingo/llms"
)

// ChatGenerator adapts a langchaingo chat model to ai.Generator.
func ChatGenerator(client llms.Model, temperature float64) ai.Generator {
	return func(ctx context.Context, system, user string) (string, error) {
		content := []llms.MessageContent{
			{
				Role: llms.ChatMessageTypeSystem,
				Parts: []llms.ContentPart{
					llms.TextPart(system),
				},
			},
			{
				Role: llms.ChatMessageTypeHuman,
				Parts: []llms.ContentPart{
					llms.TextPart(user),
				},
			},
		}

		response, err := client.GenerateContent(ctx, content, llms.WithTemperature(temperature))
		if err != nil {
			return "", err
		}
		if len(response.Choices) < 1 {
			return "", fmt.Errorf("%w: no choices returned", ai.ErrMalformedResponse)
		}
		return response.Choices[0].Content, nil
	}
}
