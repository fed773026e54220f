// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package anthropic implements ai.Provider with the Anthropic Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/poiesic/jotpad/ai"
	"github.com/poiesic/jotpad/core"
)

// Name is the display name of the provider.
const Name = "Claude"

// NewProvider creates a provider backed by the Anthropic API.
// The config is validated and normalized before use.
func NewProvider(config *ai.Config, apiKey string) (ai.Provider, error) {
	if apiKey == "" {
		return nil, ai.ErrMissingCredential
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(config.AnthropicMaxRetries),
	}
	if config.AnthropicBaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.AnthropicBaseURL))
	}
	client := anthropic.NewClient(opts...)

	g := &generator{
		client:      client,
		model:       config.AnthropicModel,
		maxTokens:   config.AnthropicMaxTokens,
		temperature: config.Temperature,
	}
	return ai.NewTextProvider(core.ProviderClaude, Name, g.generate, config), nil
}

type generator struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
}

func (g *generator) generate(ctx context.Context, system, user string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(g.model),
		MaxTokens:   g.maxTokens,
		Temperature: anthropic.Float(g.temperature),
		System:      []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	}

	message, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: no text content (stop reason %q)", ai.ErrMalformedResponse, message.StopReason)
	}
	return sb.String(), nil
}
