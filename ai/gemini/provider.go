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


// Package gemini implements ai.Provider with the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/poiesic/jotpad/ai"
	"github.com/poiesic/jotpad/core"
	"google.golang.org/api/option"
)

// Name is the display name of the provider.
const Name = "Gemini"

// NewProvider creates a provider backed by the Gemini API.
// No connection is made here; a client is created for each request and closed after it.
func NewProvider(config *ai.Config, apiKey string) (ai.Provider, error) {
	if apiKey == "" {
		return nil, ai.ErrMissingCredential
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	g := &generator{
		apiKey:      apiKey,
		model:       config.GeminiModel,
		endpoint:    config.GeminiEndpoint,
		temperature: float32(config.Temperature),
	}
	return ai.NewTextProvider(core.ProviderGemini, Name, g.generate, config), nil
}

type generator struct {
	apiKey      string
	model       string
	endpoint    string
	temperature float32
}

func (g *generator) clientOptions() []option.ClientOption {
	opts := []option.ClientOption{option.WithAPIKey(g.apiKey)}
	if g.endpoint != "" {
		opts = append(opts, option.WithEndpoint(g.endpoint))
	}
	return opts
}

func (g *generator) generate(ctx context.Context, system, user string) (string, error) {
	client, err := genai.NewClient(ctx, g.clientOptions()...)
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetTemperature(g.temperature)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	return extractText(resp)
}

// extractText concatenates the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates returned from gemini", ai.ErrMalformedResponse)
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", fmt.Errorf("%w: empty candidate from gemini", ai.ErrMalformedResponse)
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: unexpected response format from gemini", ai.ErrMalformedResponse)
	}
	return sb.String(), nil
}
