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


package openai

import (
	"github.com/poiesic/jotpad/ai"
	"github.com/poiesic/jotpad/core"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewProvider creates a provider backed by the OpenAI API.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not a concrete type) to keep callers
// independent of the langchaingo client.
func NewProvider(config *ai.Config, apiKey string) (ai.Provider, error) {
	if apiKey == "" {
		return nil, ai.ErrMissingCredential
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(config.OpenAIModel),
	}
	if config.OpenAIBaseURL != "" {
		opts = append(opts, openai.WithBaseURL(config.OpenAIBaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}

	return ai.NewTextProvider(core.ProviderOpenAI, "OpenAI", ChatGenerator(client, config.Temperature), config), nil
}
