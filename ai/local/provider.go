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


package local

import (
	"github.com/poiesic/jotpad/ai"
	aiopenai "github.com/poiesic/jotpad/ai/openai"
	"github.com/poiesic/jotpad/core"
	"github.com/tmc/langchaingo/llms/openai"
)

// Name is the display name of the local provider.
const Name = "Ollama (Local)"

// NewProvider creates a provider backed by the local model server.
// The config is validated and normalized before use.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Local servers don't check the token, but the client requires one.
	client, err := openai.New(
		openai.WithBaseURL(config.LocalHost),
		openai.WithToken("none"),
		openai.WithModel(config.LocalModel),
	)
	if err != nil {
		return nil, err
	}

	return ai.NewTextProvider(core.ProviderLocal, Name, aiopenai.ChatGenerator(client, config.Temperature), config), nil
}
