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


package assistant

import (
	"github.com/poiesic/jotpad/ai"
	"github.com/poiesic/jotpad/ai/anthropic"
	"github.com/poiesic/jotpad/ai/gemini"
	"github.com/poiesic/jotpad/ai/local"
	aiopenai "github.com/poiesic/jotpad/ai/openai"
	"github.com/poiesic/jotpad/core"
)

// Factory builds a provider. NewProvider is the production Factory.
type Factory func(cfg *ai.Config, id core.ProviderID, credential string) ai.Provider

type vendor struct {
	name  string
	build func(cfg *ai.Config, apiKey string) (ai.Provider, error)
}

var vendors = map[core.ProviderID]vendor{
	core.ProviderOpenAI: {name: "OpenAI", build: aiopenai.NewProvider},
	core.ProviderClaude: {name: anthropic.Name, build: anthropic.NewProvider},
	core.ProviderGemini: {name: gemini.Name, build: gemini.NewProvider},
}

// NewProvider returns the provider for id.
//
// Unknown ids and "ollama" yield the local provider and the credential is ignored.
// A vendor id with an empty credential yields an unconfigured provider that fails
// every operation without I/O. If a client cannot be constructed the returned
// provider fails every operation with that error. The result is never nil and
// constructing it performs no network I/O.
func NewProvider(cfg *ai.Config, id core.ProviderID, credential string) ai.Provider {
	if cfg == nil {
		cfg = ai.DefaultConfig()
	}
	// Constructors normalize the config in place; work on a private copy.
	c := *cfg
	id = core.ParseProviderID(string(id))

	if !id.IsVendor() {
		p, err := local.NewProvider(&c)
		if err != nil {
			return ai.NewFailing(core.ProviderLocal, local.Name, err)
		}
		return p
	}

	v := vendors[id]
	if credential == "" {
		return ai.NewUnconfigured(id, v.name)
	}
	p, err := v.build(&c, credential)
	if err != nil {
		return ai.NewFailing(id, v.name, err)
	}
	return p
}
