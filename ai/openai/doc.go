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


// Package openai implements ai.Provider with langchaingo's OpenAI client.
//
// The same client speaks to OpenAI itself and to any OpenAI-compatible
// server, so ChatGenerator is shared with the ai/local package.
//
// # Usage
//
//	cfg := ai.DefaultConfig()
//	provider, err := openai.NewProvider(cfg, apiKey)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res := provider.Summarize(ctx, "long meeting notes ...")
package openai
