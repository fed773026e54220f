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


// Package ai provides the AI provider abstraction used by jotpad.
//
// A Provider performs the five text operations the app offers: summarize,
// rewrite and format, format as blog post, extract tasks and speech to task.
// Providers never return errors; every failure is reported as a Result with
// Success false, so callers can apply their own fallback policy.
//
// # Implementation Packages
//
//   - ai/local: a local Ollama server through its OpenAI-compatible API
//   - ai/openai: the OpenAI API
//   - ai/anthropic: the Anthropic Messages API
//   - ai/gemini: the Google Gemini API
//   - ai/mock: test doubles
//
// Backends only have to supply a Generator. NewTextProvider turns it into a
// full Provider, applying the shared prompts, input limits, response cleanup
// and error-to-Result conversion:
//
//	gen := func(ctx context.Context, system, user string) (string, error) { ... }
//	provider := ai.NewTextProvider(core.ProviderOpenAI, "OpenAI", gen, cfg)
//
// A vendor selected without credentials is represented by NewUnconfigured, which
// fails every operation without performing I/O.
//
// # Constructor Return Type Pattern
//
// Public constructors return the Provider interface. Test doubles in ai/mock
// return concrete types so tests can inject behavior and inspect call counts.
package ai
