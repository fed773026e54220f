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


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for AI service providers.
type Config struct {
	// LocalHost is the base URL of the local model server's OpenAI-compatible API.
	// Example: "http://localhost:11434/v1"
	LocalHost string

	// LocalModel is the model served by the local model server.
	// Example: "llama2:latest", "qwen2.5:3b"
	LocalModel string

	// OpenAIModel is the chat model used when the user selects OpenAI.
	OpenAIModel string

	// OpenAIBaseURL overrides the OpenAI API endpoint. Empty means the vendor default.
	OpenAIBaseURL string

	// AnthropicModel is the model used when the user selects Claude.
	AnthropicModel string

	// AnthropicBaseURL overrides the Anthropic API endpoint. Empty means the vendor default.
	AnthropicBaseURL string

	// AnthropicMaxTokens bounds the length of each Claude response.
	AnthropicMaxTokens int64

	// AnthropicMaxRetries is the SDK-level retry count. Zero disables retries.
	AnthropicMaxRetries int

	// GeminiModel is the model used when the user selects Gemini.
	GeminiModel string

	// GeminiEndpoint overrides the Gemini API endpoint. Empty means the vendor default.
	GeminiEndpoint string

	// Temperature is the sampling temperature passed to every backend.
	Temperature float64

	// ProbeTimeout bounds the local availability probe.
	// Default: 2s
	ProbeTimeout time.Duration

	// MaxInputChars rejects inputs longer than this many characters before any
	// network call. Zero disables the check.
	MaxInputChars int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithLocalHost sets the local model server URL.
func WithLocalHost(host string) ConfigOption {
	return func(c *Config) {
		c.LocalHost = host
	}
}

// WithLocalModel sets the local model identifier.
func WithLocalModel(model string) ConfigOption {
	return func(c *Config) {
		c.LocalModel = model
	}
}

// WithOpenAIModel sets the OpenAI model identifier.
func WithOpenAIModel(model string) ConfigOption {
	return func(c *Config) {
		c.OpenAIModel = model
	}
}

// WithOpenAIBaseURL points the OpenAI provider at a different endpoint.
func WithOpenAIBaseURL(url string) ConfigOption {
	return func(c *Config) {
		c.OpenAIBaseURL = url
	}
}

// WithAnthropicModel sets the Claude model identifier.
func WithAnthropicModel(model string) ConfigOption {
	return func(c *Config) {
		c.AnthropicModel = model
	}
}

// WithAnthropicBaseURL points the Claude provider at a different endpoint.
func WithAnthropicBaseURL(url string) ConfigOption {
	return func(c *Config) {
		c.AnthropicBaseURL = url
	}
}

// WithAnthropicMaxTokens sets the Claude response token limit.
func WithAnthropicMaxTokens(n int64) ConfigOption {
	return func(c *Config) {
		c.AnthropicMaxTokens = n
	}
}

// WithAnthropicMaxRetries sets the Claude SDK retry count.
func WithAnthropicMaxRetries(n int) ConfigOption {
	return func(c *Config) {
		c.AnthropicMaxRetries = n
	}
}

// WithGeminiModel sets the Gemini model identifier.
func WithGeminiModel(model string) ConfigOption {
	return func(c *Config) {
		c.GeminiModel = model
	}
}

// WithGeminiEndpoint points the Gemini provider at a different endpoint.
func WithGeminiEndpoint(endpoint string) ConfigOption {
	return func(c *Config) {
		c.GeminiEndpoint = endpoint
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// WithProbeTimeout sets the local availability probe timeout.
func WithProbeTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.ProbeTimeout = d
	}
}

// WithMaxInputChars sets the input length limit.
func WithMaxInputChars(n int) ConfigOption {
	return func(c *Config) {
		c.MaxInputChars = n
	}
}

// DefaultConfig returns a Config with defaults for a local Ollama server and
// the cheapest general-purpose model of each vendor.
func DefaultConfig() *Config {
	return &Config{
		LocalHost:           "http://localhost:11434/v1",
		LocalModel:          "llama2:latest",
		OpenAIModel:         "gpt-4o-mini",
		AnthropicModel:      "claude-3-5-haiku-latest",
		AnthropicMaxTokens:  2048,
		AnthropicMaxRetries: 2,
		GeminiModel:         "gemini-1.5-flash",
		Temperature:         0.3,
		ProbeTimeout:        2 * time.Second,
		MaxInputChars:       32000,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithLocalHost("http://gpu-box:11434"),
//	    WithLocalModel("qwen2.5:3b"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It adds the /v1 suffix to LocalHost if missing, which the OpenAI-compatible
// endpoint of the local server requires.
func (c *Config) Normalize() {
	if c.LocalHost != "" && !strings.HasSuffix(c.LocalHost, "/v1") {
		c.LocalHost = strings.TrimSuffix(c.LocalHost, "/") + "/v1"
	}
}

// LocalServerRoot returns LocalHost without the /v1 suffix, the root of the
// server's native API.
func (c *Config) LocalServerRoot() string {
	return ServerRoot(c.LocalHost)
}

// ServerRoot strips a trailing slash and /v1 suffix from a host URL.
func ServerRoot(host string) string {
	host = strings.TrimSuffix(host, "/")
	return strings.TrimSuffix(host, "/v1")
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.LocalHost == "" {
		return errors.New("ai config: LocalHost is required")
	}
	if c.LocalModel == "" {
		return errors.New("ai config: LocalModel is required")
	}
	if c.OpenAIModel == "" {
		return errors.New("ai config: OpenAIModel is required")
	}
	if c.AnthropicModel == "" {
		return errors.New("ai config: AnthropicModel is required")
	}
	if c.GeminiModel == "" {
		return errors.New("ai config: GeminiModel is required")
	}
	if c.AnthropicMaxTokens <= 0 {
		return errors.New("ai config: AnthropicMaxTokens must be positive")
	}
	if c.AnthropicMaxRetries < 0 {
		return errors.New("ai config: AnthropicMaxRetries cannot be negative")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	if c.ProbeTimeout <= 0 {
		return errors.New("ai config: ProbeTimeout must be positive")
	}
	if c.MaxInputChars < 0 {
		return errors.New("ai config: MaxInputChars cannot be negative")
	}
	return nil
}
