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


package core

import "strings"

// ProviderID names an AI backend a user can select.
type ProviderID string

const (
	// ProviderLocal is the local model server. It needs no credential.
	ProviderLocal ProviderID = "ollama"
	// ProviderOpenAI is the OpenAI hosted API.
	ProviderOpenAI ProviderID = "openai"
	// ProviderClaude is the Anthropic hosted API.
	ProviderClaude ProviderID = "claude"
	// ProviderGemini is the Google Gemini hosted API.
	ProviderGemini ProviderID = "gemini"
)

// ParseProviderID maps a raw identifier to a ProviderID.
// Unknown or empty identifiers resolve to ProviderLocal.
func ParseProviderID(s string) ProviderID {
	switch p := ProviderID(strings.ToLower(strings.TrimSpace(s))); p {
	case ProviderOpenAI, ProviderClaude, ProviderGemini:
		return p
	default:
		return ProviderLocal
	}
}

// IsVendor reports whether the provider is a hosted third-party API.
func (p ProviderID) IsVendor() bool {
	return p == ProviderOpenAI || p == ProviderClaude || p == ProviderGemini
}

// UserAISettings holds a user's preferred AI backend and vendor credentials.
type UserAISettings struct {
	PreferredAI ProviderID `json:"preferredAI"`
	OpenAIKey   string     `json:"openaiKey,omitempty"`
	ClaudeKey   string     `json:"claudeKey,omitempty"`
	GeminiKey   string     `json:"geminiKey,omitempty"`
}

// DefaultSettings returns the settings applied to anonymous sessions.
func DefaultSettings() *UserAISettings {
	return &UserAISettings{PreferredAI: ProviderLocal}
}

// CredentialFor returns the stored credential for the given provider.
// The local provider never has one.
func (s *UserAISettings) CredentialFor(p ProviderID) string {
	if s == nil {
		return ""
	}
	switch p {
	case ProviderOpenAI:
		return s.OpenAIKey
	case ProviderClaude:
		return s.ClaudeKey
	case ProviderGemini:
		return s.GeminiKey
	default:
		return ""
	}
}

// Normalized returns a copy with PreferredAI resolved and credentials trimmed.
func (s *UserAISettings) Normalized() *UserAISettings {
	if s == nil {
		return DefaultSettings()
	}
	return &UserAISettings{
		PreferredAI: ParseProviderID(string(s.PreferredAI)),
		OpenAIKey:   strings.TrimSpace(s.OpenAIKey),
		ClaudeKey:   strings.TrimSpace(s.ClaudeKey),
		GeminiKey:   strings.TrimSpace(s.GeminiKey),
	}
}
