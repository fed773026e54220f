// Package local implements ai.Provider against a local Ollama server.
//
// Completions go through the server's OpenAI-compatible /v1 API; no credential
// is needed. CheckAvailability probes the native /api/tags endpoint so the UI
// can show whether the local model server is running.
package local
