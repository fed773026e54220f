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


package mock

import (
	"context"
	"sync"

	"github.com/poiesic/jotpad/ai"
	"github.com/poiesic/jotpad/core"
)

// MockProvider is a test double for ai.Provider.
// It allows custom behavior injection via function fields and is safe for concurrent use
// as long as the function fields are set before the provider is shared.
type MockProvider struct {
	ProviderID   core.ProviderID
	ProviderName string

	// SummarizeFunc is called by Summarize if set.
	SummarizeFunc func(ctx context.Context, text string) ai.Result

	// RewriteAndFormatFunc is called by RewriteAndFormat if set.
	RewriteAndFormatFunc func(ctx context.Context, text string) ai.Result

	// FormatAsBlogPostFunc is called by FormatAsBlogPost if set.
	FormatAsBlogPostFunc func(ctx context.Context, text string) ai.Result

	// ExtractTasksFunc is called by ExtractTasks if set.
	ExtractTasksFunc func(ctx context.Context, text string) ai.TasksResult

	// SpeechToTaskFunc is called by SpeechToTask if set.
	SpeechToTaskFunc func(ctx context.Context, text string) ai.Result

	mu    sync.Mutex
	calls map[ai.Operation]int
}

var _ ai.Provider = (*MockProvider)(nil)

// NewMockProvider creates a mock provider with default deterministic behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockProvider(id core.ProviderID) *MockProvider {
	return &MockProvider{
		ProviderID:   id,
		ProviderName: "mock-" + string(id),
		calls:        make(map[ai.Operation]int),
	}
}

// NewFailingProvider creates a mock whose every operation fails with msg.
func NewFailingProvider(id core.ProviderID, msg string) *MockProvider {
	m := NewMockProvider(id)
	fail := func(context.Context, string) ai.Result {
		return ai.Result{Success: false, Error: msg}
	}
	m.SummarizeFunc = fail
	m.RewriteAndFormatFunc = fail
	m.FormatAsBlogPostFunc = fail
	m.SpeechToTaskFunc = fail
	m.ExtractTasksFunc = func(context.Context, string) ai.TasksResult {
		return ai.TasksResult{Success: false, Tasks: []string{}, Error: msg}
	}
	return m
}

func (m *MockProvider) ID() core.ProviderID {
	return m.ProviderID
}

func (m *MockProvider) Name() string {
	return m.ProviderName
}

// Summarize returns "summarize: <text>" unless SummarizeFunc is set.
func (m *MockProvider) Summarize(ctx context.Context, text string) ai.Result {
	m.record(ai.OpSummarize)
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, text)
	}
	return ai.Result{Success: true, Content: "summarize: " + text}
}

// RewriteAndFormat returns "rewrite: <text>" unless RewriteAndFormatFunc is set.
func (m *MockProvider) RewriteAndFormat(ctx context.Context, text string) ai.Result {
	m.record(ai.OpRewriteAndFormat)
	if m.RewriteAndFormatFunc != nil {
		return m.RewriteAndFormatFunc(ctx, text)
	}
	return ai.Result{Success: true, Content: "rewrite: " + text}
}

// FormatAsBlogPost returns "blog: <text>" unless FormatAsBlogPostFunc is set.
func (m *MockProvider) FormatAsBlogPost(ctx context.Context, text string) ai.Result {
	m.record(ai.OpFormatAsBlogPost)
	if m.FormatAsBlogPostFunc != nil {
		return m.FormatAsBlogPostFunc(ctx, text)
	}
	return ai.Result{Success: true, Content: "blog: " + text}
}

// ExtractTasks returns one task per input line unless ExtractTasksFunc is set.
func (m *MockProvider) ExtractTasks(ctx context.Context, text string) ai.TasksResult {
	m.record(ai.OpExtractTasks)
	if m.ExtractTasksFunc != nil {
		return m.ExtractTasksFunc(ctx, text)
	}
	return ai.TasksResult{Success: true, Tasks: ai.ParseTaskLines(text)}
}

// SpeechToTask returns the normalized input unless SpeechToTaskFunc is set.
func (m *MockProvider) SpeechToTask(ctx context.Context, text string) ai.Result {
	m.record(ai.OpSpeechToTask)
	if m.SpeechToTaskFunc != nil {
		return m.SpeechToTaskFunc(ctx, text)
	}
	return ai.Result{Success: true, Content: ai.NormalizeTaskTitle(text)}
}

func (m *MockProvider) record(op ai.Operation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[ai.Operation]int)
	}
	m.calls[op]++
}

// CallCount returns the number of times any operation was called.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

// Calls returns the number of times op was called.
func (m *MockProvider) Calls(op ai.Operation) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// Reset clears call counts and injected behavior.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = make(map[ai.Operation]int)
	m.SummarizeFunc = nil
	m.RewriteAndFormatFunc = nil
	m.FormatAsBlogPostFunc = nil
	m.ExtractTasksFunc = nil
	m.SpeechToTaskFunc = nil
}
