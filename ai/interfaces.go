package ai

import (
	"context"

	"github.com/poiesic/jotpad/core"
)

// Result is the outcome of a text-producing operation.
// Failures are values, not errors: Success is false and Error describes why.
type Result struct {
	Success bool
	Content string
	Error   string
}

// TasksResult is the outcome of task extraction.
type TasksResult struct {
	Success bool
	Tasks   []string
	Error   string
}

// Provider is an AI backend able to perform the text operations the app offers.
// Implementations never return errors or panic past this boundary; every
// failure is reported through the Result. Implementations are safe for concurrent use.
type Provider interface {
	// ID identifies the backend.
	ID() core.ProviderID

	// Name is a human-readable backend name.
	Name() string

	// Summarize condenses text.
	Summarize(ctx context.Context, text string) Result

	// RewriteAndFormat improves clarity and structure while preserving meaning.
	RewriteAndFormat(ctx context.Context, text string) Result

	// FormatAsBlogPost turns raw notes into a blog post body.
	FormatAsBlogPost(ctx context.Context, text string) Result

	// ExtractTasks returns actionable items found in text.
	// Returns an empty slice when nothing actionable is found.
	ExtractTasks(ctx context.Context, text string) TasksResult

	// SpeechToTask turns a transcribed utterance into a concise task title.
	SpeechToTask(ctx context.Context, text string) Result
}

// Generator sends a system prompt and a user message to a backend and returns
// the raw completion text.
type Generator func(ctx context.Context, system, user string) (string, error)

// Operation names a Provider operation. Used in logs and failure reports.
type Operation string

const (
	OpSummarize        Operation = "summarize"
	OpRewriteAndFormat Operation = "rewrite_and_format"
	OpFormatAsBlogPost Operation = "format_as_blog_post"
	OpExtractTasks     Operation = "extract_tasks"
	OpSpeechToTask     Operation = "speech_to_task"
)
