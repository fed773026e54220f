// Package mock provides a test double for ai.Provider.
//
// MockProvider lets tests run without any AI backend and inject behavior per
// operation through function fields.
//
// # Usage in Tests
//
//	// Default behavior: deterministic successful results
//	p := mock.NewMockProvider(core.ProviderLocal)
//	res := p.Summarize(ctx, "text")
//
//	// Custom behavior injection
//	p.SummarizeFunc = func(ctx context.Context, text string) ai.Result {
//	    return ai.Result{Success: false, Error: "offline"}
//	}
//
//	// Check call counts
//	count := p.CallCount()
//	n := p.Calls(ai.OpSummarize)
//
// # Default Behavior
//
//   - Summarize, RewriteAndFormat, FormatAsBlogPost: the input prefixed with the operation name
//   - ExtractTasks: one task per non-empty input line
//   - SpeechToTask: the input normalized to a task title
package mock
