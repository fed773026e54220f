package ai

import (
	"context"
	"fmt"

	"github.com/poiesic/jotpad/core"
)

// unconfiguredProvider fails every operation without touching the network.
type unconfiguredProvider struct {
	id   core.ProviderID
	name string
	err  error
}

// NewUnconfigured returns a Provider for a vendor selected without an API key.
// Every operation fails immediately with ErrMissingCredential.
func NewUnconfigured(id core.ProviderID, name string) Provider {
	return NewFailing(id, name, ErrMissingCredential)
}

// NewFailing returns a Provider whose every operation fails with err.
func NewFailing(id core.ProviderID, name string, err error) Provider {
	return &unconfiguredProvider{id: id, name: name, err: err}
}

func (p *unconfiguredProvider) ID() core.ProviderID { return p.id }
func (p *unconfiguredProvider) Name() string        { return p.name }

func (p *unconfiguredProvider) result() Result {
	return Result{Success: false, Error: fmt.Sprintf("%s: %v", p.name, p.err)}
}

func (p *unconfiguredProvider) Summarize(context.Context, string) Result {
	return p.result()
}

func (p *unconfiguredProvider) RewriteAndFormat(context.Context, string) Result {
	return p.result()
}

func (p *unconfiguredProvider) FormatAsBlogPost(context.Context, string) Result {
	return p.result()
}

func (p *unconfiguredProvider) SpeechToTask(context.Context, string) Result {
	return p.result()
}

func (p *unconfiguredProvider) ExtractTasks(context.Context, string) TasksResult {
	return TasksResult{Success: false, Tasks: []string{}, Error: p.result().Error}
}
