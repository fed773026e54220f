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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/jotpad/core"
)

// textProvider implements Provider on top of a Generator.
type textProvider struct {
	id       core.ProviderID
	name     string
	generate Generator
	maxChars int
	logger   *slog.Logger
}

var _ Provider = (*textProvider)(nil)

// NewTextProvider builds a Provider whose operations are prompts sent through generate.
// Input limits come from cfg; a nil cfg uses DefaultConfig.
func NewTextProvider(id core.ProviderID, name string, generate Generator, cfg *Config) Provider {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &textProvider{
		id:       id,
		name:     name,
		generate: generate,
		maxChars: cfg.MaxInputChars,
		logger:   slog.Default().With("component", "ai-provider", "provider", string(id)),
	}
}

func (p *textProvider) ID() core.ProviderID {
	return p.id
}

func (p *textProvider) Name() string {
	return p.name
}

func (p *textProvider) Summarize(ctx context.Context, text string) Result {
	return p.complete(ctx, OpSummarize, text)
}

func (p *textProvider) RewriteAndFormat(ctx context.Context, text string) Result {
	return p.complete(ctx, OpRewriteAndFormat, text)
}

func (p *textProvider) FormatAsBlogPost(ctx context.Context, text string) Result {
	return p.complete(ctx, OpFormatAsBlogPost, text)
}

func (p *textProvider) SpeechToTask(ctx context.Context, text string) Result {
	res := p.complete(ctx, OpSpeechToTask, text)
	if !res.Success {
		return res
	}
	title := NormalizeTaskTitle(res.Content)
	if title == "" {
		return p.failure(OpSpeechToTask, ErrMalformedResponse)
	}
	return Result{Success: true, Content: title}
}

func (p *textProvider) ExtractTasks(ctx context.Context, text string) TasksResult {
	res := p.complete(ctx, OpExtractTasks, text)
	if !res.Success {
		return TasksResult{Success: false, Tasks: []string{}, Error: res.Error}
	}
	return TasksResult{Success: true, Tasks: ParseTaskLines(res.Content)}
}

// complete runs one operation. Extraction may legitimately return no content.
func (p *textProvider) complete(ctx context.Context, op Operation, text string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = p.failure(op, fmt.Errorf("%w: %v", ErrMalformedResponse, r))
		}
	}()

	if err := p.checkInput(text); err != nil {
		return p.failure(op, err)
	}

	raw, err := p.generate(ctx, promptFor(op), userMessage(op, strings.TrimSpace(text)))
	if err != nil {
		return p.failure(op, err)
	}

	content := CleanResponse(raw)
	if content == "" && op != OpExtractTasks {
		return p.failure(op, ErrMalformedResponse)
	}
	return Result{Success: true, Content: content}
}

func (p *textProvider) checkInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyInput
	}
	if p.maxChars > 0 {
		if n := utf8.RuneCountInString(text); n > p.maxChars {
			return fmt.Errorf("%w: %d characters, limit %d", ErrInputTooLarge, n, p.maxChars)
		}
	}
	return nil
}

func (p *textProvider) failure(op Operation, err error) Result {
	switch {
	case errors.Is(err, ErrEmptyInput), errors.Is(err, ErrInputTooLarge):
		p.logger.Debug("rejected input", "op", op, "err", err)
	default:
		p.logger.Error("operation failed", "op", op, "err", err)
	}
	return Result{Success: false, Error: fmt.Sprintf("%s: %v", p.name, err)}
}
