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


package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/poiesic/jotpad/ai"
	"github.com/poiesic/jotpad/ai/local"
	"github.com/poiesic/jotpad/core"
	"github.com/poiesic/jotpad/session"
)

// SettingsSource fetches a user's stored AI settings.
type SettingsSource interface {
	FetchSettings(ctx context.Context, userID string) (*core.UserAISettings, error)
}

// Option configures a Manager.
type Option func(*Manager) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger.With("component", "ai-manager")
		return nil
	}
}

// WithSettingsSource sets where LoadUserSettings fetches settings from.
func WithSettingsSource(source SettingsSource) Option {
	return func(m *Manager) error {
		m.source = source
		return nil
	}
}

// WithObserver registers a failure observer.
func WithObserver(observer FailureObserver) Option {
	return func(m *Manager) error {
		if observer != nil {
			m.observers = append(m.observers, observer)
		}
		return nil
	}
}

// WithFactory replaces the provider factory.
// Default is NewProvider.
func WithFactory(factory Factory) Option {
	return func(m *Manager) error {
		if factory == nil {
			return fmt.Errorf("factory cannot be nil")
		}
		m.factory = factory
		return nil
	}
}

// active pairs the provider with the settings it was built from so both swap together.
type active struct {
	provider ai.Provider
	settings *core.UserAISettings
}

// Manager owns the active provider and applies the fallback policy.
// It is safe for concurrent use.
type Manager struct {
	cfg     *ai.Config
	factory Factory
	source  SettingsSource
	logger  *slog.Logger

	current atomic.Pointer[active]

	obsMu     sync.RWMutex
	observers []FailureObserver

	// applyMu orders provider swaps against auth changes.
	applyMu sync.Mutex
	authGen uint64
	pending sync.WaitGroup
}

// NewManager creates a Manager whose active provider is the local one.
func NewManager(cfg *ai.Config, opts ...Option) (*Manager, error) {
	if cfg == nil {
		cfg = ai.DefaultConfig()
	}
	c := *cfg
	if err := c.Validate(); err != nil {
		return nil, err
	}

	m := &Manager{
		cfg:     &c,
		factory: NewProvider,
		logger:  slog.Default().With("component", "ai-manager"),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	if len(m.observers) == 0 {
		m.observers = []FailureObserver{noopObserver{}}
	}

	m.apply(core.DefaultSettings())
	return m, nil
}

// AddObserver registers another failure observer.
func (m *Manager) AddObserver(observer FailureObserver) {
	if observer == nil {
		return
	}
	m.obsMu.Lock()
	defer m.obsMu.Unlock()
	m.observers = append(m.observers, observer)
}

// ActiveProvider returns the provider new operations are issued to.
func (m *Manager) ActiveProvider() ai.Provider {
	return m.current.Load().provider
}

// Settings returns a copy of the settings the active provider was built from.
func (m *Manager) Settings() core.UserAISettings {
	return *m.current.Load().settings
}

// UpdateUserSettings rebuilds the active provider from settings and swaps it in.
// Nil settings or an empty preferred provider select the local provider.
// Operations already in flight finish on the provider they started with.
func (m *Manager) UpdateUserSettings(settings *core.UserAISettings) {
	m.applyMu.Lock()
	defer m.applyMu.Unlock()
	m.apply(settings)
}

// ResetToLocal selects the local provider, as for an anonymous session.
func (m *Manager) ResetToLocal() {
	m.UpdateUserSettings(nil)
}

// applyIfCurrent applies settings unless an auth change happened after gen.
func (m *Manager) applyIfCurrent(gen uint64, settings *core.UserAISettings) bool {
	m.applyMu.Lock()
	defer m.applyMu.Unlock()
	if m.authGen != gen {
		return false
	}
	m.apply(settings)
	return true
}

func (m *Manager) generation() uint64 {
	m.applyMu.Lock()
	defer m.applyMu.Unlock()
	return m.authGen
}

// apply must be called with m.applyMu held.
func (m *Manager) apply(settings *core.UserAISettings) {
	s := settings.Normalized()
	credential := s.CredentialFor(s.PreferredAI)
	provider := m.factory(m.cfg, s.PreferredAI, credential)
	m.current.Store(&active{provider: provider, settings: s})

	m.logger.Info("active AI provider set",
		"provider", string(provider.ID()),
		"name", provider.Name(),
		"credential", ai.Fingerprint(credential))
}

// LoadUserSettings fetches userID's settings and applies them.
// On any error the local provider is selected and the error returned.
func (m *Manager) LoadUserSettings(ctx context.Context, userID string) error {
	return m.loadUserSettings(ctx, userID, m.generation())
}

func (m *Manager) loadUserSettings(ctx context.Context, userID string, gen uint64) error {
	if m.source == nil {
		m.applyIfCurrent(gen, nil)
		return ErrNoSettingsSource
	}

	settings, err := m.source.FetchSettings(ctx, userID)
	if err != nil {
		if !m.applyIfCurrent(gen, nil) {
			return ErrStaleSettings
		}
		m.logger.Warn("failed to load user AI settings, using local provider", "user", userID, "err", err)
		return err
	}
	if !m.applyIfCurrent(gen, settings) {
		return ErrStaleSettings
	}
	return nil
}

// HandleAuthChange loads the new user's settings on sign-in and resets to the
// local provider on sign-out. Loading happens in the background; Wait blocks
// until it finishes. Results of a load overtaken by a later change are dropped.
func (m *Manager) HandleAuthChange(change session.Change) {
	m.applyMu.Lock()
	m.authGen++
	gen := m.authGen
	if change.Current == "" {
		m.apply(nil)
		m.applyMu.Unlock()
		return
	}
	m.applyMu.Unlock()

	m.pending.Add(1)
	go func() {
		defer m.pending.Done()
		if err := m.loadUserSettings(context.Background(), change.Current, gen); err != nil {
			m.logger.Debug("settings load finished with error", "err", err)
		}
	}()
}

// Wait blocks until background settings loads have finished.
func (m *Manager) Wait() {
	m.pending.Wait()
}

// LocalAvailable probes the local model server.
func (m *Manager) LocalAvailable(ctx context.Context) bool {
	return local.CheckAvailability(ctx, m.cfg.LocalHost, m.cfg.ProbeTimeout)
}

// SummarizeWithFallback returns the summary, or text unchanged and false on failure.
func (m *Manager) SummarizeWithFallback(ctx context.Context, text string) (string, bool) {
	return m.textOp(ai.OpSummarize, text, func(p ai.Provider) ai.Result {
		return p.Summarize(ctx, text)
	})
}

// RewriteAndFormatWithFallback returns the rewrite, or text unchanged and false on failure.
func (m *Manager) RewriteAndFormatWithFallback(ctx context.Context, text string) (string, bool) {
	return m.textOp(ai.OpRewriteAndFormat, text, func(p ai.Provider) ai.Result {
		return p.RewriteAndFormat(ctx, text)
	})
}

// FormatAsBlogPostWithFallback returns the blog post, or text unchanged and false on failure.
func (m *Manager) FormatAsBlogPostWithFallback(ctx context.Context, text string) (string, bool) {
	return m.textOp(ai.OpFormatAsBlogPost, text, func(p ai.Provider) ai.Result {
		return p.FormatAsBlogPost(ctx, text)
	})
}

// SpeechToTaskWithFallback returns the task title, or text unchanged and false on failure.
func (m *Manager) SpeechToTaskWithFallback(ctx context.Context, text string) (string, bool) {
	return m.textOp(ai.OpSpeechToTask, text, func(p ai.Provider) ai.Result {
		return p.SpeechToTask(ctx, text)
	})
}

// ExtractTasksWithFallback returns the extracted tasks, or an empty slice and false on failure.
func (m *Manager) ExtractTasksWithFallback(ctx context.Context, text string) ([]string, bool) {
	p := m.ActiveProvider()
	res := safeTasks(p, func() ai.TasksResult { return p.ExtractTasks(ctx, text) })
	if !res.Success {
		m.report(ai.OpExtractTasks, p, res.Error)
		return []string{}, false
	}
	if res.Tasks == nil {
		return []string{}, true
	}
	return res.Tasks, true
}

func (m *Manager) textOp(op ai.Operation, text string, call func(ai.Provider) ai.Result) (string, bool) {
	// Load once: a concurrent switch must not retarget this call.
	p := m.ActiveProvider()
	res := safeResult(p, func() ai.Result { return call(p) })
	if !res.Success {
		m.report(op, p, res.Error)
		return text, false
	}
	return res.Content, true
}

func (m *Manager) report(op ai.Operation, p ai.Provider, msg string) {
	f := Failure{Operation: op, Provider: p.ID(), Error: msg}
	m.logger.Warn("AI operation failed, returning fallback", "op", op, "provider", string(f.Provider), "err", msg)

	m.obsMu.RLock()
	observers := m.observers
	m.obsMu.RUnlock()
	for _, o := range observers {
		o.OnFailure(f)
	}
}

func safeResult(p ai.Provider, fn func() ai.Result) (res ai.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = ai.Result{Success: false, Error: fmt.Sprintf("%s: panic: %v", p.Name(), r)}
		}
	}()
	return fn()
}

func safeTasks(p ai.Provider, fn func() ai.TasksResult) (res ai.TasksResult) {
	defer func() {
		if r := recover(); r != nil {
			res = ai.TasksResult{Success: false, Error: fmt.Sprintf("%s: panic: %v", p.Name(), r)}
		}
	}()
	return fn()
}
