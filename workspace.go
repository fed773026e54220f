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


// Package jotpad wires the jotpad components into a Workspace: the local
// store, the session, the AI manager and one hybrid store per collection.
package jotpad

import (
	"context"
	"log/slog"

	"github.com/poiesic/jotpad/ai"
	"github.com/poiesic/jotpad/assistant"
	"github.com/poiesic/jotpad/core"
	"github.com/poiesic/jotpad/hybrid"
	"github.com/poiesic/jotpad/migration"
	"github.com/poiesic/jotpad/remote"
	"github.com/poiesic/jotpad/session"
	"github.com/poiesic/jotpad/storage"
	"github.com/poiesic/jotpad/storage/badger"
)

type Workspace struct {
	local    storage.LocalStore
	session  *session.Session
	client   *remote.Client
	manager  *assistant.Manager
	migrator *migration.Coordinator
	tasks    *hybrid.Store[core.TaskItem]
	notes    *hybrid.Store[core.NoteItem]
	blogs    *hybrid.Store[core.BlogItem]
	cancels  []func()
	logger   *slog.Logger
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*workspaceOptions)

type workspaceOptions struct {
	aiConfig         *ai.Config
	serverURL        string
	remoteOptions    []remote.Option
	migrationOptions []migration.Option
	managerOptions   []assistant.Option
	localStore       storage.LocalStore
	logger           *slog.Logger
}

// WithAIConfig sets the AI configuration. Default is ai.DefaultConfig().
func WithAIConfig(cfg *ai.Config) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.aiConfig = cfg
	}
}

// WithServer connects the workspace to a jotpad server.
// Without it the workspace stays local even after SignIn.
func WithServer(baseURL string, opts ...remote.Option) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.serverURL = baseURL
		o.remoteOptions = append(o.remoteOptions, opts...)
	}
}

// WithMigrationOptions passes options to the migration coordinator.
func WithMigrationOptions(opts ...migration.Option) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.migrationOptions = append(o.migrationOptions, opts...)
	}
}

// WithManagerOptions passes options to the AI manager.
func WithManagerOptions(opts ...assistant.Option) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.managerOptions = append(o.managerOptions, opts...)
	}
}

// WithLocalStore uses store instead of opening one under the data directory.
// The workspace takes ownership and closes it.
func WithLocalStore(store storage.LocalStore) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.localStore = store
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.logger = logger
	}
}

// NewWorkspace opens the local store in dataDir and builds every component.
func NewWorkspace(dataDir string, opts ...WorkspaceOption) (*Workspace, error) {
	options := &workspaceOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	local := options.localStore
	if local == nil {
		var err error
		local, err = badger.NewLocalStore(dataDir)
		if err != nil {
			return nil, err
		}
	}

	w := &Workspace{
		local:   local,
		session: session.New(),
		logger:  options.logger.With("component", "workspace"),
	}

	if err := w.init(options); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

func (w *Workspace) init(options *workspaceOptions) error {
	var remoteStore hybrid.Remote
	managerOpts := []assistant.Option{assistant.WithLogger(options.logger)}

	if options.serverURL != "" {
		client, err := remote.New(options.serverURL, append([]remote.Option{remote.WithLogger(options.logger)}, options.remoteOptions...)...)
		if err != nil {
			return err
		}
		w.client = client
		remoteStore = client
		managerOpts = append(managerOpts, assistant.WithSettingsSource(client))

		migrator, err := migration.NewCoordinator(w.local, client,
			append([]migration.Option{migration.WithLogger(options.logger)}, options.migrationOptions...)...)
		if err != nil {
			return err
		}
		w.migrator = migrator
	}

	manager, err := assistant.NewManager(options.aiConfig, append(managerOpts, options.managerOptions...)...)
	if err != nil {
		return err
	}
	w.manager = manager

	storeOpts := []hybrid.Option{hybrid.WithLogger(options.logger)}
	if w.tasks, err = hybrid.New[core.TaskItem](core.KindTasks, nil, w.local, remoteStore, w.session, storeOpts...); err != nil {
		return err
	}
	if w.notes, err = hybrid.New[core.NoteItem](core.KindNotes, nil, w.local, remoteStore, w.session, storeOpts...); err != nil {
		return err
	}
	if w.blogs, err = hybrid.New[core.BlogItem](core.KindBlogs, nil, w.local, remoteStore, w.session, storeOpts...); err != nil {
		return err
	}

	w.cancels = append(w.cancels,
		w.session.Subscribe(w.manager.HandleAuthChange),
		w.session.Subscribe(w.tasks.HandleAuthChange),
		w.session.Subscribe(w.notes.HandleAuthChange),
		w.session.Subscribe(w.blogs.HandleAuthChange),
	)
	return nil
}

// SignIn migrates anonymous local collections to userID's remote store and
// then switches the session to userID, which starts hydration and the AI
// settings load. Migration runs first so the first remote read includes it.
// Without a server only the session changes and the report is nil.
func (w *Workspace) SignIn(ctx context.Context, userID string) (migration.Report, error) {
	if userID == "" {
		return nil, migration.ErrNoUser
	}

	var report migration.Report
	if w.migrator != nil {
		if _, signedIn := w.session.CurrentUserID(); !signedIn {
			var err error
			report, err = w.migrator.Run(ctx, userID)
			if err != nil {
				return nil, err
			}
			if failed := report.Err(); failed != nil {
				w.logger.Warn("some collections were not migrated", "err", failed)
			}
		}
	}

	w.session.SignIn(userID)
	return report, nil
}

// SignOut returns the workspace to local collections and the local AI provider.
func (w *Workspace) SignOut() {
	w.session.SignOut()
}

// Wait blocks until hydration and settings loads started by SignIn settle.
func (w *Workspace) Wait(ctx context.Context) error {
	for _, wait := range []func(context.Context) error{w.tasks.Wait, w.notes.Wait, w.blogs.Wait} {
		if err := wait(ctx); err != nil {
			return err
		}
	}
	w.manager.Wait()
	return nil
}

// Close waits for background work and closes the local store.
func (w *Workspace) Close() error {
	for _, cancel := range w.cancels {
		cancel()
	}
	if w.manager != nil {
		w.manager.Wait()
	}
	if w.migrator != nil {
		w.migrator.Release()
	}
	if w.tasks != nil {
		w.tasks.Close()
	}
	if w.notes != nil {
		w.notes.Close()
	}
	if w.blogs != nil {
		w.blogs.Close()
	}
	if err := w.local.Close(); err != nil {
		w.logger.Error("error closing local store", "err", err)
		return err
	}
	return nil
}

func (w *Workspace) Session() *session.Session {
	return w.session
}

func (w *Workspace) Manager() *assistant.Manager {
	return w.manager
}

// Client returns the server client, or nil when no server is configured.
func (w *Workspace) Client() *remote.Client {
	return w.client
}

func (w *Workspace) Tasks() *hybrid.Store[core.TaskItem] {
	return w.tasks
}

func (w *Workspace) Notes() *hybrid.Store[core.NoteItem] {
	return w.notes
}

func (w *Workspace) Blogs() *hybrid.Store[core.BlogItem] {
	return w.blogs
}

// SaveSettings stores settings for the signed-in user and applies them.
// Without a signed-in user they apply to this process only.
func (w *Workspace) SaveSettings(ctx context.Context, settings *core.UserAISettings) error {
	userID, ok := w.session.CurrentUserID()
	if !ok || w.client == nil {
		w.manager.UpdateUserSettings(settings)
		return nil
	}
	if err := w.client.SaveSettings(ctx, userID, settings); err != nil {
		return err
	}
	w.manager.UpdateUserSettings(settings)
	return nil
}
