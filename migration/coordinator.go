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


package migration

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/jotpad/core"
	"github.com/poiesic/jotpad/session"
	"github.com/poiesic/jotpad/storage"
)

// UI preference keys removed after a run when WithUIStateCleanup is enabled.
var uiStateKeys = []string{
	"notes-closed",
	"notes-sidebar-open",
	"blogs-sidebar-open",
	"task-filter",
}

// Remote appends a JSON array to a user's collection.
type Remote interface {
	MigrateCollection(ctx context.Context, userID string, kind core.Kind, data []byte) error
}

// Coordinator drains local collections into the remote store.
type Coordinator struct {
	local     storage.LocalStore
	remote    Remote
	pool      *ants.Pool
	uiCleanup bool
	logger    *slog.Logger

	running atomic.Bool
	wg      sync.WaitGroup

	mu   sync.Mutex
	last Report
}

// Option configures a Coordinator.
type Option func(*Coordinator) error

// WithPoolSize sets how many kinds are migrated concurrently.
// Default is one worker per kind.
func WithPoolSize(size int) Option {
	return func(c *Coordinator) error {
		if size < 1 {
			size = 1
		}
		if c.pool != nil {
			c.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		c.pool = pool
		return nil
	}
}

// WithUIStateCleanup removes UI preference keys after every run.
// Default is false.
func WithUIStateCleanup(enabled bool) Option {
	return func(c *Coordinator) error {
		c.uiCleanup = enabled
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger.With("component", "migration")
		return nil
	}
}

// NewCoordinator creates a Coordinator. Call Release when done.
func NewCoordinator(local storage.LocalStore, remote Remote, opts ...Option) (*Coordinator, error) {
	if local == nil {
		return nil, ErrLocalStoreRequired
	}
	if remote == nil {
		return nil, ErrRemoteRequired
	}

	pool, err := ants.NewPool(len(core.Kinds))
	if err != nil {
		return nil, err
	}

	c := &Coordinator{
		local:  local,
		remote: remote,
		pool:   pool,
		logger: slog.Default().With("component", "migration"),
	}
	for _, opt := range opts {
		if optErr := opt(c); optErr != nil {
			c.Release()
			return nil, optErr
		}
	}
	return c, nil
}

// Running reports whether a run is in flight.
func (c *Coordinator) Running() bool {
	return c.running.Load()
}

// Run migrates every kind for userID.
// Per-kind failures are recorded in the Report and do not fail the run.
func (c *Coordinator) Run(ctx context.Context, userID string) (Report, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	if !c.running.CompareAndSwap(false, true) {
		return nil, ErrMigrationInProgress
	}
	defer c.running.Store(false)

	report := make(Report, len(core.Kinds))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, kind := range core.Kinds {
		wg.Add(1)
		err := c.pool.Submit(func() {
			defer wg.Done()
			res := c.migrateKind(ctx, userID, kind)
			mu.Lock()
			report[kind] = res
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			report[kind] = Result{Outcome: Failed, Err: fmt.Errorf("submit: %w", err)}
			mu.Unlock()
		}
	}
	wg.Wait()

	if c.uiCleanup {
		if err := c.local.Remove(uiStateKeys...); err != nil {
			c.logger.Warn("failed to clear UI state", "err", err)
		}
	}

	c.mu.Lock()
	c.last = report
	c.mu.Unlock()

	c.logger.Info("migration finished", "user", userID, "items", report.Migrated(), "failed", report.Err() != nil)
	return report, nil
}

func (c *Coordinator) migrateKind(ctx context.Context, userID string, kind core.Kind) Result {
	key := string(kind)
	data, found, err := c.local.Get(key)
	if err != nil {
		c.logger.Error("failed to read local collection", "kind", key, "err", err)
		return Result{Outcome: Failed, Err: err}
	}
	if !found || len(bytes.TrimSpace(data)) == 0 {
		return Result{Outcome: Skipped}
	}

	records, err := storage.RecordsFromJSON(kind, data)
	if err != nil {
		c.logger.Warn("local collection rejected", "kind", key, "err", err)
		return Result{Outcome: Failed, Err: err}
	}
	if len(records) == 0 {
		return Result{Outcome: Skipped}
	}

	payload, err := storage.RecordsToJSON(records)
	if err != nil {
		return Result{Outcome: Failed, Err: err}
	}

	if err := c.remote.MigrateCollection(ctx, userID, kind, payload); err != nil {
		c.logger.Warn("remote migrate failed, keeping local data", "kind", key, "count", len(records), "err", err)
		return Result{Outcome: Failed, Err: err}
	}

	if err := c.local.Remove(key, kind.SelectionKey()); err != nil {
		// The remote copy is committed; a leftover local key is migrated again next time.
		c.logger.Error("failed to remove migrated local collection", "kind", key, "err", err)
		return Result{Outcome: Migrated, Count: len(records), Err: err}
	}

	c.logger.Debug("migrated collection", "kind", key, "count", len(records))
	return Result{Outcome: Migrated, Count: len(records)}
}

// HandleAuthChange starts a run in the background when a user signs in.
func (c *Coordinator) HandleAuthChange(change session.Change) {
	if !change.SignedIn() {
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if _, err := c.Run(context.Background(), change.Current); err != nil {
			c.logger.Warn("migration not started", "err", err)
		}
	}()
}

// Wait blocks until background runs started by HandleAuthChange return.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// LastReport returns the report of the most recent completed run, or nil.
func (c *Coordinator) LastReport() Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Release waits for background runs and frees the worker pool.
func (c *Coordinator) Release() {
	c.wg.Wait()
	if c.pool != nil {
		c.pool.Release()
	}
}
