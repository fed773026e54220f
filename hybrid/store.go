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


package hybrid

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/poiesic/jotpad/core"
	"github.com/poiesic/jotpad/session"
	"github.com/poiesic/jotpad/storage"
)

// Remote reads and replaces per-user collections as raw JSON arrays.
type Remote interface {
	FetchCollection(ctx context.Context, userID string, kind core.Kind) ([]byte, error)
	ReplaceCollection(ctx context.Context, userID string, kind core.Kind, data []byte) error
}

// Auth reports the signed-in user.
type Auth interface {
	CurrentUserID() (string, bool)
}

type options struct {
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*options)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Store is a collection of one kind backed by local storage when anonymous
// and by the remote store when signed in.
type Store[T core.Item] struct {
	kind   core.Kind
	def    []T
	local  storage.LocalStore
	remote Remote
	auth   Auth
	logger *slog.Logger

	updateMu sync.Mutex

	mu       sync.Mutex
	userID   string
	hydrated bool
	view     []T
	// writeGen counts signed-in writes; a hydration started before a write is dropped.
	writeGen uint64
	// sessionGen changes on every sign-in, sign-out or user switch.
	sessionGen uint64
	loading    chan struct{}
	wg         sync.WaitGroup
}

// New creates a Store for kind. def is returned whenever nothing usable is stored.
// A nil remote keeps the store local even while a user is signed in.
func New[T core.Item](kind core.Kind, def []T, local storage.LocalStore, remote Remote, auth Auth, opts ...Option) (*Store[T], error) {
	if local == nil {
		return nil, ErrLocalStoreRequired
	}
	if auth == nil {
		return nil, ErrAuthRequired
	}
	if _, err := core.ParseKind(string(kind)); err != nil {
		return nil, err
	}

	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	return &Store[T]{
		kind:   kind,
		def:    slices.Clone(def),
		local:  local,
		remote: remote,
		auth:   auth,
		logger: o.logger.With("component", "hybrid", "kind", string(kind)),
	}, nil
}

// Kind returns the collection kind.
func (s *Store[T]) Kind() core.Kind {
	return s.kind
}

func (s *Store[T]) currentUser() (string, bool) {
	if s.remote == nil {
		return "", false
	}
	return s.auth.CurrentUserID()
}

// Read returns the collection for the current auth state.
// Failures are logged and yield the default collection.
func (s *Store[T]) Read(ctx context.Context) []T {
	userID, ok := s.currentUser()
	if !ok {
		return s.readLocal()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureHydratedLocked(ctx, userID)
	return slices.Clone(s.view)
}

// Write stores items for the current auth state.
// Only invalid items and local storage failures are returned; a failed remote
// write is logged and the in-memory view keeps the new items.
func (s *Store[T]) Write(ctx context.Context, items []T) error {
	data, err := storage.EncodeCollection(items)
	if err != nil {
		return err
	}

	userID, ok := s.currentUser()
	if !ok {
		return s.local.Set(string(s.kind), data)
	}

	s.mu.Lock()
	if s.userID != userID {
		s.resetLocked(userID)
	}
	// A write replaces the remote collection, so there is nothing left to hydrate.
	s.hydrated = true
	s.writeGen++
	s.view = slices.Clone(items)
	if s.view == nil {
		s.view = []T{}
	}
	s.mu.Unlock()

	if err := s.remote.ReplaceCollection(ctx, userID, s.kind, data); err != nil {
		s.logger.Warn("remote write failed", "user", userID, "count", len(items), "err", err)
	}
	return nil
}

// Update applies fn to the current collection and writes the result.
// When signed in, fn runs only after the session's hydration has settled so
// the write never replaces the remote collection with the interim view.
// Concurrent Updates on the same Store are serialized.
func (s *Store[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) error {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	if err := s.settle(ctx); err != nil {
		return err
	}
	next, err := fn(s.Read(ctx))
	if err != nil {
		return err
	}
	return s.Write(ctx, next)
}

// Loading reports whether a remote hydration is in flight.
func (s *Store[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading != nil
}

// Wait blocks until the in-flight hydration, if any, has settled.
func (s *Store[T]) Wait(ctx context.Context) error {
	s.mu.Lock()
	ch := s.loading
	s.mu.Unlock()
	if ch == nil {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// settle starts hydration for the signed-in user if needed and waits for it.
func (s *Store[T]) settle(ctx context.Context) error {
	userID, ok := s.currentUser()
	if !ok {
		return nil
	}
	s.mu.Lock()
	s.ensureHydratedLocked(ctx, userID)
	s.mu.Unlock()
	return s.Wait(ctx)
}

// HandleAuthChange starts hydration on sign-in and drops the remote view on sign-out.
func (s *Store[T]) HandleAuthChange(c session.Change) {
	if s.remote == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c.Current == "" {
		s.resetLocked("")
		return
	}
	s.ensureHydratedLocked(context.Background(), c.Current)
}

// Close waits for background hydrations to return.
func (s *Store[T]) Close() {
	s.wg.Wait()
}

func (s *Store[T]) resetLocked(userID string) {
	s.userID = userID
	s.hydrated = false
	s.view = nil
	s.sessionGen++
	if s.loading != nil {
		close(s.loading)
		s.loading = nil
	}
}

// ensureHydratedLocked must be called with s.mu held.
func (s *Store[T]) ensureHydratedLocked(ctx context.Context, userID string) {
	if s.userID != userID {
		s.resetLocked(userID)
	}
	if s.hydrated {
		return
	}

	s.hydrated = true
	s.view = s.cachedLocal()
	done := make(chan struct{})
	s.loading = done

	sessionGen, writeGen := s.sessionGen, s.writeGen
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.hydrate(context.WithoutCancel(ctx), userID, sessionGen, writeGen, done)
	}()
}

func (s *Store[T]) hydrate(ctx context.Context, userID string, sessionGen, writeGen uint64, done chan struct{}) {
	items := s.fetchRemote(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sessionGen != sessionGen {
		// Session changed; resetLocked already released waiters.
		return
	}
	if s.writeGen != writeGen {
		s.logger.Debug("discarding hydration result after write", "user", userID)
	} else {
		s.view = items
	}
	if s.loading == done {
		close(done)
		s.loading = nil
	}
}

func (s *Store[T]) fetchRemote(ctx context.Context, userID string) []T {
	data, err := s.remote.FetchCollection(ctx, userID, s.kind)
	if err != nil {
		s.logger.Warn("remote read failed, using default", "user", userID, "err", err)
		return s.defaultValue()
	}
	items, err := storage.DecodeCollection[T](data)
	if err != nil {
		s.logger.Warn("remote collection rejected, using default", "user", userID, "err", err)
		return s.defaultValue()
	}
	return items
}

func (s *Store[T]) readLocal() []T {
	data, found, err := s.local.Get(string(s.kind))
	if err != nil {
		s.logger.Warn("local read failed, using default", "err", err)
		return s.defaultValue()
	}
	if !found {
		return s.defaultValue()
	}
	items, err := storage.DecodeCollection[T](data)
	if err != nil {
		s.logger.Warn("local collection rejected, using default", "err", err)
		return s.defaultValue()
	}
	return items
}

// cachedLocal is the interim view while hydrating: the local value if it has items.
func (s *Store[T]) cachedLocal() []T {
	items := s.readLocal()
	if len(items) == 0 {
		return s.defaultValue()
	}
	return items
}

func (s *Store[T]) defaultValue() []T {
	if s.def == nil {
		return []T{}
	}
	return slices.Clone(s.def)
}
