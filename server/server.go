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


package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/poiesic/jotpad/storage"
)

// UserHeader carries the authenticated user id.
const UserHeader = "X-User-ID"

const defaultMaxBodyBytes = 10 << 20

type ctxKey struct{}

// Server serves the jotpad HTTP API.
type Server struct {
	collections  storage.CollectionRepository
	settings     storage.SettingsRepository
	maxBodyBytes int64
	logger       *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "server")
		return nil
	}
}

// WithMaxBodyBytes limits request bodies. Default is 10 MiB.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) error {
		if n <= 0 {
			return fmt.Errorf("max body bytes must be positive, got %d", n)
		}
		s.maxBodyBytes = n
		return nil
	}
}

// New creates a Server over the given repositories.
func New(collections storage.CollectionRepository, settings storage.SettingsRepository, opts ...Option) (*Server, error) {
	if collections == nil {
		return nil, ErrCollectionsRequired
	}
	if settings == nil {
		return nil, ErrSettingsRequired
	}

	s := &Server{
		collections:  collections,
		settings:     settings,
		maxBodyBytes: defaultMaxBodyBytes,
		logger:       slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Handler returns the routed API handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	// Literal segments take precedence over {kind}.
	mux.Handle("GET /api/user/settings", s.requireUser(s.handleGetSettings))
	mux.Handle("POST /api/user/settings", s.requireUser(s.handlePutSettings))

	mux.Handle("GET /api/user/{kind}", s.requireUser(s.handleList))
	mux.Handle("POST /api/user/{kind}", s.requireUser(s.handleReplace))
	mux.Handle("POST /api/user/{kind}/migrate", s.requireUser(s.handleMigrate))

	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requireUser(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserHeader)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, userID)))
	})
}

func userFrom(r *http.Request) string {
	userID, _ := r.Context().Value(ctxKey{}).(string)
	return userID
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
