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


// Package remote is the HTTP client for the per-user endpoints served by package server.
//
// Reads are retried with exponential backoff. Writes are sent once: a replace
// is cheap to redo by the caller, and a migrate append is not idempotent.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/poiesic/jotpad/core"
)

// UserHeader carries the authenticated user id on every request.
const UserHeader = "X-User-ID"

// Option configures a Client.
type Option func(*Client) error

// WithHTTPClient sets the HTTP client used for requests.
// Default is a client with a 30s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client cannot be nil")
		}
		c.http = hc
		return nil
	}
}

// WithRetry sets how GET requests are retried.
// Default is 3 attempts starting at 200ms.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(c *Client) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		c.maxAttempts = maxAttempts
		c.baseDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger.With("component", "remote")
		return nil
	}
}

// Client talks to the jotpad HTTP API.
type Client struct {
	baseURL     string
	http        *http.Client
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	c := &Client{
		baseURL:     baseURL,
		http:        &http.Client{Timeout: 30 * time.Second},
		maxAttempts: 3,
		baseDelay:   200 * time.Millisecond,
		logger:      slog.Default().With("component", "remote"),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// FetchCollection returns the raw JSON array stored for the user's collection.
func (c *Client) FetchCollection(ctx context.Context, userID string, kind core.Kind) ([]byte, error) {
	var env dataEnvelope
	if err := c.get(ctx, userID, collectionPath(kind), &env); err != nil {
		return nil, err
	}
	if len(env.Data) == 0 {
		return []byte("[]"), nil
	}
	return env.Data, nil
}

// ReplaceCollection overwrites the user's collection with data, a JSON array.
func (c *Client) ReplaceCollection(ctx context.Context, userID string, kind core.Kind, data []byte) error {
	return c.postData(ctx, userID, collectionPath(kind), data)
}

// MigrateCollection appends data, a JSON array, to the user's collection.
func (c *Client) MigrateCollection(ctx context.Context, userID string, kind core.Kind, data []byte) error {
	return c.postData(ctx, userID, collectionPath(kind)+"/migrate", data)
}

// FetchSettings returns the user's AI settings.
func (c *Client) FetchSettings(ctx context.Context, userID string) (*core.UserAISettings, error) {
	var settings core.UserAISettings
	if err := c.get(ctx, userID, "/api/user/settings", &settings); err != nil {
		return nil, err
	}
	return settings.Normalized(), nil
}

// SaveSettings stores the user's AI settings.
func (c *Client) SaveSettings(ctx context.Context, userID string, settings *core.UserAISettings) error {
	body, err := json.Marshal(settings.Normalized())
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, userID, "/api/user/settings", body, nil)
}

func collectionPath(kind core.Kind) string {
	return "/api/user/" + url.PathEscape(string(kind))
}

func (c *Client) get(ctx context.Context, userID, path string, out any) error {
	return retryWithBackoff(ctx, c.logger, func() error {
		err := c.do(ctx, http.MethodGet, userID, path, nil, out)
		var se *StatusError
		if errors.As(err, &se) && !se.Temporary() {
			return permanent(err)
		}
		if errors.Is(err, ErrNoUser) {
			return permanent(err)
		}
		return err
	}, c.maxAttempts, c.baseDelay)
}

func (c *Client) postData(ctx context.Context, userID, path string, data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("[]")
	}
	body, err := json.Marshal(dataEnvelope{Data: json.RawMessage(data)})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, userID, path, body, nil)
}

func (c *Client) do(ctx context.Context, method, userID, path string, body []byte, out any) error {
	if userID == "" {
		return ErrNoUser
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set(UserHeader, userID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env errorEnvelope
		_ = json.Unmarshal(payload, &env)
		return &StatusError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
