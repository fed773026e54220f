package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/jotpad/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/", WithRetry(3, time.Millisecond))
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	_, err := New("  ")
	assert.ErrorIs(t, err, ErrBaseURLRequired)

	_, err = New("http://x", WithRetry(0, time.Second))
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)

	_, err = New("http://x", WithHTTPClient(nil))
	assert.Error(t, err)
}

func TestFetchCollection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/user/tasks", r.URL.Path)
		assert.Equal(t, "u1", r.Header.Get(UserHeader))
		_, _ = w.Write([]byte(`{"data":[{"id":"a","title":"x","completed":false,"createdAt":1}]}`))
	})

	data, err := c.FetchCollection(context.Background(), "u1", core.KindTasks)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a","title":"x","completed":false,"createdAt":1}]`, string(data))
}

func TestFetchCollection_MissingDataIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	data, err := c.FetchCollection(context.Background(), "u1", core.KindNotes)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFetchCollection_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	data, err := c.FetchCollection(context.Background(), "u1", core.KindBlogs)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchCollection_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
	})

	_, err := c.FetchCollection(context.Background(), "u1", core.KindTasks)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "Unauthorized", se.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestPosts(t *testing.T) {
	tests := []struct {
		name string
		path string
		call func(c *Client, data []byte) error
	}{
		{
			name: "replace",
			path: "/api/user/notes",
			call: func(c *Client, data []byte) error {
				return c.ReplaceCollection(context.Background(), "u1", core.KindNotes, data)
			},
		},
		{
			name: "migrate",
			path: "/api/user/notes/migrate",
			call: func(c *Client, data []byte) error {
				return c.MigrateCollection(context.Background(), "u1", core.KindNotes, data)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body []byte
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, tt.path, r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				body, _ = io.ReadAll(r.Body)
				_, _ = w.Write([]byte(`{"success":true}`))
			})

			require.NoError(t, tt.call(c, []byte(`[{"id":"n1","title":"","contentHtml":"<p/>","updatedAt":3}]`)))
			assert.JSONEq(t, `{"data":[{"id":"n1","title":"","contentHtml":"<p/>","updatedAt":3}]}`, string(body))
		})
	}
}

func TestPosts_NotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to migrate data"}`))
	})

	err := c.MigrateCollection(context.Background(), "u1", core.KindTasks, []byte(`[]`))
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.True(t, se.Temporary())
	assert.Equal(t, int32(1), calls.Load())

	err = c.ReplaceCollection(context.Background(), "u1", core.KindTasks, nil)
	assert.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRequiresUser(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := c.FetchCollection(context.Background(), "", core.KindTasks)
	assert.ErrorIs(t, err, ErrNoUser)
	assert.ErrorIs(t, c.ReplaceCollection(context.Background(), "", core.KindTasks, nil), ErrNoUser)
	assert.Equal(t, int32(0), calls.Load())
}

func TestSettings(t *testing.T) {
	var stored core.UserAISettings
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/settings", r.URL.Path)
		if r.Method == http.MethodPost {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&stored))
		}
		_ = json.NewEncoder(w).Encode(stored)
	})
	ctx := context.Background()

	require.NoError(t, c.SaveSettings(ctx, "u1", &core.UserAISettings{PreferredAI: core.ProviderClaude, ClaudeKey: "sk-c"}))
	assert.Equal(t, core.ProviderClaude, stored.PreferredAI)

	got, err := c.FetchSettings(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, core.ProviderClaude, got.PreferredAI)
	assert.Equal(t, "sk-c", got.ClaudeKey)
}
