package local

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/poiesic/jotpad/ai"
	"github.com/poiesic/jotpad/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOllamaServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[{"name":"llama2:latest"}]}`))
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-local",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   body.Model,
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": reply},
					"finish_reason": "stop",
				},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewProvider(t *testing.T) {
	srv := newOllamaServer(t, "Buy milk")

	p, err := NewProvider(ai.NewConfig(ai.WithLocalHost(srv.URL)))
	require.NoError(t, err)
	assert.Equal(t, core.ProviderLocal, p.ID())
	assert.Equal(t, Name, p.Name())

	res := p.SpeechToTask(context.Background(), "I need to buy milk")
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "Buy milk", res.Content)
}

func TestNewProvider_ServerDown(t *testing.T) {
	srv := newOllamaServer(t, "unused")
	url := srv.URL
	srv.Close()

	p, err := NewProvider(ai.NewConfig(ai.WithLocalHost(url)))
	require.NoError(t, err)

	res := p.Summarize(context.Background(), "text")
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestCheckAvailability(t *testing.T) {
	t.Run("server up", func(t *testing.T) {
		srv := newOllamaServer(t, "")
		assert.True(t, CheckAvailability(context.Background(), srv.URL, time.Second))
		assert.True(t, CheckAvailability(context.Background(), srv.URL+"/v1", time.Second))
	})

	t.Run("server down", func(t *testing.T) {
		srv := newOllamaServer(t, "")
		url := srv.URL
		srv.Close()
		assert.False(t, CheckAvailability(context.Background(), url, time.Second))
	})

	t.Run("non-200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		err := Ping(context.Background(), srv.URL, time.Second)
		assert.ErrorIs(t, err, ai.ErrBackendUnavailable)
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		start := time.Now()
		assert.False(t, CheckAvailability(context.Background(), srv.URL, 50*time.Millisecond))
		assert.Less(t, time.Since(start), 2*time.Second)
	})
}
