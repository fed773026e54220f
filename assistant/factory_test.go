package assistant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/poiesic/jotpad/ai"
	"github.com/poiesic/jotpad/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestNewProvider_Selection(t *testing.T) {
	cfg := ai.DefaultConfig()

	tests := []struct {
		name       string
		id         core.ProviderID
		credential string
		wantID     core.ProviderID
	}{
		{"local", core.ProviderLocal, "", core.ProviderLocal},
		{"local ignores credential", core.ProviderLocal, "sk-x", core.ProviderLocal},
		{"unknown resolves to local", core.ProviderID("mistral"), "sk-x", core.ProviderLocal},
		{"empty resolves to local", core.ProviderID(""), "", core.ProviderLocal},
		{"openai", core.ProviderOpenAI, "sk-o", core.ProviderOpenAI},
		{"claude", core.ProviderClaude, "sk-c", core.ProviderClaude},
		{"gemini", core.ProviderGemini, "g-k", core.ProviderGemini},
		{"openai without key", core.ProviderOpenAI, "", core.ProviderOpenAI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProvider(cfg, tt.id, tt.credential)
			require.NotNil(t, p)
			assert.Equal(t, tt.wantID, p.ID())
		})
	}
}

func TestNewProvider_NilConfig(t *testing.T) {
	p := NewProvider(nil, core.ProviderLocal, "")
	require.NotNil(t, p)
	assert.Equal(t, core.ProviderLocal, p.ID())
}

func TestNewProvider_DoesNotMutateConfig(t *testing.T) {
	cfg := ai.NewConfig(ai.WithLocalHost("http://box:11434"))
	NewProvider(cfg, core.ProviderLocal, "")
	assert.Equal(t, "http://box:11434", cfg.LocalHost)
}

func TestNewProvider_UnconfiguredVendorMakesNoCalls(t *testing.T) {
	srv, hits := countingServer(t)
	cfg := ai.NewConfig(
		ai.WithOpenAIBaseURL(srv.URL+"/v1"),
		ai.WithAnthropicBaseURL(srv.URL),
		ai.WithAnthropicMaxRetries(0),
	)
	ctx := context.Background()

	for _, id := range []core.ProviderID{core.ProviderOpenAI, core.ProviderClaude, core.ProviderGemini} {
		p := NewProvider(cfg, id, "")
		res := p.Summarize(ctx, "text")
		assert.False(t, res.Success)
		assert.Contains(t, res.Error, ai.ErrMissingCredential.Error())

		tasks := p.ExtractTasks(ctx, "text")
		assert.False(t, tasks.Success)
		assert.Empty(t, tasks.Tasks)
	}

	assert.Equal(t, int32(0), hits.Load())
}

func TestNewProvider_ConfiguredVendorUsesBackend(t *testing.T) {
	srv, hits := countingServer(t)
	cfg := ai.NewConfig(ai.WithOpenAIBaseURL(srv.URL + "/v1"))

	p := NewProvider(cfg, core.ProviderOpenAI, "sk-o")
	res := p.Summarize(context.Background(), "text")
	assert.False(t, res.Success)
	assert.GreaterOrEqual(t, hits.Load(), int32(1))
}

func TestNewProvider_InvalidConfigYieldsFailingProvider(t *testing.T) {
	cfg := ai.NewConfig(ai.WithOpenAIModel(""))

	p := NewProvider(cfg, core.ProviderOpenAI, "sk-o")
	require.NotNil(t, p)
	assert.Equal(t, core.ProviderOpenAI, p.ID())

	res := p.Summarize(context.Background(), "text")
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "OpenAIModel is required")
}
