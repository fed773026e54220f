package assistant

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/jotpad/ai"
	"github.com/poiesic/jotpad/ai/mock"
	"github.com/poiesic/jotpad/core"
	"github.com/poiesic/jotpad/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockFactory hands out one MockProvider per provider id and records the credentials it saw.
type mockFactory struct {
	mu          sync.Mutex
	providers   map[core.ProviderID]*mock.MockProvider
	credentials []string
}

func newMockFactory() *mockFactory {
	return &mockFactory{
		providers: map[core.ProviderID]*mock.MockProvider{
			core.ProviderLocal:  mock.NewMockProvider(core.ProviderLocal),
			core.ProviderOpenAI: mock.NewMockProvider(core.ProviderOpenAI),
			core.ProviderClaude: mock.NewMockProvider(core.ProviderClaude),
			core.ProviderGemini: mock.NewMockProvider(core.ProviderGemini),
		},
	}
}

func (f *mockFactory) build(cfg *ai.Config, id core.ProviderID, credential string) ai.Provider {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.credentials = append(f.credentials, credential)
	return f.providers[core.ParseProviderID(string(id))]
}

type stubSource struct {
	settings *core.UserAISettings
	err      error
	delay    chan struct{}
}

func (s *stubSource) FetchSettings(ctx context.Context, userID string) (*core.UserAISettings, error) {
	if s.delay != nil {
		<-s.delay
	}
	return s.settings, s.err
}

func newTestManager(t *testing.T, opts ...Option) (*Manager, *mockFactory) {
	t.Helper()
	f := newMockFactory()
	m, err := NewManager(ai.DefaultConfig(), append([]Option{WithFactory(f.build)}, opts...)...)
	require.NoError(t, err)
	return m, f
}

func TestNewManager_StartsLocal(t *testing.T) {
	m, _ := newTestManager(t)
	assert.Equal(t, core.ProviderLocal, m.ActiveProvider().ID())
	assert.Equal(t, core.ProviderLocal, m.Settings().PreferredAI)
}

func TestNewManager_InvalidConfig(t *testing.T) {
	_, err := NewManager(ai.NewConfig(ai.WithLocalModel("")))
	assert.Error(t, err)

	_, err = NewManager(nil, WithFactory(nil))
	assert.Error(t, err)
}

func TestManager_FallbackOperations(t *testing.T) {
	ctx := context.Background()
	var failures []Failure
	m, f := newTestManager(t, WithObserver(FailureObserverFunc(func(fl Failure) {
		failures = append(failures, fl)
	})))

	// Success passes provider content through.
	out, ok := m.SummarizeWithFallback(ctx, "hello")
	assert.True(t, ok)
	assert.Equal(t, "summarize: hello", out)

	// Failure returns the input unchanged and notifies observers.
	local := f.providers[core.ProviderLocal]
	fail := func(context.Context, string) ai.Result { return ai.Result{Success: false, Error: "offline"} }
	local.SummarizeFunc = fail
	local.RewriteAndFormatFunc = fail
	local.FormatAsBlogPostFunc = fail
	local.SpeechToTaskFunc = fail
	local.ExtractTasksFunc = func(context.Context, string) ai.TasksResult {
		return ai.TasksResult{Success: false, Error: "offline"}
	}

	for _, call := range []func(context.Context, string) (string, bool){
		m.SummarizeWithFallback,
		m.RewriteAndFormatWithFallback,
		m.FormatAsBlogPostWithFallback,
		m.SpeechToTaskWithFallback,
	} {
		out, ok := call(ctx, "original text")
		assert.False(t, ok)
		assert.Equal(t, "original text", out)
	}

	tasks, ok := m.ExtractTasksWithFallback(ctx, "a\nb")
	assert.False(t, ok)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)

	require.Len(t, failures, 5)
	assert.Equal(t, Failure{Operation: ai.OpSummarize, Provider: core.ProviderLocal, Error: "offline"}, failures[0])
	assert.Equal(t, ai.OpExtractTasks, failures[4].Operation)
}

func TestManager_ExtractTasksSuccess(t *testing.T) {
	m, _ := newTestManager(t)

	tasks, ok := m.ExtractTasksWithFallback(context.Background(), "- Buy milk\n- Call Bob")
	assert.True(t, ok)
	assert.Equal(t, []string{"Buy milk", "Call Bob"}, tasks)
}

func TestManager_PanickingProviderIsFailure(t *testing.T) {
	m, f := newTestManager(t)
	f.providers[core.ProviderLocal].SummarizeFunc = func(context.Context, string) ai.Result {
		panic("boom")
	}

	out, ok := m.SummarizeWithFallback(context.Background(), "text")
	assert.False(t, ok)
	assert.Equal(t, "text", out)
}

func TestManager_UpdateUserSettings(t *testing.T) {
	m, f := newTestManager(t)

	m.UpdateUserSettings(&core.UserAISettings{PreferredAI: core.ProviderClaude, ClaudeKey: "sk-c", OpenAIKey: "sk-o"})
	assert.Equal(t, core.ProviderClaude, m.ActiveProvider().ID())
	assert.Equal(t, "sk-c", f.credentials[len(f.credentials)-1])
	assert.Equal(t, "sk-c", m.Settings().ClaudeKey)

	m.UpdateUserSettings(&core.UserAISettings{})
	assert.Equal(t, core.ProviderLocal, m.ActiveProvider().ID())

	m.UpdateUserSettings(&core.UserAISettings{PreferredAI: core.ProviderGemini})
	assert.Equal(t, core.ProviderGemini, m.ActiveProvider().ID())
	assert.Empty(t, f.credentials[len(f.credentials)-1])

	m.UpdateUserSettings(nil)
	assert.Equal(t, core.ProviderLocal, m.ActiveProvider().ID())
}

func TestManager_InFlightCallKeepsItsProvider(t *testing.T) {
	m, f := newTestManager(t)
	started := make(chan struct{})
	release := make(chan struct{})
	f.providers[core.ProviderLocal].SummarizeFunc = func(ctx context.Context, text string) ai.Result {
		close(started)
		<-release
		return ai.Result{Success: true, Content: "from local"}
	}

	done := make(chan string)
	go func() {
		out, _ := m.SummarizeWithFallback(context.Background(), "x")
		done <- out
	}()

	<-started
	m.UpdateUserSettings(&core.UserAISettings{PreferredAI: core.ProviderOpenAI, OpenAIKey: "sk-o"})
	close(release)

	assert.Equal(t, "from local", <-done)
	assert.Equal(t, 0, f.providers[core.ProviderOpenAI].CallCount())

	out, ok := m.SummarizeWithFallback(context.Background(), "y")
	assert.True(t, ok)
	assert.Equal(t, "summarize: y", out)
	assert.Equal(t, 1, f.providers[core.ProviderOpenAI].CallCount())
}

func TestManager_LoadUserSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("applies fetched settings", func(t *testing.T) {
		src := &stubSource{settings: &core.UserAISettings{PreferredAI: core.ProviderOpenAI, OpenAIKey: "sk-o"}}
		m, _ := newTestManager(t, WithSettingsSource(src))

		require.NoError(t, m.LoadUserSettings(ctx, "u1"))
		assert.Equal(t, core.ProviderOpenAI, m.ActiveProvider().ID())
	})

	t.Run("falls back to local on error", func(t *testing.T) {
		src := &stubSource{err: errors.New("network down")}
		m, _ := newTestManager(t, WithSettingsSource(src))
		m.UpdateUserSettings(&core.UserAISettings{PreferredAI: core.ProviderClaude, ClaudeKey: "k"})

		err := m.LoadUserSettings(ctx, "u1")
		assert.Error(t, err)
		assert.Equal(t, core.ProviderLocal, m.ActiveProvider().ID())
	})

	t.Run("without source", func(t *testing.T) {
		m, _ := newTestManager(t)
		assert.ErrorIs(t, m.LoadUserSettings(ctx, "u1"), ErrNoSettingsSource)
		assert.Equal(t, core.ProviderLocal, m.ActiveProvider().ID())
	})
}

func TestManager_HandleAuthChange(t *testing.T) {
	src := &stubSource{settings: &core.UserAISettings{PreferredAI: core.ProviderGemini, GeminiKey: "g"}}
	m, _ := newTestManager(t, WithSettingsSource(src))
	s := session.New()
	s.Subscribe(m.HandleAuthChange)

	s.SignIn("u1")
	m.Wait()
	assert.Equal(t, core.ProviderGemini, m.ActiveProvider().ID())

	s.SignOut()
	m.Wait()
	assert.Equal(t, core.ProviderLocal, m.ActiveProvider().ID())
}

func TestManager_StaleSettingsLoadIsDropped(t *testing.T) {
	src := &stubSource{
		settings: &core.UserAISettings{PreferredAI: core.ProviderOpenAI, OpenAIKey: "sk-o"},
		delay:    make(chan struct{}),
	}
	m, _ := newTestManager(t, WithSettingsSource(src))

	m.HandleAuthChange(session.Change{Previous: "", Current: "u1"})
	m.HandleAuthChange(session.Change{Previous: "u1", Current: ""})
	close(src.delay)
	m.Wait()

	assert.Equal(t, core.ProviderLocal, m.ActiveProvider().ID())
}

func TestManager_SignOutDuringProviderSwapEndsLocal(t *testing.T) {
	src := &stubSource{settings: &core.UserAISettings{PreferredAI: core.ProviderClaude, ClaudeKey: "k"}}
	f := newMockFactory()
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	factory := func(cfg *ai.Config, id core.ProviderID, credential string) ai.Provider {
		if id == core.ProviderClaude {
			once.Do(func() { close(entered) })
			<-release
		}
		return f.build(cfg, id, credential)
	}
	m, err := NewManager(ai.DefaultConfig(), WithFactory(factory), WithSettingsSource(src))
	require.NoError(t, err)

	m.HandleAuthChange(session.Change{Previous: "", Current: "u1"})
	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("settings were never applied")
	}

	signedOut := make(chan struct{})
	go func() {
		defer close(signedOut)
		m.HandleAuthChange(session.Change{Previous: "u1", Current: ""})
	}()

	select {
	case <-signedOut:
		t.Fatal("sign-out did not wait for the provider swap")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-signedOut
	m.Wait()

	assert.Equal(t, core.ProviderLocal, m.ActiveProvider().ID())
}

func TestManager_AddObserver(t *testing.T) {
	m, f := newTestManager(t)
	f.providers[core.ProviderLocal].SummarizeFunc = func(context.Context, string) ai.Result {
		return ai.Result{Success: false, Error: "x"}
	}

	got := make(chan Failure, 1)
	m.AddObserver(FailureObserverFunc(func(fl Failure) { got <- fl }))
	m.AddObserver(nil)

	m.SummarizeWithFallback(context.Background(), "t")
	select {
	case fl := <-got:
		assert.Equal(t, ai.OpSummarize, fl.Operation)
	case <-time.After(time.Second):
		t.Fatal("observer not notified")
	}
}
