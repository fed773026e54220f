package jotpad

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/jotpad/core"
	"github.com/poiesic/jotpad/migration"
	"github.com/poiesic/jotpad/remote"
	"github.com/poiesic/jotpad/server"
	"github.com/poiesic/jotpad/storage/sqlstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := sqlstore.OpenMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	srv, err := server.New(store, store)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestNewWorkspace(t *testing.T) {
	t.Run("create local workspace", func(t *testing.T) {
		w, err := NewWorkspace(filepath.Join(t.TempDir(), "data"))
		require.NoError(t, err)
		defer w.Close()

		assert.NotNil(t, w.Manager())
		assert.NotNil(t, w.Session())
		assert.Nil(t, w.Client())
		assert.Empty(t, w.Tasks().Read(context.Background()))
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0644))

		w, err := NewWorkspace(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, w)
	})

	t.Run("error with invalid server", func(t *testing.T) {
		w, err := NewWorkspace(t.TempDir(), WithServer("http://x", remote.WithRetry(0, 0)))
		assert.ErrorIs(t, err, remote.ErrInvalidMaxAttempts)
		assert.Nil(t, w)
	})
}

func TestWorkspace_LocalTasks(t *testing.T) {
	w, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)
	defer w.Close()
	ctx := context.Background()

	added, err := w.AddTasks(ctx, "Buy milk", "  ", "Call mom")
	require.NoError(t, err)
	require.Len(t, added, 2)

	more, err := w.AddTasks(ctx, "Walk dog")
	require.NoError(t, err)

	tasks := w.Tasks().Read(ctx)
	require.Len(t, tasks, 3)
	assert.Equal(t, "Walk dog", tasks[0].Title, "new tasks go first")

	toggled, err := w.ToggleTask(ctx, more[0].ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	require.NoError(t, w.RenameTask(ctx, added[0].ID, "Buy oat milk"))
	assert.ErrorIs(t, w.RenameTask(ctx, added[0].ID, " "), core.ErrEmptyTitle)

	require.NoError(t, w.DeleteTask(ctx, added[1].ID))
	assert.ErrorIs(t, w.DeleteTask(ctx, "missing"), ErrTaskNotFound)

	_, err = w.ToggleTask(ctx, "missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	tasks = w.Tasks().Read(ctx)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Buy oat milk", tasks[1].Title)
}

func TestWorkspace_SignInWithoutServer(t *testing.T) {
	w, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)
	defer w.Close()
	ctx := context.Background()

	_, err = w.AddTasks(ctx, "Buy milk")
	require.NoError(t, err)

	report, err := w.SignIn(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, report)
	require.NoError(t, w.Wait(waitCtx(t)))

	assert.Len(t, w.Tasks().Read(ctx), 1, "without a server the collections stay local")

	_, err = w.SignIn(ctx, "")
	assert.ErrorIs(t, err, migration.ErrNoUser)
}

func TestWorkspace_SignInMigratesAndHydrates(t *testing.T) {
	api := newTestAPI(t)
	w, err := NewWorkspace(t.TempDir(), WithServer(api.URL, remote.WithRetry(1, time.Millisecond)))
	require.NoError(t, err)
	defer w.Close()
	ctx := context.Background()

	_, err = w.AddTasks(ctx, "Buy milk")
	require.NoError(t, err)

	report, err := w.SignIn(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, migration.Migrated, report[core.KindTasks].Outcome)
	require.NoError(t, w.Wait(waitCtx(t)))

	tasks := w.Tasks().Read(ctx)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)

	remoteTasks, err := w.Client().FetchCollection(ctx, "u1", core.KindTasks)
	require.NoError(t, err)
	assert.Contains(t, string(remoteTasks), "Buy milk")

	// Signed-in writes go to the server.
	_, err = w.AddTasks(ctx, "Call mom")
	require.NoError(t, err)
	remoteTasks, err = w.Client().FetchCollection(ctx, "u1", core.KindTasks)
	require.NoError(t, err)
	assert.Contains(t, string(remoteTasks), "Call mom")

	// After sign-out the local store is empty again.
	w.SignOut()
	assert.Empty(t, w.Tasks().Read(ctx))
}

func TestWorkspace_SignInLoadsSettings(t *testing.T) {
	api := newTestAPI(t)
	client, err := remote.New(api.URL)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, client.SaveSettings(ctx, "u1", &core.UserAISettings{
		PreferredAI: core.ProviderClaude,
		ClaudeKey:   "sk-test",
	}))

	w, err := NewWorkspace(t.TempDir(), WithServer(api.URL))
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, core.ProviderLocal, w.Manager().Settings().PreferredAI)

	_, err = w.SignIn(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, w.Wait(waitCtx(t)))
	assert.Equal(t, core.ProviderClaude, w.Manager().Settings().PreferredAI)
	assert.Equal(t, core.ProviderClaude, w.Manager().ActiveProvider().ID())

	w.SignOut()
	assert.Equal(t, core.ProviderLocal, w.Manager().Settings().PreferredAI)
}

func TestWorkspace_SaveSettings(t *testing.T) {
	api := newTestAPI(t)
	w, err := NewWorkspace(t.TempDir(), WithServer(api.URL))
	require.NoError(t, err)
	defer w.Close()
	ctx := context.Background()

	_, err = w.SignIn(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, w.Wait(waitCtx(t)))

	require.NoError(t, w.SaveSettings(ctx, &core.UserAISettings{PreferredAI: core.ProviderGemini, GeminiKey: "g"}))
	assert.Equal(t, core.ProviderGemini, w.Manager().Settings().PreferredAI)

	stored, err := w.Client().FetchSettings(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "g", stored.GeminiKey)
}
