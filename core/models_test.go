package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindSelectionKey(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindTasks, "selected-task-id"},
		{KindNotes, "selected-note-id"},
		{KindBlogs, "selected-blog-id"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.SelectionKey())
		})
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Notes ")
	require.NoError(t, err)
	assert.Equal(t, KindNotes, k)

	_, err = ParseKind("settings")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestSortKey(t *testing.T) {
	assert.Equal(t, int64(10), TaskItem{CreatedAt: 10}.SortKey())
	assert.Equal(t, int64(20), NoteItem{UpdatedAt: 20}.SortKey())
	assert.Equal(t, int64(30), BlogItem{UpdatedAt: 30}.SortKey())
}

func TestNewItemID(t *testing.T) {
	a := NewItemID()
	b := NewItemID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestParseProviderID(t *testing.T) {
	tests := []struct {
		in   string
		want ProviderID
	}{
		{"ollama", ProviderLocal},
		{"openai", ProviderOpenAI},
		{"Claude", ProviderClaude},
		{"gemini", ProviderGemini},
		{"", ProviderLocal},
		{"mistral", ProviderLocal},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseProviderID(tt.in))
		})
	}
}

func TestProviderIsVendor(t *testing.T) {
	assert.False(t, ProviderLocal.IsVendor())
	assert.True(t, ProviderOpenAI.IsVendor())
	assert.True(t, ProviderClaude.IsVendor())
	assert.True(t, ProviderGemini.IsVendor())
	assert.False(t, ProviderID("mistral").IsVendor())
}

func TestCredentialFor(t *testing.T) {
	s := &UserAISettings{
		PreferredAI: ProviderClaude,
		OpenAIKey:   "sk-o",
		ClaudeKey:   "sk-c",
		GeminiKey:   "g-k",
	}
	assert.Equal(t, "sk-o", s.CredentialFor(ProviderOpenAI))
	assert.Equal(t, "sk-c", s.CredentialFor(ProviderClaude))
	assert.Equal(t, "g-k", s.CredentialFor(ProviderGemini))
	assert.Empty(t, s.CredentialFor(ProviderLocal))

	var nilSettings *UserAISettings
	assert.Empty(t, nilSettings.CredentialFor(ProviderOpenAI))
}

func TestSettingsNormalized(t *testing.T) {
	var nilSettings *UserAISettings
	assert.Equal(t, ProviderLocal, nilSettings.Normalized().PreferredAI)

	s := (&UserAISettings{PreferredAI: "bogus", OpenAIKey: " k "}).Normalized()
	assert.Equal(t, ProviderLocal, s.PreferredAI)
	assert.Equal(t, "k", s.OpenAIKey)
}
