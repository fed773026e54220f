package storage

import (
	"testing"

	"github.com/poiesic/jotpad/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCollection(t *testing.T) {
	t.Run("nil encodes as empty array", func(t *testing.T) {
		data, err := EncodeCollection[core.TaskItem](nil)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("uses wire field names", func(t *testing.T) {
		data, err := EncodeCollection([]core.NoteItem{
			{ID: "n1", Title: "Title", ContentHTML: "<p>x</p>", UpdatedAt: 42},
		})
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"n1","title":"Title","contentHtml":"<p>x</p>","updatedAt":42}]`, string(data))
	})

	t.Run("rejects invalid items", func(t *testing.T) {
		_, err := EncodeCollection([]core.TaskItem{{ID: "t1"}})
		assert.ErrorIs(t, err, ErrSchemaMismatch)
		assert.ErrorIs(t, err, core.ErrEmptyTitle)
	})
}

func TestDecodeCollection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr error
	}{
		{name: "empty input", input: "", wantLen: 0},
		{name: "null", input: "null", wantLen: 0},
		{name: "empty array", input: "[]", wantLen: 0},
		{
			name:    "two tasks",
			input:   `[{"id":"a","title":"one","completed":false,"createdAt":1},{"id":"b","title":"two","completed":true,"createdAt":2}]`,
			wantLen: 2,
		},
		{name: "not json", input: "{oops", wantErr: ErrSerializationFailed},
		{name: "object instead of array", input: `{"id":"a"}`, wantErr: ErrSerializationFailed},
		{name: "wrong field type", input: `[{"id":"a","title":"x","createdAt":"yesterday"}]`, wantErr: ErrSerializationFailed},
		{name: "missing title", input: `[{"id":"a","createdAt":1}]`, wantErr: ErrSchemaMismatch},
		{name: "duplicate ids", input: `[{"id":"a","title":"x"},{"id":"a","title":"y"}]`, wantErr: ErrSchemaMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := DecodeCollection[core.TaskItem]([]byte(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, items)
			assert.Len(t, items, tt.wantLen)
		})
	}
}

func TestRecordsFromJSON(t *testing.T) {
	records, err := RecordsFromJSON(core.KindBlogs, []byte(`[{"id":"b1","title":"Post","contentHtml":"","updatedAt":99}]`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "b1", records[0].ID)
	assert.Equal(t, int64(99), records[0].SortKey)

	_, err = RecordsFromJSON(core.Kind("settings"), []byte(`[]`))
	assert.ErrorIs(t, err, core.ErrUnknownKind)

	_, err = RecordsFromJSON(core.KindTasks, []byte(`[{"id":"t1"}]`))
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestRecordsToJSON(t *testing.T) {
	data, err := RecordsToJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = RecordsToJSON([]Record{
		{ID: "a", Payload: []byte(`{"id":"a","title":"x","completed":false,"createdAt":2}`)},
		{ID: "b", Payload: []byte(`{"id":"b","title":"y","completed":true,"createdAt":1}`)},
	})
	require.NoError(t, err)

	tasks, err := DecodeCollection[core.TaskItem](data)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].ID)
	assert.True(t, tasks[1].Completed)
}
