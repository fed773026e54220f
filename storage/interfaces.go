package storage

import (
	"context"

	"github.com/poiesic/jotpad/core"
)

// LocalStore is the client-resident string-keyed store.
// Values are opaque bytes; collection values are JSON arrays.
// Implementations must be thread-safe.
type LocalStore interface {
	// Get returns the value stored at key. The boolean is false when the key is absent.
	Get(key string) ([]byte, bool, error)

	// Set stores value at key, overwriting any previous value.
	Set(key string, value []byte) error

	// Remove deletes the given keys. Missing keys are ignored.
	Remove(keys ...string) error

	// Close releases resources held by the store.
	Close() error
}

// Record is one collection item as persisted server-side.
// Payload is the item's JSON encoding; ID and SortKey are lifted out for indexing.
type Record struct {
	ID      string
	SortKey int64
	Payload []byte
}

// CollectionRepository persists per-user collections.
type CollectionRepository interface {
	// ListItems returns every record of the collection, newest first (SortKey descending).
	ListItems(ctx context.Context, userID string, kind core.Kind) ([]Record, error)

	// ReplaceItems replaces the whole collection in one transaction.
	ReplaceItems(ctx context.Context, userID string, kind core.Kind, records []Record) error

	// AppendItems inserts records in one transaction.
	// If any record id already exists for the user and kind, nothing is written
	// and the error wraps ErrDuplicateKey.
	AppendItems(ctx context.Context, userID string, kind core.Kind, records []Record) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// SettingsRepository persists per-user AI settings.
type SettingsRepository interface {
	// GetSettings returns ErrNotFound when nothing is stored for userID.
	GetSettings(ctx context.Context, userID string) (*core.UserAISettings, error)

	// PutSettings creates or overwrites the settings for userID.
	PutSettings(ctx context.Context, userID string, settings *core.UserAISettings) error
}
