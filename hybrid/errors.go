package hybrid

import "errors"

var (
	// ErrLocalStoreRequired is returned when a Store is created without a local store.
	ErrLocalStoreRequired = errors.New("local store required")

	// ErrAuthRequired is returned when a Store is created without an auth source.
	ErrAuthRequired = errors.New("auth source required")
)
