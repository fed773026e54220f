package migration

import "errors"

var (
	// ErrMigrationInProgress is returned when Run is called while another run is active.
	ErrMigrationInProgress = errors.New("migration already in progress")

	// ErrNoUser is returned when Run is called without a user id.
	ErrNoUser = errors.New("user id required")

	// ErrLocalStoreRequired is returned when no local store is configured.
	ErrLocalStoreRequired = errors.New("local store required")

	// ErrRemoteRequired is returned when no remote is configured.
	ErrRemoteRequired = errors.New("remote required")
)
