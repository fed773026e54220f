package server

import "errors"

var (
	// ErrCollectionsRequired is returned when no collection repository is configured.
	ErrCollectionsRequired = errors.New("collection repository required")

	// ErrSettingsRequired is returned when no settings repository is configured.
	ErrSettingsRequired = errors.New("settings repository required")
)
