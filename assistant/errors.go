package assistant

import "errors"

var (
	// ErrNoSettingsSource indicates LoadUserSettings was called on a Manager without a SettingsSource.
	ErrNoSettingsSource = errors.New("no settings source configured")

	// ErrStaleSettings indicates settings arrived after the session had already changed again.
	ErrStaleSettings = errors.New("settings load superseded by a newer auth change")
)
