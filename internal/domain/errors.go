package domain

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrServerNotFound   = errors.New("server not found")
	ErrSettingsNotFound = errors.New("server settings not found")

	// ErrDuplicateCommand is returned when two commands are registered
	// under the same name. Treated as fatal during startup.
	ErrDuplicateCommand = errors.New("duplicate command name")
)
