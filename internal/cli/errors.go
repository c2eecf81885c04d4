package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrNoAPIKey indicates a command that needs a key ran without one.
	ErrNoAPIKey = errors.New("no API key configured")

	// ErrNestedShell indicates `shell` was typed inside the shell.
	ErrNestedShell = errors.New("already in shell mode")

	// ErrInvalidAmount indicates --amount is not a decimal number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidLimit indicates a negative --limit or a --page below 1.
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrEmptyAPIKey indicates an empty key was given to set-key or onboard.
	ErrEmptyAPIKey = errors.New("API key must not be empty")
)
