package application

import "errors"

// Error taxonomy shared by the directories and the auth orchestrator.
// Handlers map these onto HTTP statuses with errors.Is.
var (
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation; nothing was written.
	ErrConflict = errors.New("already exists")
	// ErrInvalidID marks a malformed identifier rejected before lookup.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrInvalidCredentials covers every authentication failure: unknown
	// user, bad password, invalid or expired token, inactive account. The
	// single error keeps status code and message identical across causes so
	// account existence cannot be probed.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
