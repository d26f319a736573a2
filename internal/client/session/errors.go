package session

import "errors"

var (
	// ErrBusy rejects a session operation while another one is in flight.
	ErrBusy = errors.New("another session operation is in progress")
	// ErrNotAuthenticated is returned by operations that need a signed-in viewer.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSessionExpired means the server rejected the credential mid-session;
	// the session is anonymous by the time the caller sees it.
	ErrSessionExpired = errors.New("session expired")
	// ErrSuperseded is returned when a logout happened while the operation was
	// in flight; its result was discarded.
	ErrSuperseded = errors.New("session changed while the operation was in flight")
)
