// Package session owns the viewer's authentication state.
//
// Store persists the bearer credential in the local database. Manager drives
// the state machine (unknown, anonymous, authenticating, authenticated),
// publishes snapshots to subscribers and is the only writer of both the
// state and the persisted credential. Any credentialed API call should go
// through Manager.Authorized so that a rejected credential ends the session.
package session
