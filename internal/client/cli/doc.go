// Package cli provides the interactive College Portal command-line client.
//
// It wires configuration, the local credential store, the portal API client,
// the session manager and the application services behind a REPL. On start
// the previous session is restored from the stored credential; commands that
// need a signed-in user go through the route guard, which asks anonymous
// users to log in and then resumes the command.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
