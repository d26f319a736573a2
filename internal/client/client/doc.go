// Package client talks to the College Portal REST API.
//
// # Overview
//
// The package provides:
//  1. Transport-agnostic contracts per collaborator (AuthAPI, CollegeAPI,
//     AdmissionAPI, ReviewAPI) and their union, Client.
//  2. HTTPClient, the JSON-over-HTTP implementation. Calls that need an
//     identity take the bearer credential explicitly; the client itself
//     holds no session state.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring the
//     sqlite database and its embedded goose migrations.
//
// # Error Handling
//
// Every failure maps to one of the sentinels, matched with errors.Is:
// ErrUnauthorized (401/403), ErrValidation (other 4xx), common.ErrNotFound
// (404) and ErrUnavailable (5xx, timeouts, network). Server messages are
// kept in *APIError; UserMessage extracts them for display.
package client
