// Package common defines shared constants and sentinel errors used across
// the College Portal client packages. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// ErrValidation marks input rejected before or by the API
	// (bad login/register/profile/admission/review fields).
	ErrValidation = errors.New("validation error")

	// ErrNotFound is returned when a requested college or record does not exist.
	ErrNotFound = errors.New("not found")
)
