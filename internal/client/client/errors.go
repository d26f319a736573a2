package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/collegeportal/internal/common"
)

var (
	// ErrUnavailable: the API could not be reached or failed server-side.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized: the credential is missing, invalid or expired.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation is the shared validation sentinel so callers need not
	// import both packages.
	ErrValidation = common.ErrValidation
)

// APIError is a non-2xx answer from the portal API. Message is the server's
// {"message": ...} body when present.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// NewAPIError classifies a non-2xx status.
func NewAPIError(status int, message string) *APIError {
	return &APIError{StatusCode: status, Message: message, kind: kindForStatus(status)}
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return common.ErrNotFound
	case status >= 400 && status < 500:
		return ErrValidation
	default:
		return ErrUnavailable
	}
}

// UserMessage is the text a caller should show for err: the server's
// message if there is one, otherwise the error itself.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
