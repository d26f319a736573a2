package services

import (
	"context"

	"github.com/dmitrijs2005/collegeportal/internal/client/session"
)

// Authorizer runs credentialed calls and exposes the current session.
// *session.Manager satisfies it.
type Authorizer interface {
	Authorized(ctx context.Context, fn func(ctx context.Context, credential string) error) error
	Snapshot() session.Session
}

var _ Authorizer = (*session.Manager)(nil)
