package session

import (
	"context"

	"github.com/dmitrijs2005/collegeportal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/collegeportal/internal/common"
	"github.com/dmitrijs2005/collegeportal/internal/logging"
)

// CredentialStore persists the bearer credential across restarts.
type CredentialStore interface {
	Save(ctx context.Context, credential string)
	Load(ctx context.Context) (string, bool)
	Clear(ctx context.Context)
}

// Store keeps exactly one credential under common.CredentialKey in the
// metadata repository. Storage failures are logged and swallowed: a session
// whose credential could not be written simply does not survive a restart.
type Store struct {
	repo metadata.Repository
	log  logging.Logger
}

var _ CredentialStore = (*Store)(nil)

func NewStore(repo metadata.Repository, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{repo: repo, log: log.With("component", "session_store")}
}

// Save overwrites any stored credential.
func (s *Store) Save(ctx context.Context, credential string) {
	if err := s.repo.Set(ctx, common.CredentialKey, []byte(credential)); err != nil {
		s.log.Warn(ctx, "credential not persisted", "err", err)
	}
}

// Load returns the stored credential. Read errors count as "nothing stored".
func (s *Store) Load(ctx context.Context) (string, bool) {
	v, found, err := s.repo.Get(ctx, common.CredentialKey)
	if err != nil {
		s.log.Warn(ctx, "credential not readable", "err", err)
		return "", false
	}
	if !found || len(v) == 0 {
		return "", false
	}
	return string(v), true
}

// Clear removes the stored credential. Idempotent.
func (s *Store) Clear(ctx context.Context) {
	if err := s.repo.Delete(ctx, common.CredentialKey); err != nil {
		s.log.Warn(ctx, "credential not cleared", "err", err)
	}
}
