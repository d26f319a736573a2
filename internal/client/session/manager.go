package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/collegeportal/internal/client/client"
	"github.com/dmitrijs2005/collegeportal/internal/client/models"
	"github.com/dmitrijs2005/collegeportal/internal/logging"
)

// Status is the lifecycle stage of the session.
type Status string

const (
	// StatusUnknown: Bootstrap has not finished yet.
	StatusUnknown        Status = "unknown"
	StatusAnonymous      Status = "anonymous"
	StatusAuthenticating Status = "authenticating"
	StatusAuthenticated  Status = "authenticated"
)

// Session is a read-only snapshot of the viewer's authentication state.
// User and Credential are set iff Status is StatusAuthenticated.
type Session struct {
	Status     Status
	User       *models.User
	Credential string
}

// Authenticated reports whether s carries a user and credential.
func (s Session) Authenticated() bool {
	return s.Status == StatusAuthenticated
}

func (s Session) clone() Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

func anonymous() Session {
	return Session{Status: StatusAnonymous}
}

func authenticated(u models.User, credential string) Session {
	return Session{Status: StatusAuthenticated, User: &u, Credential: credential}
}

type subscriber struct {
	id int
	fn func(Session)
}

// Manager owns the session. It is the only writer of the session state and
// of the persisted credential; everything else reads snapshots.
//
// At most one of Bootstrap, Login, Register and UpdateProfile runs at a time;
// a second call gets ErrBusy. Logout may run at any moment: it bumps the
// session generation and any operation still in flight discards its result.
type Manager struct {
	api   client.AuthAPI
	store CredentialStore
	log   logging.Logger
	now   func() time.Time

	// notifyMu serialises transitions together with their notifications so
	// subscribers observe them in order.
	notifyMu sync.Mutex

	mu       sync.Mutex
	state    Session
	gen      uint64
	inflight bool
	subs     []subscriber
	nextSub  int
}

// NewManager returns a Manager in StatusUnknown. Call Bootstrap to restore a
// persisted session. A nil log discards output.
func NewManager(api client.AuthAPI, store CredentialStore, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{
		api:   api,
		store: store,
		log:   log.With("component", "session"),
		now:   time.Now,
		state: Session{Status: StatusUnknown},
	}
}

// Snapshot returns the current session.
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// Subscribe registers fn to be called synchronously after every transition,
// before the operation that caused it returns. fn must not call Manager
// methods other than Snapshot. The returned func unsubscribes.
func (m *Manager) Subscribe(fn func(Session)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextSub++
	id := m.nextSub
	m.subs = append(m.subs, subscriber{id: id, fn: fn})

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, s := range m.subs {
			if s.id == id {
				m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

// Close tears the manager down: subscribers are dropped. The persisted
// credential is kept so the next process can restore the session.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = nil
}

func (m *Manager) begin() (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inflight {
		return 0, ErrBusy
	}
	m.inflight = true
	return m.gen, nil
}

func (m *Manager) release() {
	m.mu.Lock()
	m.inflight = false
	m.mu.Unlock()
}

// transition publishes next if valid accepts the current state and
// generation. persist runs first, inside the same critical section, so the
// stored credential never disagrees with a published session.
func (m *Manager) transition(valid func(cur Session, gen uint64) bool, persist func(), next Session) bool {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	ok := valid(m.state, m.gen)
	m.mu.Unlock()
	if !ok {
		return false
	}

	if persist != nil {
		persist()
	}

	m.mu.Lock()
	m.state = next
	snap := m.state.clone()
	subs := append([]subscriber(nil), m.subs...)
	m.mu.Unlock()

	for _, s := range subs {
		s.fn(snap.clone())
	}
	return true
}

func sameGen(gen uint64) func(Session, uint64) bool {
	return func(_ Session, cur uint64) bool { return cur == gen }
}

// Bootstrap restores the session from the persisted credential. With no
// credential the session becomes anonymous. Any restore failure, including
// transport errors, clears the credential and leaves the session anonymous;
// the failure is returned for display only.
func (m *Manager) Bootstrap(ctx context.Context) error {
	gen, err := m.begin()
	if err != nil {
		return err
	}
	defer m.release()

	persistCtx := context.WithoutCancel(ctx)
	clearStore := func() { m.store.Clear(persistCtx) }

	credential, ok := m.store.Load(ctx)
	if !ok {
		if !m.transition(sameGen(gen), nil, anonymous()) {
			return ErrSuperseded
		}
		m.log.Debug(ctx, "no stored credential")
		return nil
	}

	if credentialExpired(credential, m.now()) {
		if !m.transition(sameGen(gen), clearStore, anonymous()) {
			return ErrSuperseded
		}
		m.log.Info(ctx, "stored credential expired")
		return fmt.Errorf("restore session: %w", ErrSessionExpired)
	}

	if !m.transition(sameGen(gen), nil, Session{Status: StatusAuthenticating}) {
		return ErrSuperseded
	}

	user, err := m.api.GetProfile(ctx, credential)
	if err != nil {
		if !m.transition(sameGen(gen), clearStore, anonymous()) {
			return ErrSuperseded
		}
		m.log.Info(ctx, "session restore failed", "err", err)
		if errors.Is(err, client.ErrUnauthorized) {
			return fmt.Errorf("restore session: %w: %w", ErrSessionExpired, err)
		}
		return fmt.Errorf("restore session: %w", err)
	}

	if !m.transition(sameGen(gen), nil, authenticated(user, credential)) {
		return ErrSuperseded
	}
	m.log.Info(ctx, "session restored", "user_id", user.ID)
	return nil
}

// Login authenticates with email and password. On failure the session is
// anonymous and the cause is returned wrapped.
func (m *Manager) Login(ctx context.Context, email, password string) (models.User, error) {
	creds := models.Credentials{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return models.User{}, err
	}
	return m.authenticate(ctx, "login", func(ctx context.Context) (models.AuthResult, error) {
		return m.api.Login(ctx, creds)
	})
}

// Register creates the account and signs it in.
func (m *Manager) Register(ctx context.Context, r models.Registration) (models.User, error) {
	if err := r.Validate(); err != nil {
		return models.User{}, err
	}
	return m.authenticate(ctx, "register", func(ctx context.Context) (models.AuthResult, error) {
		return m.api.Register(ctx, r)
	})
}

func (m *Manager) authenticate(ctx context.Context, op string, call func(context.Context) (models.AuthResult, error)) (models.User, error) {
	gen, err := m.begin()
	if err != nil {
		return models.User{}, err
	}
	defer m.release()

	persistCtx := context.WithoutCancel(ctx)

	// the previous identity, if any, is replaced wholesale
	var clearPrevious func()
	if m.Snapshot().Authenticated() {
		clearPrevious = func() { m.store.Clear(persistCtx) }
	}
	if !m.transition(sameGen(gen), clearPrevious, Session{Status: StatusAuthenticating}) {
		return models.User{}, ErrSuperseded
	}

	res, err := call(ctx)
	if err != nil {
		if !m.transition(sameGen(gen), nil, anonymous()) {
			return models.User{}, ErrSuperseded
		}
		m.log.Info(ctx, op+" failed", "err", err)
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	save := func() { m.store.Save(persistCtx, res.Token) }
	if !m.transition(sameGen(gen), save, authenticated(res.User, res.Token)) {
		return models.User{}, ErrSuperseded
	}
	m.log.Info(ctx, op+" succeeded", "user_id", res.User.ID)
	return res.User, nil
}

// Logout forgets the credential and makes the session anonymous. It needs
// no network and cannot fail.
func (m *Manager) Logout(ctx context.Context) {
	persistCtx := context.WithoutCancel(ctx)

	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.store.Clear(persistCtx)

	m.mu.Lock()
	m.gen++
	m.state = anonymous()
	snap := m.state.clone()
	subs := append([]subscriber(nil), m.subs...)
	m.mu.Unlock()

	for _, s := range subs {
		s.fn(snap.clone())
	}
	m.log.Info(ctx, "logged out")
}

// UpdateProfile changes the signed-in user's profile. If the server rejects
// the credential the session becomes anonymous and ErrSessionExpired is
// returned; other failures leave the session untouched.
func (m *Manager) UpdateProfile(ctx context.Context, fields models.ProfileUpdate) (models.User, error) {
	gen, err := m.begin()
	if err != nil {
		return models.User{}, err
	}
	defer m.release()

	cur := m.Snapshot()
	if !cur.Authenticated() {
		return models.User{}, ErrNotAuthenticated
	}
	if err := fields.Validate(); err != nil {
		return models.User{}, err
	}

	user, err := m.api.UpdateProfile(ctx, cur.Credential, fields)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return models.User{}, m.expire(ctx, gen, cur.Credential, err)
		}
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}

	if !m.transition(sameGen(gen), nil, authenticated(user, cur.Credential)) {
		return models.User{}, ErrSuperseded
	}
	m.log.Info(ctx, "profile updated", "user_id", user.ID)
	return user, nil
}

// Authorized runs fn with the current credential. It is the path every
// other credentialed API call takes, so an authorization failure anywhere
// expires the session.
func (m *Manager) Authorized(ctx context.Context, fn func(ctx context.Context, credential string) error) error {
	m.mu.Lock()
	cur := m.state.clone()
	gen := m.gen
	m.mu.Unlock()

	if !cur.Authenticated() {
		return ErrNotAuthenticated
	}

	err := fn(ctx, cur.Credential)
	if errors.Is(err, client.ErrUnauthorized) {
		return m.expire(ctx, gen, cur.Credential, err)
	}
	return err
}

// expire drops the session that used credential, unless it has already been
// replaced or logged out.
func (m *Manager) expire(ctx context.Context, gen uint64, credential string, cause error) error {
	persistCtx := context.WithoutCancel(ctx)
	valid := func(cur Session, curGen uint64) bool {
		return curGen == gen && cur.Authenticated() && cur.Credential == credential
	}
	if !m.transition(valid, func() { m.store.Clear(persistCtx) }, anonymous()) {
		return ErrSuperseded
	}
	m.log.Info(ctx, "session expired", "err", cause)
	return fmt.Errorf("%w: %w", ErrSessionExpired, cause)
}
