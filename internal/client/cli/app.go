package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/collegeportal/internal/client/client"
	"github.com/dmitrijs2005/collegeportal/internal/client/config"
	"github.com/dmitrijs2005/collegeportal/internal/client/guard"
	"github.com/dmitrijs2005/collegeportal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/collegeportal/internal/client/search"
	"github.com/dmitrijs2005/collegeportal/internal/client/services"
	"github.com/dmitrijs2005/collegeportal/internal/client/session"
	"github.com/dmitrijs2005/collegeportal/internal/common"
	"github.com/dmitrijs2005/collegeportal/internal/filex"
	"github.com/dmitrijs2005/collegeportal/internal/logging"
)

type App struct {
	config     *config.Config
	log        logging.Logger
	db         *sql.DB
	session    *session.Manager
	guard      *guard.Guard
	searcher   search.Searcher
	colleges   services.CollegeService
	admissions services.AdmissionService
	reviews    services.ReviewService
	reader     *bufio.Reader
	out        io.Writer
	// afterFunc overrides the search debounce timer in tests.
	afterFunc search.AfterFunc
}

// NewApp opens the local database, builds the API client and wires the
// session, guard and services together.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	path, err := filex.ResolveDataFile(c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}

	db, err := client.InitDatabase(ctx, path)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", path, "err", err)
		return nil, err
	}

	api, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := session.NewStore(metadata.NewSQLiteRepository(db), log)
	app := newApp(c, log, api, session.NewManager(api, store, log), bufio.NewReader(os.Stdin), os.Stdout)
	app.db = db
	return app, nil
}

func newApp(c *config.Config, log logging.Logger, api client.Client, m *session.Manager, reader *bufio.Reader, out io.Writer) *App {
	return &App{
		config:     c,
		log:        log,
		session:    m,
		guard:      guard.New(m),
		searcher:   api,
		colleges:   services.NewCollegeService(api, 0),
		admissions: services.NewAdmissionService(api, m),
		reviews:    services.NewReviewService(api, api, m),
		reader:     reader,
		out:        out,
	}
}

// Run restores the previous session and serves the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	unsubscribe := a.session.Subscribe(func(s session.Session) {
		a.log.Debug(ctx, "session changed", "status", s.Status)
	})
	defer unsubscribe()

	if err := a.session.Bootstrap(ctx); err != nil {
		printlnFn("Could not restore your previous session:", describe(err))
	}

	printlnFn("Welcome to College Portal (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	a.session.Close()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(context.Background(), "close database", "err", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Authenticated()
}

// getStatus is the prompt decoration: the signed-in user's initials.
func (a *App) getStatus() string {
	s := a.session.Snapshot()
	if !s.Authenticated() {
		return ""
	}
	return fmt.Sprintf("(%s)", common.Initials(s.User.Name))
}

// protected runs fn for target if the guard allows it. An anonymous viewer
// is asked to log in first and then taken back to target.
func (a *App) protected(ctx context.Context, target string, fn func(ctx context.Context) error) error {
	d := a.guard.Evaluate(target)
	switch d.Kind {
	case guard.Render:
		return fn(ctx)
	case guard.Pending:
		printlnFn("Your session is still being restored, try again in a moment.")
		return nil
	}

	printlnFn("Please log in to continue.")
	a.log.Debug(ctx, "redirect to sign-in", "location", d.Location)
	if err := a.Login(ctx); err != nil {
		return err
	}
	if a.guard.Evaluate(guard.ReturnTarget(d.Location)).Kind != guard.Render {
		return nil
	}
	return fn(ctx)
}

// describe turns an error into the line shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, session.ErrSessionExpired):
		return "your session has expired, please log in again"
	case errors.Is(err, session.ErrBusy):
		return "another sign-in is in progress, please wait"
	case errors.Is(err, session.ErrNotAuthenticated):
		return "please log in first"
	case errors.Is(err, session.ErrSuperseded):
		return "you were logged out while this was in progress"
	case errors.Is(err, common.ErrNotFound):
		return "not found"
	case errors.Is(err, client.ErrUnavailable):
		return "the portal is not reachable right now, please try again later"
	}
	return client.UserMessage(err)
}
