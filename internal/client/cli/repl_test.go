package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/collegeportal/internal/client/session"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
	err   error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register", nil)
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) WhoAmI(ctx context.Context) error      { return f.record("whoami", nil) }
func (f *fakeExec) Profile(ctx context.Context) error     { return f.record("profile", nil) }
func (f *fakeExec) EditProfile(ctx context.Context) error { return f.record("editprofile", nil) }
func (f *fakeExec) Colleges(ctx context.Context, args []string) error {
	return f.record("colleges", args)
}
func (f *fakeExec) Featured(ctx context.Context) error { return f.record("featured", nil) }
func (f *fakeExec) College(ctx context.Context, args []string) error {
	return f.record("college", args)
}
func (f *fakeExec) Search(ctx context.Context, args []string) error {
	return f.record("search", args)
}
func (f *fakeExec) Apply(ctx context.Context, args []string) error {
	return f.record("apply", args)
}
func (f *fakeExec) MyCollege(ctx context.Context) error { return f.record("mycollege", nil) }
func (f *fakeExec) Review(ctx context.Context, args []string) error {
	return f.record("review", args)
}
func (f *fakeExec) Reviews(ctx context.Context, args []string) error {
	return f.record("reviews", args)
}

// capturePrint swaps printlnFn for one writing into the returned builder.
func capturePrint(t *testing.T) *strings.Builder {
	t.Helper()
	var out strings.Builder
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&out, a...) }
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrint(t)

	input := strings.Join([]string{
		"help",
		"login",
		"colleges 2",
		"search harvard university",
		"college c1",
		"apply",
		"review c1",
		"reviews c1",
		"mycollege",
		"",
		"logout",
		"exit",
		"whoami",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader(input)))

	require.Equal(t, []string{"login", "colleges", "search", "college", "apply", "review", "reviews", "mycollege", "logout"}, exec.calls)
	require.Equal(t, []string{"2"}, exec.args[1])
	require.Equal(t, []string{"harvard", "university"}, exec.args[2])
	require.Equal(t, []string{"c1"}, exec.args[3])
	require.Empty(t, exec.args[4])
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	out := capturePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(Ad)" }, bufio.NewReader(strings.NewReader("college\nfoobar\nquit\n")))

	require.Empty(t, exec.calls)
	require.Contains(t, out.String(), "Usage: college <id>")
	require.Contains(t, out.String(), "Unknown command: foobar")
	require.Contains(t, out.String(), "portal(Ad)>")
	require.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	out := capturePrint(t)
	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, bufio.NewReader(strings.NewReader("help\n")))
	require.Contains(t, out.String(), "register, login")
	require.NotContains(t, out.String(), "mycollege")

	out.Reset()
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, bufio.NewReader(strings.NewReader("help\n")))
	require.Contains(t, out.String(), "mycollege")
}

func TestRunREPL_ErrorsArePrintedAndLoopContinues(t *testing.T) {
	out := capturePrint(t)

	exec := &fakeExec{err: fmt.Errorf("update profile: %w", session.ErrNotAuthenticated)}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("profile\nfeatured")))

	require.Equal(t, []string{"profile", "featured"}, exec.calls)
	require.Equal(t, 2, strings.Count(out.String(), "Error: please log in first"))
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	capturePrint(t)
	exec := &fakeExec{err: errors.New("x")}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("featured")))
	require.Equal(t, []string{"featured"}, exec.calls)
}
