// Package guard decides whether a protected view may be shown for the
// current session.
package guard

import (
	"net/url"
	"strings"

	"github.com/dmitrijs2005/collegeportal/internal/client/session"
)

// SignInPath is where anonymous viewers are sent.
const SignInPath = "/signin"

const returnParam = "from"

// Kind says what a protected view should do.
type Kind int

const (
	// Pending: the session is not settled yet; show neither content nor redirect.
	Pending Kind = iota
	// Redirect: send the viewer to Location and come back to ReturnTo after sign-in.
	Redirect
	// Render: show the protected content.
	Render
)

func (k Kind) String() string {
	switch k {
	case Pending:
		return "pending"
	case Redirect:
		return "redirect"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// Decision is the outcome of Decide. Location and ReturnTo are set for
// Redirect only.
type Decision struct {
	Kind     Kind
	Location string
	ReturnTo string
}

// Decide maps a session status and the requested location to a decision.
// It has no state of its own.
func Decide(status session.Status, target string) Decision {
	switch status {
	case session.StatusAuthenticated:
		return Decision{Kind: Render}
	case session.StatusAnonymous:
		target = normalize(target)
		return Decision{Kind: Redirect, Location: SignInLocation(target), ReturnTo: target}
	default:
		return Decision{Kind: Pending}
	}
}

// SignInLocation is the sign-in destination that remembers target.
func SignInLocation(target string) string {
	q := url.Values{}
	q.Set(returnParam, normalize(target))
	return SignInPath + "?" + q.Encode()
}

// ReturnTarget recovers the location recorded by SignInLocation. Anything
// unparsable, or pointing off-site, yields "/".
func ReturnTarget(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		return "/"
	}
	return normalize(u.Query().Get(returnParam))
}

// normalize keeps targets site-relative.
func normalize(target string) string {
	target = strings.TrimSpace(target)
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return "/"
	}
	return target
}

// SessionSource is anything that can report the current session.
type SessionSource interface {
	Snapshot() session.Session
}

// Guard evaluates against a live session source, so every call sees the
// latest transition.
type Guard struct {
	source SessionSource
}

// New returns a Guard reading from source.
func New(source SessionSource) *Guard {
	return &Guard{source: source}
}

// Evaluate decides for target using the current session.
func (g *Guard) Evaluate(target string) Decision {
	return Decide(g.source.Snapshot().Status, target)
}
