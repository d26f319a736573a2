// Package search turns a free-text input into a live suggestion list of
// colleges. Keystrokes are debounced; every issued lookup is tagged with an
// epoch and a response whose epoch is no longer current is dropped.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/collegeportal/internal/client/models"
	"github.com/dmitrijs2005/collegeportal/internal/logging"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultDebounce      = 300 * time.Millisecond
	DefaultLimit         = 5
	DefaultLookupTimeout = 10 * time.Second

	// MinTermLength is the shortest trimmed term that is looked up.
	MinTermLength = 2
)

// Searcher is the search collaborator.
type Searcher interface {
	SearchColleges(ctx context.Context, term string, limit int) ([]models.CollegeSummary, error)
}

// Timer is the part of *time.Timer the debouncer uses.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc is the production choice;
// tests plug in a manual clock.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// PointerTarget says where a pointer interaction started.
type PointerTarget int

const (
	PointerOutside PointerTarget = iota
	PointerList
)

// State is what a view renders. Pending is set while the quiet period
// before a lookup runs; a term below MinTermLength never sets it.
type State struct {
	Term        string
	Suggestions []models.CollegeSummary
	Pending     bool
	Loading     bool
	Visible     bool
	Epoch       uint64
}

// Options configures an Autocomplete. Zero values pick the defaults.
type Options struct {
	Debounce time.Duration
	Limit    int
	// LookupTimeout bounds each lookup; expiry counts as a failed lookup.
	// Zero disables it.
	LookupTimeout time.Duration
	AfterFunc     AfterFunc
	// Navigate is called with the college id on selection.
	Navigate func(id string)
	Logger   logging.Logger
}

// Autocomplete is the search box state machine. Its handlers are safe to
// call from any goroutine.
type Autocomplete struct {
	api      Searcher
	debounce time.Duration
	limit    int
	timeout  time.Duration
	after    AfterFunc
	navigate func(id string)
	log      logging.Logger

	mu            sync.Mutex
	state         State
	focused       bool
	pointerOnList bool
	timer         Timer
	// sched identifies the current scheduled lookup; a timer that fires
	// after being superseded sees a different value and does nothing.
	sched  uint64
	cancel context.CancelFunc
	subs   []func(State)
	closed bool

	wg sync.WaitGroup
}

// New returns an idle Autocomplete looking colleges up through api.
func New(api Searcher, opts Options) *Autocomplete {
	a := &Autocomplete{
		api:      api,
		debounce: opts.Debounce,
		limit:    opts.Limit,
		timeout:  opts.LookupTimeout,
		after:    opts.AfterFunc,
		navigate: opts.Navigate,
		log:      opts.Logger,
	}
	if a.debounce <= 0 {
		a.debounce = DefaultDebounce
	}
	if a.limit <= 0 {
		a.limit = DefaultLimit
	}
	if a.timeout < 0 {
		a.timeout = 0
	}
	if a.after == nil {
		a.after = realAfterFunc
	}
	if a.navigate == nil {
		a.navigate = func(string) {}
	}
	if a.log == nil {
		a.log = logging.Nop()
	}
	a.log = a.log.With("component", "search")
	return a
}

// State returns a copy of the current state.
func (a *Autocomplete) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshot()
}

func (a *Autocomplete) snapshot() State {
	s := a.state
	s.Suggestions = append([]models.CollegeSummary(nil), a.state.Suggestions...)
	return s
}

// Subscribe registers fn to be called after every state change. fn runs on
// whichever goroutine made the change and must not block.
func (a *Autocomplete) Subscribe(fn func(State)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.subs = append(a.subs, fn)
}

// update runs fn under the lock and then notifies subscribers.
func (a *Autocomplete) update(fn func()) {
	a.mu.Lock()
	fn()
	s := a.snapshot()
	subs := append(([]func(State))(nil), a.subs...)
	a.mu.Unlock()

	for _, sub := range subs {
		sub(s)
	}
}

// OnTermChange records term and (re)starts the quiet period. Terms shorter
// than MinTermLength clear the suggestions and issue nothing.
func (a *Autocomplete) OnTermChange(term string) {
	a.update(func() {
		if a.closed {
			return
		}
		a.state.Term = term
		a.stopTimerLocked()

		if len([]rune(strings.TrimSpace(term))) < MinTermLength {
			a.invalidateLocked()
			a.state.Suggestions = nil
			a.state.Loading = false
			return
		}

		a.sched++
		sched := a.sched
		a.state.Pending = true
		a.timer = a.after(a.debounce, func() { a.fire(sched) })
	})
}

// fire issues the lookup scheduled as sched, unless something superseded it.
func (a *Autocomplete) fire(sched uint64) {
	var (
		ctx   context.Context
		epoch uint64
		term  string
	)
	issued := false

	a.update(func() {
		if a.closed || sched != a.sched {
			return
		}
		a.timer = nil
		a.state.Pending = false
		if a.cancel != nil {
			a.cancel()
		}

		a.state.Epoch++
		a.state.Loading = true
		epoch = a.state.Epoch
		term = strings.TrimSpace(a.state.Term)

		var cancel context.CancelFunc
		if a.timeout > 0 {
			ctx, cancel = context.WithTimeout(context.Background(), a.timeout)
		} else {
			ctx, cancel = context.WithCancel(context.Background())
		}
		a.cancel = cancel
		issued = true
		a.wg.Add(1)
	})
	if !issued {
		return
	}

	a.log.Debug(ctx, "lookup issued", "term", term, "epoch", epoch)
	go func() {
		defer a.wg.Done()
		res, err := a.api.SearchColleges(ctx, term, a.limit)
		a.complete(ctx, epoch, res, err)
	}()
}

func (a *Autocomplete) complete(ctx context.Context, epoch uint64, res []models.CollegeSummary, err error) {
	a.update(func() {
		if epoch != a.state.Epoch {
			a.log.Debug(ctx, "stale lookup discarded", "epoch", epoch, "current", a.state.Epoch)
			return
		}
		if a.cancel != nil {
			a.cancel()
			a.cancel = nil
		}
		a.state.Loading = false
		if err != nil {
			a.log.Debug(ctx, "lookup failed", "epoch", epoch, "err", err)
			a.state.Suggestions = nil
			return
		}
		if len(res) > a.limit {
			res = res[:a.limit]
		}
		a.state.Suggestions = append([]models.CollegeSummary(nil), res...)
	})
}

// OnSelect resets the input, hides the list and navigates to item.
func (a *Autocomplete) OnSelect(item models.CollegeSummary) {
	a.update(func() {
		a.resetLocked()
		a.pointerOnList = false
	})
	a.navigate(item.ID)
}

// OnClear resets the input and drops any scheduled or in-flight lookup.
func (a *Autocomplete) OnClear() {
	a.update(a.resetLocked)
}

// OnFocus shows the list.
func (a *Autocomplete) OnFocus() {
	a.update(func() {
		a.focused = true
		a.state.Visible = true
	})
}

// OnBlur hides the list unless a press on the list is in progress.
func (a *Autocomplete) OnBlur() {
	a.update(func() {
		a.focused = false
		a.state.Visible = a.pointerOnList
	})
}

// OnPointerDown keeps the list open for a press on the list itself; a press
// anywhere else hides it and leaves the term alone.
func (a *Autocomplete) OnPointerDown(target PointerTarget) {
	a.update(func() {
		if target == PointerList {
			a.pointerOnList = true
			return
		}
		a.pointerOnList = false
		a.state.Visible = false
	})
}

// OnPointerUp ends a press; the list stays visible only while focused.
func (a *Autocomplete) OnPointerUp() {
	a.update(func() {
		a.pointerOnList = false
		a.state.Visible = a.focused
	})
}

// Close stops the timer, cancels the in-flight lookup and waits for it to
// return. Later events are ignored.
func (a *Autocomplete) Close() {
	a.update(func() {
		a.resetLocked()
		a.closed = true
	})
	a.wg.Wait()
}

func (a *Autocomplete) resetLocked() {
	a.stopTimerLocked()
	a.invalidateLocked()
	a.state.Term = ""
	a.state.Suggestions = nil
	a.state.Loading = false
	a.state.Visible = false
}

func (a *Autocomplete) stopTimerLocked() {
	a.sched++
	a.state.Pending = false
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// invalidateLocked makes any in-flight response stale.
func (a *Autocomplete) invalidateLocked() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
		a.state.Epoch++
	}
}
