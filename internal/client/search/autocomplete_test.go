package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/collegeportal/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- manual clock ----

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return &manualHandle{c: c, t: t}
}

type manualHandle struct {
	c *manualClock
	t *manualTimer
}

func (h *manualHandle) Stop() bool {
	h.c.mu.Lock()
	defer h.c.mu.Unlock()
	live := !h.t.stopped && !h.t.fired
	h.t.stopped = true
	return live
}

// elapse fires every live timer and returns how many fired.
func (c *manualClock) elapse() int {
	c.mu.Lock()
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
	return len(due)
}

func (c *manualClock) scheduled() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// ---- fake searcher ----

type fakeSearcher struct {
	mu      sync.Mutex
	calls   []string
	limits  []int
	results map[string][]models.CollegeSummary
	errs    map[string]error
	// gates hold a lookup until closed, ignoring cancellation like a slow server
	gates   map[string]chan struct{}
	ctxErrs map[string]error
	waitCtx bool
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{
		results: map[string][]models.CollegeSummary{},
		errs:    map[string]error{},
		gates:   map[string]chan struct{}{},
		ctxErrs: map[string]error{},
	}
}

func (f *fakeSearcher) SearchColleges(ctx context.Context, term string, limit int) ([]models.CollegeSummary, error) {
	f.mu.Lock()
	f.calls = append(f.calls, term)
	f.limits = append(f.limits, limit)
	gate := f.gates[term]
	waitCtx := f.waitCtx
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if waitCtx {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctxErrs[term] = ctx.Err()
	return f.results[term], f.errs[term]
}

func (f *fakeSearcher) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func colleges(names ...string) []models.CollegeSummary {
	out := make([]models.CollegeSummary, 0, len(names))
	for i, n := range names {
		out = append(out, models.CollegeSummary{ID: string(rune('a' + i)), Name: n})
	}
	return out
}

func newTestAutocomplete(api Searcher, clock *manualClock, opts Options) *Autocomplete {
	opts.AfterFunc = clock.AfterFunc
	return New(api, opts)
}

// ---- debounce ----

func TestBurstIssuesOneLookupForFinalTerm(t *testing.T) {
	api := newFakeSearcher()
	api.results["Har"] = colleges("Harvard", "Harvey Mudd")
	clock := &manualClock{}
	a := newTestAutocomplete(api, clock, Options{})

	a.OnTermChange("H")
	a.OnTermChange("Ha")
	a.OnTermChange("Har")
	require.Equal(t, "Har", a.State().Term)

	require.Equal(t, 1, clock.elapse())
	a.wg.Wait()

	require.Equal(t, []string{"Har"}, api.seen())
	require.Equal(t, []int{DefaultLimit}, api.limits)

	s := a.State()
	assert.Equal(t, colleges("Harvard", "Harvey Mudd"), s.Suggestions)
	assert.False(t, s.Loading)
	assert.Equal(t, uint64(1), s.Epoch)
}

func TestQuietPeriodIsConfigurable(t *testing.T) {
	clock := &manualClock{}
	a := newTestAutocomplete(newFakeSearcher(), clock, Options{})
	a.OnTermChange("Yale")
	require.Equal(t, DefaultDebounce, clock.timers[0].d)

	clock2 := &manualClock{}
	b := newTestAutocomplete(newFakeSearcher(), clock2, Options{Debounce: 50 * time.Millisecond})
	b.OnTermChange("Yale")
	require.Equal(t, 50*time.Millisecond, clock2.timers[0].d)
}

func TestSupersededTimerDoesNothing(t *testing.T) {
	api := newFakeSearcher()
	clock := &manualClock{}
	a := newTestAutocomplete(api, clock, Options{})

	a.OnTermChange("Ox")
	stale := clock.timers[0].f
	a.OnTermChange("Oxf")

	// a timer that already started running when it was stopped
	stale()
	require.Empty(t, api.seen())

	clock.elapse()
	a.wg.Wait()
	require.Equal(t, []string{"Oxf"}, api.seen())
}

func TestShortTermNeverLooksUp(t *testing.T) {
	api := newFakeSearcher()
	clock := &manualClock{}
	a := newTestAutocomplete(api, clock, Options{})

	for _, term := range []string{"", "a", " a ", "   ", "é"} {
		a.OnTermChange(term)
		s := a.State()
		assert.Empty(t, s.Suggestions)
		assert.False(t, s.Loading)
		assert.False(t, s.Pending)
		assert.Zero(t, s.Epoch)
	}
	require.Zero(t, clock.scheduled())
	require.Zero(t, clock.elapse())
	require.Empty(t, api.seen())
}

func TestPendingCoversQuietPeriodOnly(t *testing.T) {
	api := newFakeSearcher()
	api.results["Yale"] = colleges("Yale")
	clock := &manualClock{}
	a := newTestAutocomplete(api, clock, Options{})

	a.OnTermChange("Yal")
	require.True(t, a.State().Pending)

	a.OnTermChange("Y")
	require.False(t, a.State().Pending)

	a.OnTermChange("Yale")
	require.True(t, a.State().Pending)
	clock.elapse()
	a.wg.Wait()

	s := a.State()
	require.False(t, s.Pending)
	require.False(t, s.Loading)
	require.Equal(t, colleges("Yale"), s.Suggestions)
}

func TestShortTermClearsEarlierSuggestions(t *testing.T) {
	api := newFakeSearcher()
	api.results["Har"] = colleges("Harvard")
	clock := &manualClock{}
	a := newTestAutocomplete(api, clock, Options{})

	a.OnTermChange("Har")
	clock.elapse()
	a.wg.Wait()
	require.Len(t, a.State().Suggestions, 1)

	a.OnTermChange("H")
	s := a.State()
	assert.Equal(t, "H", s.Term)
	assert.Empty(t, s.Suggestions)
	assert.False(t, s.Loading)
}

func TestTermIsTrimmedForLookup(t *testing.T) {
	api := newFakeSearcher()
	clock := &manualClock{}
	a := newTestAutocomplete(api, clock, Options{Limit: 3})

	a.OnTermChange("  MIT ")
	clock.elapse()
	a.wg.Wait()

	require.Equal(t, []string{"MIT"}, api.seen())
	require.Equal(t, []int{3}, api.limits)
	require.Equal(t, "  MIT ", a.State().Term)
}

// ---- epoch ----

func TestStaleResponseIsDiscarded(t *testing.T) {
	api := newFakeSearcher()
	api.results["Ox"] = colleges("Oxford Brookes")
	api.results["Oxf"] = colleges("Oxford")
	api.gates["Ox"] = make(chan struct{})
	clock := &manualClock{}
	a := newTestAutocomplete(api, clock, Options{})

	a.OnTermChange("Ox")
	clock.elapse()
	require.True(t, a.State().Loading)

	a.OnTermChange("Oxf")
	clock.elapse()

	require.Eventually(t, func() bool {
		s := a.State()
		return !s.Loading && len(s.Suggestions) == 1
	}, time.Second, time.Millisecond)
	require.Equal(t, colleges("Oxford"), a.State().Suggestions)

	// the older lookup answers last
	close(api.gates["Ox"])
	a.wg.Wait()

	s := a.State()
	assert.Equal(t, colleges("Oxford"), s.Suggestions)
	assert.Equal(t, uint64(2), s.Epoch)
}

func TestClearDropsInFlightLookup(t *testing.T) {
	api := newFakeSearcher()
	api.results["Oxford"] = colleges("Oxford")
	api.gates["Oxford"] = make(chan struct{})
	clock := &manualClock{}
	a := newTestAutocomplete(api, clock, Options{})

	a.OnFocus()
	a.OnTermChange("Oxford")
	clock.elapse()
	require.True(t, a.State().Loading)

	a.OnClear()
	cleared := a.State()
	require.Equal(t, State{Epoch: cleared.Epoch}, cleared)

	close(api.gates["Oxford"])
	a.wg.Wait()

	s := a.State()
	assert.Empty(t, s.Suggestions)
	assert.Empty(t, s.Term)
	assert.False(t, s.Loading)
	assert.ErrorIs(t, api.ctxErrs["Oxford"], context.Canceled)
}

func TestClearCancelsPendingTimer(t *testing.T) {
	api := newFakeSearcher()
	clock := &manualClock{}
	a := newTestAutocomplete(api, clock, Options{})

	a.OnTermChange("Yale")
	a.OnClear()

	require.Zero(t, clock.elapse())
	require.Empty(t, api.seen())
}

// ---- failures ----

func TestFailedLookupYieldsNoSuggestions(t *testing.T) {
	api := newFakeSearcher()
	api.results["Har"] = colleges("Harvard")
	api.errs["Harv"] = errors.New("503")
	clock := &manualClock{}
	a := newTestAutocomplete(api, clock, Options{})

	a.OnTermChange("Har")
	clock.elapse()
	a.wg.Wait()
	require.NotEmpty(t, a.State().Suggestions)

	a.OnTermChange("Harv")
	clock.elapse()
	a.wg.Wait()

	s := a.State()
	assert.Empty(t, s.Suggestions)
	assert.False(t, s.Loading)
}

func TestLookupTimeoutCountsAsFailure(t *testing.T) {
	api := newFakeSearcher()
	api.waitCtx = true
	clock := &manualClock{}
	a := newTestAutocomplete(api, clock, Options{LookupTimeout: 10 * time.Millisecond})

	a.OnTermChange("Stanford")
	clock.elapse()
	a.wg.Wait()

	s := a.State()
	assert.Empty(t, s.Suggestions)
	assert.False(t, s.Loading)
}

func TestSuggestionsCappedAtLimit(t *testing.T) {
	api := newFakeSearcher()
	api.results["Uni"] = colleges("A", "B", "C", "D")
	clock := &manualClock{}
	a := newTestAutocomplete(api, clock, Options{Limit: 2})

	a.OnTermChange("Uni")
	clock.elapse()
	a.wg.Wait()

	require.Equal(t, colleges("A", "B"), a.State().Suggestions)
}

// ---- selection and visibility ----

func TestSelectResetsAndNavigates(t *testing.T) {
	api := newFakeSearcher()
	api.results["Har"] = colleges("Harvard")
	clock := &manualClock{}
	var navigated []string
	a := newTestAutocomplete(api, clock, Options{Navigate: func(id string) { navigated = append(navigated, id) }})

	a.OnFocus()
	a.OnTermChange("Har")
	clock.elapse()
	a.wg.Wait()

	a.OnSelect(a.State().Suggestions[0])

	require.Equal(t, []string{"a"}, navigated)
	s := a.State()
	assert.Empty(t, s.Term)
	assert.Empty(t, s.Suggestions)
	assert.False(t, s.Visible)
}

func TestVisibility(t *testing.T) {
	a := newTestAutocomplete(newFakeSearcher(), &manualClock{}, Options{})
	require.False(t, a.State().Visible)

	a.OnFocus()
	require.True(t, a.State().Visible)

	a.OnTermChange("Ha")
	a.OnPointerDown(PointerOutside)
	s := a.State()
	require.False(t, s.Visible)
	require.Equal(t, "Ha", s.Term, "outside click keeps the term")

	a.OnFocus()
	a.OnPointerDown(PointerList)
	a.OnBlur()
	require.True(t, a.State().Visible, "pressing the list keeps it open across blur")

	a.OnPointerUp()
	require.False(t, a.State().Visible)

	a.OnFocus()
	a.OnBlur()
	require.False(t, a.State().Visible)
}

func TestSubscribersSeeEveryChange(t *testing.T) {
	api := newFakeSearcher()
	api.results["Yale"] = colleges("Yale")
	clock := &manualClock{}
	a := newTestAutocomplete(api, clock, Options{})

	var mu sync.Mutex
	var loading []bool
	a.Subscribe(func(s State) {
		mu.Lock()
		defer mu.Unlock()
		loading = append(loading, s.Loading)
	})

	a.OnTermChange("Yale")
	clock.elapse()
	a.wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []bool{false, true, false}, loading)
}

func TestCloseIgnoresLaterEvents(t *testing.T) {
	api := newFakeSearcher()
	clock := &manualClock{}
	a := newTestAutocomplete(api, clock, Options{})

	a.OnTermChange("Yale")
	a.Close()
	a.OnTermChange("Brown")

	require.Zero(t, clock.elapse())
	require.Empty(t, api.seen())
}
