package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/collegeportal/internal/client/search"
)

// Search looks a college up by name: "search [term]". The suggestions come
// from the debounced autocomplete; picking one opens the college.
func (a *App) Search(ctx context.Context, args []string) error {
	term := strings.Join(args, " ")
	if term == "" {
		var err error
		term, err = getSimpleText(a.reader, "Search colleges by name", a.out)
		if err != nil {
			return err
		}
	}

	var selected string
	ac := search.New(a.searcher, search.Options{
		Debounce:      a.config.SearchDebounce,
		Limit:         a.config.SearchLimit,
		LookupTimeout: a.config.LookupTimeout,
		AfterFunc:     a.afterFunc,
		Navigate:      func(id string) { selected = id },
		Logger:        a.log,
	})
	defer ac.Close()

	settled := make(chan search.State, 1)
	ac.Subscribe(func(s search.State) {
		if s.Epoch > 0 && !s.Loading {
			select {
			case settled <- s:
			default:
			}
		}
	})

	ac.OnFocus()
	ac.OnTermChange(term)

	// nothing scheduled and nothing issued: the term was too short
	if st := ac.State(); !st.Pending && !st.Loading && st.Epoch == 0 {
		printlnFn(fmt.Sprintf("Type at least %d characters to search", search.MinTermLength))
		return nil
	}

	var st search.State
	select {
	case st = <-settled:
	case <-ctx.Done():
		return ctx.Err()
	}

	if len(st.Suggestions) == 0 {
		printlnFn("No colleges found")
		ac.OnClear()
		return nil
	}
	for i, c := range st.Suggestions {
		printlnFn(i+1, c.Name)
	}

	i, ok, err := pick(a.reader, "Pick a college (empty to cancel)", len(st.Suggestions), a.out)
	if err != nil || !ok {
		ac.OnClear()
		return err
	}

	ac.OnPointerDown(search.PointerList)
	ac.OnSelect(st.Suggestions[i])
	ac.OnPointerUp()
	return a.College(ctx, []string{selected})
}
