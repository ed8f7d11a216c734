// Package roster holds the list and detail controllers that sit between the
// profile fetcher, the override store and any presentation layer.
package roster

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/zarlcorp/zcrowd/internal/profile"
	"golang.org/x/sync/singleflight"
)

// DefaultResultCount is the page size the app requests.
const DefaultResultCount = 20

// sharedFetchTimeout bounds a coalesced fetch that no caller can cancel.
const sharedFetchTimeout = time.Minute

// Fetcher retrieves a page of profiles.
type Fetcher interface {
	Fetch(ctx context.Context, resultCount int) (profile.Page, error)
}

// State is the list lifecycle.
type State int

const (
	Empty State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// List tracks the current page of profiles. It is safe for concurrent use.
type List struct {
	fetcher     Fetcher
	resultCount int
	group       singleflight.Group

	mu       sync.RWMutex
	state    State
	profiles []profile.Profile
	err      error
}

// NewList creates a list controller in the Empty state. A resultCount below
// one selects DefaultResultCount.
func NewList(f Fetcher, resultCount int) *List {
	if resultCount < 1 {
		resultCount = DefaultResultCount
	}
	return &List{fetcher: f, resultCount: resultCount}
}

// Refresh fetches a new page and replaces the current list with it. Calls
// made while a fetch is in flight share that fetch and its result. The shared
// fetch is detached from any one caller: cancelling ctx returns ctx.Err() to
// that caller only and the others still get the page.
func (l *List) Refresh(ctx context.Context) error {
	ch := l.group.DoChan("refresh", func() (any, error) {
		l.mu.Lock()
		l.state = Loading
		l.profiles = nil
		l.err = nil
		l.mu.Unlock()

		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()

		page, err := l.fetcher.Fetch(fctx, l.resultCount)

		l.mu.Lock()
		defer l.mu.Unlock()
		if err != nil {
			l.state = Failed
			l.err = err
			return nil, err
		}
		l.state = Loaded
		l.profiles = page.Results
		return nil, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Profiles returns a copy of the current profiles. It is empty unless the
// list is Loaded.
func (l *List) Profiles() []profile.Profile {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.state != Loaded {
		return nil
	}
	return slices.Clone(l.profiles)
}

// Len returns the number of loaded profiles.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.state != Loaded {
		return 0
	}
	return len(l.profiles)
}

func (l *List) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Loading reports whether a fetch is in flight.
func (l *List) Loading() bool {
	return l.State() == Loading
}

// Err returns the last fetch error while the list is Failed.
func (l *List) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}
