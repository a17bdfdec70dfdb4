package suggest

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"
)

// State tags where a Cache is in its single resolution attempt.
type State int

const (
	Unresolved State = iota
	Pending
	Resolved
	Failed
)

func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

var errNoSource = errors.New("no suggestion source configured")

// Cache is a resolve-once accessor over a Source. The first Load triggers
// the fetch, concurrent callers share the in-flight call, and every later
// call returns the settled result. A failed fetch settles to an empty list
// and is not retried.
type Cache struct {
	src  Source
	logf func(string, ...any)

	mu     sync.Mutex
	state  State
	list   []string
	flight singleflight.Group
}

// NewCache wraps src. logf receives fetch failures; nil discards them.
func NewCache(src Source, logf func(string, ...any)) *Cache {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Cache{src: src, logf: logf}
}

// State reports the current resolution state.
func (c *Cache) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Load returns the candidate list, fetching it on first use. It never
// returns an error: failures are logged and yield an empty list.
//
// The fetch does not inherit ctx's cancellation, so a caller that gives up
// early gets an empty list while the shared fetch keeps running for later
// callers.
func (c *Cache) Load(ctx context.Context) []string {
	if list, ok := c.settled(); ok {
		return list
	}
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan("load", func() (any, error) {
		if list, ok := c.settled(); ok {
			return list, nil
		}
		c.mu.Lock()
		c.state = Pending
		c.mu.Unlock()

		var list []string
		err := errNoSource
		if c.src != nil {
			list, err = c.src.Fetch(fetchCtx)
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			c.state = Failed
			c.list = nil
			c.logf("suggestions unavailable: %v", err)
			return []string(nil), nil
		}
		c.state = Resolved
		c.list = list
		c.logf("loaded %d suggestions", len(list))
		return list, nil
	})
	select {
	case r := <-ch:
		list, _ := r.Val.([]string)
		return append([]string(nil), list...)
	case <-ctx.Done():
		return nil
	}
}

func (c *Cache) settled() ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case Resolved, Failed:
		return append([]string(nil), c.list...), true
	}
	return nil, false
}
