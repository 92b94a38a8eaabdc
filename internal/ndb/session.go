package ndb

import (
	"context"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// sessionCache holds the session token derived from a basic credential. It is
// the only mutable state shared between concurrent tool invocations.
type sessionCache struct {
	mu    sync.RWMutex
	token *oauth2.Token
	group singleflight.Group

	// timeout bounds a shared acquisition, which outlives any single caller.
	timeout time.Duration
	fetch   func(ctx context.Context) (*oauth2.Token, error)
}

// Token returns the cached token or acquires a new one. Concurrent callers
// that find the cache empty share a single acquisition. A caller whose
// context ends stops waiting; the acquisition continues for the others.
func (c *sessionCache) Token(ctx context.Context) (*oauth2.Token, error) {
	c.mu.RLock()
	tok := c.token
	c.mu.RUnlock()

	if tok.Valid() {
		return tok, nil
	}

	ch := c.group.DoChan("session", func() (interface{}, error) {
		c.mu.RLock()
		current := c.token
		c.mu.RUnlock()
		if current.Valid() {
			return current, nil
		}

		fetchCtx, cancel := c.detach(ctx)
		defer cancel()

		fresh, err := c.fetch(fetchCtx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.token = fresh
		c.mu.Unlock()
		return fresh, nil
	})

	select {
	case <-ctx.Done():
		return nil, classifyTransport(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*oauth2.Token), nil
	}
}

// detach keeps the caller's values (trace context) but not its cancellation.
func (c *sessionCache) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := c.timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

// Invalidate drops the cached token so the next call acquires a new one.
func (c *sessionCache) Invalidate() {
	c.mu.Lock()
	c.token = nil
	c.mu.Unlock()
}
