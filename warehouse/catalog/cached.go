package catalog

import (
	"context"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

const defaultLookupTimeout = 5 * time.Second

var (
	// ErrNilChecker is returned by NewCachedCatalog without a catalog to wrap.
	ErrNilChecker = errors.New("catalog to cache must not be nil")

	// ErrInvalidLookupTimeout is returned by WithLookupTimeout for a timeout that is not positive.
	ErrInvalidLookupTimeout = errors.New("lookup timeout must be positive")
)

// CachedCatalog caches the books another catalog confirmed, and collapses concurrent lookups of one id into one.
// Misses and errors are not cached: a book unknown now may be added to the catalog later.
type CachedCatalog struct {
	next          Checker
	known         *lru.Cache[string, struct{}]
	group         singleflight.Group
	lookupTimeout time.Duration
}

// CachedOption configures a CachedCatalog.
type CachedOption func(*CachedCatalog) error

// WithLookupTimeout bounds a lookup of the wrapped catalog, 5s by default.
func WithLookupTimeout(timeout time.Duration) CachedOption {
	return func(c *CachedCatalog) error {
		if timeout <= 0 {
			return ErrInvalidLookupTimeout
		}

		c.lookupTimeout = timeout

		return nil
	}
}

// NewCachedCatalog wraps next with an LRU cache of size entries.
func NewCachedCatalog(next Checker, size int, opts ...CachedOption) (*CachedCatalog, error) {
	if next == nil {
		return nil, ErrNilChecker
	}

	known, err := lru.New[string, struct{}](size)
	if err != nil {
		return nil, err
	}

	c := &CachedCatalog{next: next, known: known, lookupTimeout: defaultLookupTimeout}

	for _, opt := range opts {
		if err = opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// BookExists answers from the cache, or asks the wrapped catalog once per id however many callers wait.
// The shared lookup does not end with the context of the caller that started it, only with the lookup timeout.
// Every caller stops waiting when its own context is done.
func (c *CachedCatalog) BookExists(ctx context.Context, bookID string) (bool, error) {
	if c.known.Contains(bookID) {
		return true, nil
	}

	results := c.group.DoChan(bookID, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.lookupTimeout)
		defer cancel()

		found, lookupErr := c.next.BookExists(lookupCtx, bookID)
		if lookupErr != nil {
			return false, lookupErr
		}

		if found {
			c.known.Add(bookID, struct{}{})
		}

		return found, nil
	})

	select {
	case result := <-results:
		if result.Err != nil {
			return false, result.Err
		}

		return result.Val.(bool), nil //nolint:forcetypeassert // the function above only returns bool

	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Len returns the number of cached books.
func (c *CachedCatalog) Len() int {
	return c.known.Len()
}
