package app

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// baseLoader fetches the base catalog at most once per success. Concurrent
// callers share a single in-flight fetch; a failed fetch is not cached.
type baseLoader struct {
	src   BaseSource
	group singleflight.Group

	mu     sync.Mutex
	cached *domain.Catalog
}

func newBaseLoader(src BaseSource) *baseLoader {
	return &baseLoader{src: src}
}

func (l *baseLoader) get(ctx context.Context) (domain.Catalog, error) {
	if c, ok := l.peek(); ok {
		return c, nil
	}
	v, err, _ := l.group.Do("base", func() (any, error) {
		if c, ok := l.peek(); ok {
			return c, nil
		}
		c, err := l.src.Fetch(ctx)
		if err != nil {
			return domain.Catalog{}, err
		}
		l.mu.Lock()
		l.cached = &c
		l.mu.Unlock()
		return c, nil
	})
	if err != nil {
		return domain.Catalog{}, err
	}
	return v.(domain.Catalog), nil
}

func (l *baseLoader) peek() (domain.Catalog, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cached == nil {
		return domain.Catalog{}, false
	}
	return *l.cached, true
}
