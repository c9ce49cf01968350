// File path: internal/content/cache.go
package content

import (
	"context"
	"sync"
	"time"
)

// CachingProvider wraps another provider and serves the same snapshot for up
// to ttl. Catalog reads happen on every request; caching keeps file or
// database backends off the hot path without giving up freshness entirely.
type CachingProvider struct {
	inner Provider
	ttl   time.Duration
	now   func() time.Time

	mu      sync.Mutex
	catalog Catalog
	loaded  time.Time
	valid   bool
}

// NewCachingProvider wraps inner with a ttl-bounded snapshot cache. A
// non-positive ttl disables expiry; the cache then only refreshes through
// Invalidate.
func NewCachingProvider(inner Provider, ttl time.Duration) *CachingProvider {
	return &CachingProvider{inner: inner, ttl: ttl, now: time.Now}
}

// Snapshot returns the cached catalog, refreshing from the inner provider
// when the cache is empty or expired. A failed refresh never poisons the
// cache; the previous snapshot stays invalid and the error propagates.
func (p *CachingProvider) Snapshot(ctx context.Context) (Catalog, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.valid && (p.ttl <= 0 || p.now().Sub(p.loaded) < p.ttl) {
		return p.catalog, nil
	}
	catalog, err := p.inner.Snapshot(ctx)
	if err != nil {
		return Catalog{}, err
	}
	p.catalog = catalog
	p.loaded = p.now()
	p.valid = true
	return catalog, nil
}

// Invalidate drops the cached snapshot so the next Snapshot call reloads.
func (p *CachingProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.valid = false
	p.catalog = Catalog{}
}
