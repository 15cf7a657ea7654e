package facts

import (
	"context"
	"errors"
	"log"

	"github.com/aviy453/visiosson/internal/store"
)

// CachedProvider wraps another provider with the store's fact cache. Cache
// hits skip the inner provider entirely; successful fetches are written
// back. Cache write failures are logged, never surfaced, since the fetched
// fact itself is still good.
type CachedProvider struct {
	inner Provider
	cache *store.FactRepository
}

// NewCachedProvider creates a CachedProvider over inner backed by cache.
func NewCachedProvider(inner Provider, cache *store.FactRepository) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		cache: cache,
	}
}

// RequestFact returns the cached fact when present, otherwise fetches from
// the inner provider and stores the result.
func (p *CachedProvider) RequestFact(ctx context.Context, topic string) (string, error) {
	if f, err := p.cache.Get(topic); err == nil {
		return f.Content, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("fact cache read failed for %q: %v", topic, err)
	}

	fact, err := p.inner.RequestFact(ctx, topic)
	if err != nil {
		return "", err
	}

	if err := p.cache.Put(topic, fact); err != nil {
		log.Printf("fact cache write failed for %q: %v", topic, err)
	}

	return fact, nil
}
