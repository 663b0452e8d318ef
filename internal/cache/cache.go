package cache

import (
	"context"
	"time"
)

// SitemapKey caches the rendered sitemap document. Content mutation
// handlers delete it so the sitemap never outlives the content it lists.
const SitemapKey = "sitemap:xml"

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

type NoopCache struct{}

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (n *NoopCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (n *NoopCache) Delete(ctx context.Context, key string) error {
	return nil
}

func (n *NoopCache) DeletePrefix(ctx context.Context, prefix string) error {
	return nil
}
