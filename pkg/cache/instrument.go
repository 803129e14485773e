package cache

import (
	"context"
	"time"

	"github.com/matzehuels/surveycharts/pkg/observability"
)

// Instrumented reports hits, misses and writes on inner to the registered
// cache hooks, labelled with keyType.
func Instrumented(inner Cache, keyType string) Cache {
	return &instrumentedCache{inner: inner, keyType: keyType}
}

type instrumentedCache struct {
	inner   Cache
	keyType string
}

func (c *instrumentedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.inner.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, c.keyType)
		} else {
			observability.Cache().OnCacheMiss(ctx, c.keyType)
		}
	}
	return data, ok, err
}

func (c *instrumentedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.inner.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, c.keyType, len(data))
	}
	return err
}

func (c *instrumentedCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c *instrumentedCache) Clear(ctx context.Context) error {
	return Clear(ctx, c.inner)
}

func (c *instrumentedCache) Close() error {
	return c.inner.Close()
}
