package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/snappy"
)

// Compressed stores entries of inner snappy-compressed. SVG and JSON
// artifacts shrink to a fraction of their size.
func Compressed(inner Cache) Cache {
	return &compressedCache{inner: inner}
}

type compressedCache struct {
	inner Cache
}

func (c *compressedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.inner.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	out, err := snappy.Decode(nil, data)
	if err != nil {
		_ = c.inner.Delete(ctx, key)
		return nil, false, nil
	}
	return out, true, nil
}

func (c *compressedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, key, snappy.Encode(nil, data), ttl)
}

func (c *compressedCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c *compressedCache) Clear(ctx context.Context) error {
	return Clear(ctx, c.inner)
}

func (c *compressedCache) Close() error {
	return c.inner.Close()
}

// Decompress decodes a payload written by [Compressed].
func Decompress(data []byte) ([]byte, error) {
	out, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return out, nil
}
