package source

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/surveycharts/pkg/cache"
	"github.com/matzehuels/surveycharts/pkg/survey"
)

// Cached serves a [Snapshotter]'s dataset from a cache. Other sources pass
// straight through. Entries live for the shorter of TTL and the source's
// SnapshotTTL.
type Cached struct {
	Inner Source
	Cache cache.Cache
	Keyer cache.Keyer
	TTL   time.Duration
	// Refresh bypasses the cached copy and stores a fresh one.
	Refresh bool
	Logger  *log.Logger
}

func (c *Cached) Name() string { return c.Inner.Name() }

func (c *Cached) Load(ctx context.Context) (*survey.Dataset, error) {
	snap, ok := c.Inner.(Snapshotter)
	if !ok {
		return c.Inner.Load(ctx)
	}
	ttl := snap.SnapshotTTL()
	if c.TTL > 0 && (ttl <= 0 || c.TTL < ttl) {
		ttl = c.TTL
	}

	key := c.Keyer.DatasetKey(c.Inner.Name())
	if !c.Refresh {
		data, ok, err := c.Cache.Get(ctx, key)
		if err != nil {
			c.logger().Warn("dataset cache read failed", "source", c.Name(), "error", err)
		}
		if ok {
			ds, err := survey.ReadDataset(bytes.NewReader(data))
			if err == nil {
				c.logger().Debug("dataset cache hit", "source", c.Name())
				return ds, nil
			}
			_ = c.Cache.Delete(ctx, key)
		}
	}

	ds, err := c.Inner.Load(ctx)
	if err != nil {
		return nil, err
	}
	data, err := survey.MarshalDataset(ds)
	if err == nil {
		err = c.Cache.Set(ctx, key, data, ttl)
	}
	if err != nil {
		c.logger().Warn("dataset cache write failed", "source", c.Name(), "error", err)
	}
	return ds, nil
}

// Invalidate drops the cached snapshot of the inner source, e.g. after new
// data was written to it.
func (c *Cached) Invalidate(ctx context.Context) error {
	return c.Cache.Delete(ctx, c.Keyer.DatasetKey(c.Inner.Name()))
}

// Close closes the inner source.
func (c *Cached) Close(ctx context.Context) error {
	return Close(ctx, c.Inner)
}

func (c *Cached) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}
