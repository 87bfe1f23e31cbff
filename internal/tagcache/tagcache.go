// Package tagcache is an in-memory ttl cache which entries can be expired in bulk by tags.
package tagcache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Loader loads a value on cache miss.
type Loader func(ctx context.Context) (interface{}, error)

type entry struct {
	value     interface{}
	expiresAt time.Time
	tags      []string
}

// Cache ...
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	tags    map[string]map[string]struct{}
	// generation is increased on every invalidation, loads started before it are not stored.
	generation uint64

	now   func() time.Time
	group singleflight.Group
}

// Option ...
type Option func(c *Cache)

// WithClock sets clock used for expiration.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates new instance of Cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: map[string]entry{},
		tags:    map[string]map[string]struct{}{},
		now:     time.Now,
	}

	for _, o := range opts {
		o(c)
	}

	return c
}

// Get returns value stored by key if it is not expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.get(key)
}

// Set stores value for ttl and attaches tags to it.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration, tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.set(key, value, ttl, tags)
}

// Invalidate removes all entries which have any of tags. It returns count of removed entries.
func (c *Cache) Invalidate(tags ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++

	var n int
	for _, tag := range tags {
		for key := range c.tags[tag] {
			if _, ok := c.entries[key]; ok {
				c.delete(key)
				n++
			}
		}
		delete(c.tags, tag)
	}

	return n
}

// LoadTimeout limits a shared load, which is detached from the callers' contexts.
const LoadTimeout = 30 * time.Second

// Fetch returns cached value or loads it using loader.
// Concurrent fetches of the same missing key share one loader call.
// The load is not bound to any caller's context: a cancelled caller returns its own ctx error
// while the others keep waiting for the result.
// The second returned value is true when the value was taken from cache without loading.
func (c *Cache) Fetch(ctx context.Context, key string, ttl time.Duration, tags []string, loader Loader) (interface{}, bool, error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		c.mu.Lock()
		if v, ok := c.get(key); ok {
			c.mu.Unlock()
			return v, nil
		}
		generation := c.generation
		c.mu.Unlock()

		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LoadTimeout)
		defer cancel()

		v, err := loader(lctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if generation == c.generation {
			c.set(key, v, ttl, tags)
		}
		c.mu.Unlock()

		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		return res.Val, false, res.Err
	}
}

// Len returns count of stored entries, including expired but not yet evicted ones.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *Cache) get(key string) (interface{}, bool) {
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if !c.now().Before(e.expiresAt) {
		c.delete(key)
		return nil, false
	}

	return e.value, true
}

func (c *Cache) set(key string, value interface{}, ttl time.Duration, tags []string) {
	if _, ok := c.entries[key]; ok {
		c.delete(key)
	}

	c.entries[key] = entry{
		value:     value,
		expiresAt: c.now().Add(ttl),
		tags:      tags,
	}

	for _, tag := range tags {
		keys, ok := c.tags[tag]
		if !ok {
			keys = map[string]struct{}{}
			c.tags[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

func (c *Cache) delete(key string) {
	e := c.entries[key]
	delete(c.entries, key)

	for _, tag := range e.tags {
		if keys, ok := c.tags[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.tags, tag)
			}
		}
	}
}
