package readon

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/samber/lo"
)

const (
	// CountsKey is a store key of persisted counts.
	CountsKey = "readon_post_counts"
	// CountsTTL ...
	CountsTTL = 5 * time.Minute
)

// CountsFetcher requests vote counts of posts.
type CountsFetcher interface {
	PostCounts(ctx context.Context, postIDs []string) (map[string]Counts, error)
}

type countsBlob struct {
	Counts    map[string]Counts `json:"counts"`
	Timestamp int64             `json:"timestamp"`
}

// CountsCache keeps vote counts by post id.
type CountsCache struct {
	store   Store
	fetcher CountsFetcher
	now     func() time.Time

	mu     sync.RWMutex
	counts map[string]Counts

	l listeners
}

// NewCountsCache creates new instance of CountsCache.
func NewCountsCache(store Store, fetcher CountsFetcher, now func() time.Time) *CountsCache {
	if now == nil {
		now = time.Now
	}

	return &CountsCache{
		store:   store,
		fetcher: fetcher,
		now:     now,
		counts:  map[string]Counts{},
	}
}

// Init loads persisted counts unless they are older than CountsTTL.
func (c *CountsCache) Init(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts = map[string]Counts{}

	data, err := c.store.Get(ctx, CountsKey)
	if err != nil {
		if !errors.Is(err, ErrMissing) {
			log.WithError(err).Error("failed to load counts cache")
		}
		return
	}

	var blob countsBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		log.WithError(err).Error("failed to decode counts cache")
		return
	}

	if c.now().Sub(time.UnixMilli(blob.Timestamp)) >= CountsTTL {
		if err := c.store.Delete(ctx, CountsKey); err != nil {
			log.WithError(err).Error("failed to delete counts cache")
		}
		log.Debug("expired counts cache is cleared")
		return
	}

	if blob.Counts != nil {
		c.counts = blob.Counts
	}
}

// GetCounts returns cached counts, ok is false when they are unknown.
func (c *CountsCache) GetCounts(postID string) (Counts, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.counts[postID]
	return v, ok
}

// SetCounts stores counts and notifies listeners.
func (c *CountsCache) SetCounts(ctx context.Context, postID string, v Counts) {
	c.mu.Lock()
	c.counts[postID] = v
	c.save(ctx)
	c.mu.Unlock()

	c.l.notify()
}

// FetchCounts requests counts of the posts and overwrites cached ones.
func (c *CountsCache) FetchCounts(ctx context.Context, postIDs []string) error {
	ids := lo.Uniq(postIDs)
	if len(ids) == 0 {
		return nil
	}

	counts, err := c.fetcher.PostCounts(ctx, ids)
	if err != nil {
		return err
	}

	c.mu.Lock()
	for k, v := range counts {
		c.counts[k] = v
	}
	c.save(ctx)
	c.mu.Unlock()

	c.l.notify()

	return nil
}

// MissingPostIDs returns ids which are not in the cache.
func (c *CountsCache) MissingPostIDs(postIDs []string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return lo.Uniq(lo.Filter(postIDs, func(id string, _ int) bool {
		_, ok := c.counts[id]
		return !ok
	}))
}

// AddListener registers fn to be called after every change. Call returned func to remove it.
func (c *CountsCache) AddListener(fn func()) func() {
	return c.l.add(fn)
}

// Clear drops cached and persisted counts.
func (c *CountsCache) Clear(ctx context.Context) {
	c.mu.Lock()
	c.counts = map[string]Counts{}
	c.mu.Unlock()

	if err := c.store.Delete(ctx, CountsKey); err != nil {
		log.WithError(err).Error("failed to delete counts cache")
	}
}

func (c *CountsCache) save(ctx context.Context) {
	data, err := json.Marshal(countsBlob{
		Counts:    c.counts,
		Timestamp: c.now().UnixMilli(),
	})
	if err != nil {
		log.WithError(err).Error("failed to encode counts cache")
		return
	}

	if err := c.store.Set(ctx, CountsKey, data); err != nil {
		log.WithError(err).Error("failed to save counts cache")
	}
}
