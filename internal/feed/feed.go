// Package feed serves ranked posts through a tag cache.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/readon-gr/readon/internal/entities"
	"github.com/readon-gr/readon/internal/ranking"
	"github.com/readon-gr/readon/internal/storage"
	"github.com/readon-gr/readon/internal/tagcache"
)

// PostsTag is attached to every feed entry.
const PostsTag = "posts"

var log = logrus.WithField("layer", "service").WithField("package", "feed")

// nolint:gochecknoglobals
var requests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "readon_feed_requests_total",
	Help: "Feed requests by sort and cache result",
}, []string{"sort", "result"})

// Feed ...
type Feed struct {
	s   storage.Storage
	c   *tagcache.Cache
	now func() time.Time
}

// New creates new instance of Feed.
func New(s storage.Storage, c *tagcache.Cache, now func() time.Time) *Feed {
	if now == nil {
		now = time.Now
	}

	return &Feed{
		s:   s,
		c:   c,
		now: now,
	}
}

// TTL returns how long a ranked list of the sort stays cached.
func TTL(s ranking.Sort) time.Duration {
	if s == ranking.Hot {
		return 30 * time.Minute
	}

	return time.Hour
}

// SortTag returns tag of all feed entries with the sort.
func SortTag(s ranking.Sort) string {
	return fmt.Sprintf("%s-%s", PostsTag, s)
}

// CommunityTag returns tag of all feed entries of the community.
func CommunityTag(c entities.Community) string {
	return fmt.Sprintf("community-%s", c)
}

// Posts returns ranked posts. Returned slice is shared between callers and must not be modified.
func (f *Feed) Posts(ctx context.Context, s ranking.Sort, community *entities.Community) ([]entities.RankedPost, error) {
	key := string(s)
	tags := []string{PostsTag, SortTag(s)}
	if community != nil {
		key = fmt.Sprintf("%s/%s", s, *community)
		tags = append(tags, CommunityTag(*community))
	}

	v, cached, err := f.c.Fetch(ctx, key, TTL(s), tags, func(ctx context.Context) (interface{}, error) {
		return f.load(ctx, s, community)
	})
	if err != nil {
		requests.WithLabelValues(string(s), "error").Inc()
		return nil, err
	}

	if cached {
		requests.WithLabelValues(string(s), "hit").Inc()
	} else {
		requests.WithLabelValues(string(s), "miss").Inc()
	}

	return v.([]entities.RankedPost), nil
}

// Invalidate expires all cached feeds.
func (f *Feed) Invalidate() {
	n := f.c.Invalidate(PostsTag)
	log.WithField("entries", n).Debug("feed invalidated")
}

func (f *Feed) load(ctx context.Context, s ranking.Sort, community *entities.Community) ([]entities.RankedPost, error) {
	p := storage.ListPostsParams{
		SortBy:    storage.CreatedAtSortType,
		Limit:     ranking.Limit,
		Community: community,
	}
	if s == ranking.Top {
		p.SortBy = storage.ScoreSortType
	}

	posts, err := f.s.ListPosts(ctx, &p)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return ranking.Rank(s, posts, f.now()), nil
}
