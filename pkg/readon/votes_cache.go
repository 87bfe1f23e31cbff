package readon

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const (
	// VotesKey is a store key of persisted votes.
	VotesKey = "readon_user_votes"
	// VotesTTL ...
	VotesTTL = 30 * time.Minute
)

var log = logrus.WithField("layer", "client").WithField("package", "readon")

// VotesFetcher requests votes of the signed in user.
type VotesFetcher interface {
	UserVotes(ctx context.Context, postIDs []string) (map[string]VoteType, error)
}

type votesBlob struct {
	Votes     map[string]VoteType `json:"votes"`
	Timestamp int64               `json:"timestamp"`
	UserID    string              `json:"userId,omitempty"`
}

// VotesCache keeps votes of one user by post id.
// A cached NoVote means the user is known to have no vote on the post.
type VotesCache struct {
	store   Store
	fetcher VotesFetcher
	now     func() time.Time

	mu     sync.RWMutex
	userID string
	votes  map[string]VoteType

	l listeners
}

// NewVotesCache creates new instance of VotesCache. The cache is empty until Init.
func NewVotesCache(store Store, fetcher VotesFetcher, now func() time.Time) *VotesCache {
	if now == nil {
		now = time.Now
	}

	return &VotesCache{
		store:   store,
		fetcher: fetcher,
		now:     now,
		votes:   map[string]VoteType{},
	}
}

// Init scopes the cache to the user and loads persisted votes.
// Persisted votes of another user or older than VotesTTL are discarded.
// Empty userID means there is no signed in user.
func (c *VotesCache) Init(ctx context.Context, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.userID = userID
	c.votes = map[string]VoteType{}

	if userID == "" {
		return
	}

	data, err := c.store.Get(ctx, VotesKey)
	if err != nil {
		if !errors.Is(err, ErrMissing) {
			log.WithError(err).Error("failed to load votes cache")
		}
		return
	}

	var blob votesBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		log.WithError(err).Error("failed to decode votes cache")
		return
	}

	if blob.UserID != userID || c.now().Sub(time.UnixMilli(blob.Timestamp)) >= VotesTTL {
		if err := c.store.Delete(ctx, VotesKey); err != nil {
			log.WithError(err).Error("failed to delete votes cache")
		}
		log.Debug("votes cache of other user or expired is cleared")
		return
	}

	if blob.Votes != nil {
		c.votes = blob.Votes
	}
}

// UserID returns id of the user the cache is scoped to.
func (c *VotesCache) UserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.userID
}

// GetVote returns cached vote. ok is false when the vote is unknown.
func (c *VotesCache) GetVote(postID string) (VoteType, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.votes[postID]
	return v, ok
}

// SetVote stores the vote and notifies listeners. NoVote marks the post as known to have no vote.
func (c *VotesCache) SetVote(ctx context.Context, postID string, v VoteType) {
	c.mu.Lock()
	c.votes[postID] = v
	c.save(ctx)
	c.mu.Unlock()

	c.l.notify()
}

// FetchVotes requests unknown votes of the posts and merges them into the cache.
// Requested posts absent in the response are cached as NoVote.
func (c *VotesCache) FetchVotes(ctx context.Context, postIDs []string) error {
	if c.UserID() == "" {
		return nil
	}

	missing := c.MissingPostIDs(postIDs)
	if len(missing) == 0 {
		return nil
	}

	votes, err := c.fetcher.UserVotes(ctx, missing)
	if err != nil {
		return err
	}

	c.mu.Lock()
	for _, id := range missing {
		if _, ok := c.votes[id]; !ok {
			c.votes[id] = votes[id]
		}
	}
	c.save(ctx)
	c.mu.Unlock()

	c.l.notify()

	return nil
}

// MissingPostIDs returns ids which are not in the cache.
func (c *VotesCache) MissingPostIDs(postIDs []string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return lo.Uniq(lo.Filter(postIDs, func(id string, _ int) bool {
		_, ok := c.votes[id]
		return !ok
	}))
}

// AddListener registers fn to be called after every change. Call returned func to remove it.
func (c *VotesCache) AddListener(fn func()) func() {
	return c.l.add(fn)
}

// Clear drops cached and persisted votes.
func (c *VotesCache) Clear(ctx context.Context) {
	c.mu.Lock()
	c.votes = map[string]VoteType{}
	c.mu.Unlock()

	if err := c.store.Delete(ctx, VotesKey); err != nil {
		log.WithError(err).Error("failed to delete votes cache")
	}
}

func (c *VotesCache) save(ctx context.Context) {
	if c.userID == "" {
		return
	}

	data, err := json.Marshal(votesBlob{
		Votes:     c.votes,
		Timestamp: c.now().UnixMilli(),
		UserID:    c.userID,
	})
	if err != nil {
		log.WithError(err).Error("failed to encode votes cache")
		return
	}

	if err := c.store.Set(ctx, VotesKey, data); err != nil {
		log.WithError(err).Error("failed to save votes cache")
	}
}
