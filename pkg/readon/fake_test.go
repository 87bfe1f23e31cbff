package readon

import (
	"context"
	"errors"
	"time"

	"github.com/readon-gr/readon/internal/entities"
	"github.com/readon-gr/readon/internal/voting"
)

var errTest = errors.New("test")

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	return c.t
}

// fakeAPI keeps votes of a single user the way the server does.
type fakeAPI struct {
	votes  map[string]VoteType
	counts map[string]Counts
	err    error

	requested [][]string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		votes:  map[string]VoteType{},
		counts: map[string]Counts{},
	}
}

func (f *fakeAPI) Vote(_ context.Context, postID string, v VoteType) (*VoteResponse, error) {
	if f.err != nil {
		return nil, f.err
	}

	t := voting.Resolve(entities.VoteType(f.votes[postID]), entities.VoteType(v))
	c := f.counts[postID]
	next := t.Apply(entities.Counts{Upvotes: c.Upvotes, Downvotes: c.Downvotes})
	f.counts[postID] = Counts{Upvotes: next.Upvotes, Downvotes: next.Downvotes}

	if t.Action == voting.Delete {
		delete(f.votes, postID)
		return &VoteResponse{}, nil
	}

	f.votes[postID] = v
	pid := postID

	return &VoteResponse{
		Created: t.Action == voting.Insert,
		Vote:    &Vote{ID: "v-" + postID, PostID: &pid, VoteType: v},
	}, nil
}

func (f *fakeAPI) UserVotes(_ context.Context, postIDs []string) (map[string]VoteType, error) {
	f.requested = append(f.requested, postIDs)
	if f.err != nil {
		return nil, f.err
	}

	out := map[string]VoteType{}
	for _, id := range postIDs {
		if v, ok := f.votes[id]; ok {
			out[id] = v
		}
	}

	return out, nil
}

func (f *fakeAPI) PostCounts(_ context.Context, postIDs []string) (map[string]Counts, error) {
	f.requested = append(f.requested, postIDs)
	if f.err != nil {
		return nil, f.err
	}

	out := map[string]Counts{}
	for _, id := range postIDs {
		if v, ok := f.counts[id]; ok {
			out[id] = v
		}
	}

	return out, nil
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error) { return nil, errTest }
func (brokenStore) Set(context.Context, string, []byte) error   { return errTest }
func (brokenStore) Delete(context.Context, string) error        { return errTest }
