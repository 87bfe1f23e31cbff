package readon

import (
	"context"
	"errors"

	"github.com/readon-gr/readon/internal/entities"
	"github.com/readon-gr/readon/internal/voting"
)

// ErrInvalidVote is returned for votes other than Upvote and Downvote.
var ErrInvalidVote = errors.New("invalid vote")

// VoteClient casts votes.
type VoteClient interface {
	Vote(ctx context.Context, postID string, v VoteType) (*VoteResponse, error)
}

// Voter casts votes and keeps votes and counts caches in line with confirmed results.
type Voter struct {
	client VoteClient
	votes  *VotesCache
	counts *CountsCache
}

// NewVoter creates new instance of Voter.
func NewVoter(client VoteClient, votes *VotesCache, counts *CountsCache) *Voter {
	return &Voter{
		client: client,
		votes:  votes,
		counts: counts,
	}
}

// Vote casts the vote and returns resulting vote of the user on the post.
// Casting the current vote again removes it. Caches are changed only after the server confirmed the vote.
func (v *Voter) Vote(ctx context.Context, postID string, desired VoteType) (VoteType, error) {
	if v.votes.UserID() == "" {
		return NoVote, ErrUnauthenticated
	}

	if desired != Upvote && desired != Downvote {
		return NoVote, ErrInvalidVote
	}

	res, err := v.client.Vote(ctx, postID, desired)
	if err != nil {
		return NoVote, err
	}

	// previous vote is implied by the server's response
	prev := NoVote
	switch {
	case res.Vote == nil:
		prev = desired
	case !res.Created:
		prev = -desired
	}

	t := voting.Resolve(entities.VoteType(prev), entities.VoteType(desired))
	result := VoteType(t.Vote)

	cached, known := v.votes.GetVote(postID)
	stale := known && cached != prev

	v.votes.SetVote(ctx, postID, result)

	counts, ok := v.counts.GetCounts(postID)
	if !ok || stale {
		if err := v.counts.FetchCounts(ctx, []string{postID}); err != nil {
			log.WithError(err).WithField("post_id", postID).Warn("failed to refresh counts")
		}
		return result, nil
	}

	next := t.Apply(entities.Counts{
		Upvotes:   counts.Upvotes,
		Downvotes: counts.Downvotes,
	})
	v.counts.SetCounts(ctx, postID, Counts{
		Upvotes:   next.Upvotes,
		Downvotes: next.Downvotes,
	})

	return result, nil
}
