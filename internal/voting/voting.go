// Package voting contains vote transitions shared by the server and the client.
package voting

import (
	"github.com/readon-gr/readon/internal/entities"
)

// Action is a store mutation required by a transition.
type Action int

const (
	// Insert creates a new vote.
	Insert Action = iota + 1
	// Update flips magnitude of an existing vote.
	Update
	// Delete retracts an existing vote.
	Delete
)

// String ...
func (a Action) String() string {
	switch a {
	case Insert:
		return "insert"
	case Update:
		return "update"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Transition describes result of applying a vote.
type Transition struct {
	Action Action
	// Vote is the resulting vote, NoVote after retraction.
	Vote           entities.VoteType
	UpvotesDelta   int
	DownvotesDelta int
}

// Resolve returns the transition from existing vote (NoVote if there is none) to desired one.
// desired should be valid.
func Resolve(existing, desired entities.VoteType) Transition {
	var t Transition

	switch existing {
	case desired:
		t.Action, t.Vote = Delete, entities.NoVote
		t.add(desired, -1)
	case entities.NoVote:
		t.Action, t.Vote = Insert, desired
		t.add(desired, 1)
	default:
		t.Action, t.Vote = Update, desired
		t.add(existing, -1)
		t.add(desired, 1)
	}

	return t
}

// Apply returns counts after the transition.
func (t Transition) Apply(c entities.Counts) entities.Counts {
	c.Upvotes += t.UpvotesDelta
	c.Downvotes += t.DownvotesDelta

	if c.Upvotes < 0 {
		c.Upvotes = 0
	}
	if c.Downvotes < 0 {
		c.Downvotes = 0
	}

	return c
}

func (t *Transition) add(v entities.VoteType, n int) {
	if v == entities.Upvote {
		t.UpvotesDelta += n
	} else {
		t.DownvotesDelta += n
	}
}
