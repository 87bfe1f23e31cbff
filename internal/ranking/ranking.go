// Package ranking orders feed posts.
package ranking

import (
	"math"
	"sort"
	"time"

	"github.com/readon-gr/readon/internal/entities"
)

// Limit is the maximal count of posts ranked in one pass.
const Limit = 50

// Sort ...
type Sort string

const (
	// Hot orders by time-decayed popularity.
	Hot Sort = "hot"
	// New orders by creation time, newest first.
	New Sort = "new"
	// Top orders by net votes.
	Top Sort = "top"
)

// Valid ...
func (s Sort) Valid() bool {
	switch s {
	case Hot, New, Top:
		return true
	default:
		return false
	}
}

// HotScore calculates time-decayed popularity of the post at the moment now.
func HotScore(p *entities.Post, now time.Time) float64 {
	age := now.Sub(p.CreatedAt).Hours()
	if age < 0 {
		age = 0
	}

	boost := math.Log10(math.Max(1, float64(p.CommentCount))) * 2

	return (float64(p.Score()) + boost) / math.Pow(age+2, 1.5)
}

// Rank orders posts according to the sort.
// posts should be ordered by created_at desc for hot and new, and by net votes for top.
// now is evaluated by caller once per pass.
func Rank(s Sort, posts []*entities.Post, now time.Time) []entities.RankedPost {
	out := make([]entities.RankedPost, len(posts))
	for i, p := range posts {
		out[i] = entities.RankedPost{Post: p}
	}

	if s != Hot {
		return out
	}

	scores := make([]float64, len(out))
	for i := range out {
		scores[i] = HotScore(out[i].Post, now)
		out[i].HotScore = &scores[i]
	}

	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].HotScore > *out[j].HotScore
	})

	return out
}
