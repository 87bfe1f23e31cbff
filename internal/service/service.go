// Package service contains interface for service business-logic.
package service

import (
	"context"
	"errors"

	"github.com/readon-gr/readon/internal/entities"
	"github.com/readon-gr/readon/internal/ranking"
	"github.com/readon-gr/readon/internal/voting"
)

//go:generate mockgen -destination=./mock/service.go -package=mock -source=service.go

// ErrAlreadyReported is returned when the reporter has already reported the target.
var ErrAlreadyReported = errors.New("already reported")

// Service ...
type Service interface {
	ListPosts(ctx context.Context, s ranking.Sort, community *entities.Community) ([]entities.RankedPost, error)
	GetPost(ctx context.Context, id string) (*entities.Post, error)
	CreatePost(ctx context.Context, p *entities.Post) (*entities.Post, error)

	Vote(ctx context.Context, userID string, target entities.Target, t entities.VoteType) (*VoteResult, error)
	GetUserVotes(ctx context.Context, userID string, postIDs []string) (map[string]entities.VoteType, error)
	GetPostCounts(ctx context.Context, postIDs []string) (map[string]entities.Counts, error)

	CreateReport(ctx context.Context, r *entities.Report) (*entities.Report, error)
}

// VoteResult ...
type VoteResult struct {
	Transition voting.Transition
	// Vote is the stored vote, nil when the vote was retracted.
	Vote *entities.Vote
}
