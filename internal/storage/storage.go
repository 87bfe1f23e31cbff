// Package storage contains a storage interface.
package storage

import (
	"context"
	"errors"

	"github.com/readon-gr/readon/internal/entities"
)

//go:generate mockgen -destination=./mock/storage.go -package=mock -source=storage.go

// ErrNotFound ...
var ErrNotFound = errors.New("not found")

// ErrTargetNotFound is returned when a vote or a report refers to a missing post or comment.
var ErrTargetNotFound = errors.New("target not found")

// ErrAlreadyExists is returned when a unique constraint rejects the row, e.g. a concurrent second vote.
var ErrAlreadyExists = errors.New("already exists")

// Storage provides methods for interacting with database.
type Storage interface {
	InTx(ctx context.Context, f func(s Storage) error) error
	Ping(ctx context.Context) error

	ListPosts(ctx context.Context, p *ListPostsParams) ([]*entities.Post, error)
	CreatePost(ctx context.Context, p *entities.Post) error
	GetPost(ctx context.Context, id string) (*entities.Post, error)

	GetVote(ctx context.Context, userID string, target entities.Target) (*entities.Vote, error)
	CreateVote(ctx context.Context, v *entities.Vote) error
	UpdateVote(ctx context.Context, id string, t entities.VoteType) error
	DeleteVote(ctx context.Context, id string) error
	AddCounts(ctx context.Context, target entities.Target, upvotes, downvotes int) error

	GetUserVotes(ctx context.Context, userID string, postIDs []string) (map[string]entities.VoteType, error)
	GetPostCounts(ctx context.Context, postIDs []string) (map[string]entities.Counts, error)

	HasReport(ctx context.Context, reporterID string, target entities.Target) (bool, error)
	CreateReport(ctx context.Context, r *entities.Report) error
}

// SortType ...
type SortType string

const (
	// CreatedAtSortType ...
	CreatedAtSortType SortType = "created_at"
	// ScoreSortType sorts by upvotes minus downvotes.
	ScoreSortType SortType = "score"
)

// ListPostsParams ...
type ListPostsParams struct {
	SortBy    SortType
	Limit     uint16
	Community *entities.Community
}
