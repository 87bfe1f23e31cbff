// Package impl is implementation of service interface.
package impl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/readon-gr/readon/internal/entities"
	"github.com/readon-gr/readon/internal/feed"
	"github.com/readon-gr/readon/internal/ranking"
	"github.com/readon-gr/readon/internal/service"
	"github.com/readon-gr/readon/internal/storage"
	"github.com/readon-gr/readon/internal/voting"
)

var log = logrus.WithField("layer", "service").WithField("package", "impl")

// service ...
type srv struct {
	s   storage.Storage
	f   *feed.Feed
	now func() time.Time
}

// New creates new instance of service.
func New(s storage.Storage, f *feed.Feed) service.Service {
	return srv{
		s:   s,
		f:   f,
		now: time.Now,
	}
}

func (s srv) ListPosts(ctx context.Context, sort ranking.Sort, community *entities.Community) ([]entities.RankedPost, error) {
	posts, err := s.f.Posts(ctx, sort, community)
	if err != nil {
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}

	return posts, nil
}

func (s srv) GetPost(ctx context.Context, id string) (*entities.Post, error) {
	if !isValidID(id) {
		return nil, storage.ErrNotFound
	}

	p, err := s.s.GetPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post from storage: %w", err)
	}

	return p, nil
}

func (s srv) CreatePost(ctx context.Context, p *entities.Post) (*entities.Post, error) {
	post := *p
	post.ID = uuid.New().String()
	post.CreatedAt = s.now()
	if post.Community == "" {
		post.Community = entities.DefaultCommunity
	}

	var out *entities.Post
	if err := s.s.InTx(ctx, func(tx storage.Storage) error {
		if err := tx.CreatePost(ctx, &post); err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}

		created, err := tx.GetPost(ctx, post.ID)
		if err != nil {
			return fmt.Errorf("failed to get created post: %w", err)
		}
		out = created

		return nil
	}); err != nil {
		return nil, err
	}

	s.f.Invalidate()

	log.WithField("id", out.ID).WithField("community", out.Community).Debug("post created")

	return out, nil
}

func (s srv) Vote(ctx context.Context, userID string, target entities.Target, t entities.VoteType) (*service.VoteResult, error) {
	if !isValidID(target.ID()) {
		return nil, storage.ErrTargetNotFound
	}

	res, err := s.vote(ctx, userID, target, t)
	if errors.Is(err, storage.ErrAlreadyExists) {
		// the vote was created by a concurrent request after it was read, resolve against the stored one.
		log.WithField("user", userID).WithField("target", target.ID()).Debug("vote conflict, retrying")
		res, err = s.vote(ctx, userID, target, t)
	}
	if err != nil {
		return nil, err
	}

	s.f.Invalidate()

	return res, nil
}

func (s srv) vote(ctx context.Context, userID string, target entities.Target, t entities.VoteType) (*service.VoteResult, error) {
	var res service.VoteResult
	if err := s.s.InTx(ctx, func(tx storage.Storage) error {
		existing, err := tx.GetVote(ctx, userID, target)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to get vote: %w", err)
		}

		prev := entities.NoVote
		if existing != nil {
			prev = existing.Type
		}

		res.Transition = voting.Resolve(prev, t)

		switch res.Transition.Action {
		case voting.Insert:
			v := entities.Vote{
				ID:        uuid.New().String(),
				UserID:    userID,
				Target:    target,
				Type:      t,
				CreatedAt: s.now(),
			}
			if err := tx.CreateVote(ctx, &v); err != nil {
				return fmt.Errorf("failed to create vote: %w", err)
			}
			res.Vote = &v
		case voting.Update:
			if err := tx.UpdateVote(ctx, existing.ID, t); err != nil {
				return fmt.Errorf("failed to update vote: %w", err)
			}
			existing.Type = t
			res.Vote = existing
		case voting.Delete:
			if err := tx.DeleteVote(ctx, existing.ID); err != nil {
				return fmt.Errorf("failed to delete vote: %w", err)
			}
		}

		if err := tx.AddCounts(ctx, target, res.Transition.UpvotesDelta, res.Transition.DownvotesDelta); err != nil {
			return fmt.Errorf("failed to update counts: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return &res, nil
}

func (s srv) GetUserVotes(ctx context.Context, userID string, postIDs []string) (map[string]entities.VoteType, error) {
	ids := validIDs(postIDs)
	if len(ids) == 0 {
		return map[string]entities.VoteType{}, nil
	}

	votes, err := s.s.GetUserVotes(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get user votes from storage: %w", err)
	}

	return votes, nil
}

func (s srv) GetPostCounts(ctx context.Context, postIDs []string) (map[string]entities.Counts, error) {
	ids := validIDs(postIDs)
	if len(ids) == 0 {
		return map[string]entities.Counts{}, nil
	}

	counts, err := s.s.GetPostCounts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get post counts from storage: %w", err)
	}

	return counts, nil
}

func (s srv) CreateReport(ctx context.Context, r *entities.Report) (*entities.Report, error) {
	if !isValidID(r.Target.ID()) {
		return nil, storage.ErrTargetNotFound
	}

	// There is no unique constraint, two concurrent reports can pass the check.
	exists, err := s.s.HasReport(ctx, r.ReporterID, r.Target)
	if err != nil {
		return nil, fmt.Errorf("failed to check report: %w", err)
	}

	if exists {
		return nil, service.ErrAlreadyReported
	}

	report := *r
	report.ID = uuid.New().String()
	report.Status = entities.PendingStatus
	report.CreatedAt = s.now()

	if err := s.s.CreateReport(ctx, &report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	return &report, nil
}

func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func validIDs(ids []string) []string {
	return lo.Uniq(lo.Filter(ids, func(id string, _ int) bool {
		return isValidID(id)
	}))
}
