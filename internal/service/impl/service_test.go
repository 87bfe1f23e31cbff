package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readon-gr/readon/internal/entities"
	"github.com/readon-gr/readon/internal/feed"
	"github.com/readon-gr/readon/internal/ranking"
	"github.com/readon-gr/readon/internal/service"
	storageinterface "github.com/readon-gr/readon/internal/storage"
	storage "github.com/readon-gr/readon/internal/storage/mock"
	"github.com/readon-gr/readon/internal/tagcache"
	"github.com/readon-gr/readon/internal/voting"
)

const (
	postID = "0b8bbd63-8ae8-4bd3-a5d0-5f1e4a7b5f3a"
	userID = "user-1"
)

var (
	errTest = errors.New("test")
	now     = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
)

func newService(s storageinterface.Storage) srv {
	return srv{
		s:   s,
		f:   feed.New(s, tagcache.New(), func() time.Time { return now }),
		now: func() time.Time { return now },
	}
}

func expectTx(s *storage.MockStorage) {
	s.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f func(s storageinterface.Storage) error) error {
		return f(s)
	})
}

func TestSrv_ListPosts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)
	srv := newService(s)

	s.EXPECT().ListPosts(gomock.Any(), gomock.Any()).Return([]*entities.Post{{ID: postID, CreatedAt: now}}, nil)

	posts, err := srv.ListPosts(context.Background(), ranking.New, nil)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, postID, posts[0].ID)

	// served from cache
	_, err = srv.ListPosts(context.Background(), ranking.New, nil)
	require.NoError(t, err)
}

func TestSrv_GetPost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)
	srv := newService(s)

	_, err := srv.GetPost(context.Background(), "not-uuid")
	require.True(t, errors.Is(err, storageinterface.ErrNotFound))

	s.EXPECT().GetPost(gomock.Any(), postID).Return(nil, storageinterface.ErrNotFound)
	_, err = srv.GetPost(context.Background(), postID)
	require.True(t, errors.Is(err, storageinterface.ErrNotFound))

	s.EXPECT().GetPost(gomock.Any(), postID).Return(&entities.Post{ID: postID}, nil)
	p, err := srv.GetPost(context.Background(), postID)
	require.NoError(t, err)
	assert.Equal(t, postID, p.ID)
}

func TestSrv_CreatePost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)
	srv := newService(s)

	// warm the feed to check invalidation
	s.EXPECT().ListPosts(gomock.Any(), gomock.Any()).Return([]*entities.Post{}, nil).Times(2)
	_, err := srv.ListPosts(context.Background(), ranking.Hot, nil)
	require.NoError(t, err)

	var stored entities.Post
	expectTx(s)
	s.EXPECT().CreatePost(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *entities.Post) error {
		stored = *p
		return nil
	})
	s.EXPECT().GetPost(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id string) (*entities.Post, error) {
		p := stored
		p.Author = &entities.Profile{ID: userID, Username: "nikos"}
		return &p, nil
	})

	p, err := srv.CreatePost(context.Background(), &entities.Post{
		Title:    "Καλημέρα",
		Content:  "text",
		PostType: entities.TextPost,
		AuthorID: userID,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, stored.ID, p.ID)
	assert.Equal(t, entities.DefaultCommunity, p.Community)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, "nikos", p.Author.Username)

	_, err = srv.ListPosts(context.Background(), ranking.Hot, nil)
	require.NoError(t, err)
}

func TestSrv_CreatePost_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)
	srv := newService(s)

	expectTx(s)
	s.EXPECT().CreatePost(gomock.Any(), gomock.Any()).Return(errTest)

	_, err := srv.CreatePost(context.Background(), &entities.Post{Title: "t", PostType: entities.TextPost})
	require.True(t, errors.Is(err, errTest))
}

func TestSrv_Vote(t *testing.T) {
	target := entities.PostTarget(postID)

	tt := []struct {
		name     string
		existing *entities.Vote
		desired  entities.VoteType

		action    voting.Action
		up, down  int
		nilResult bool
	}{
		{
			name:    "insert",
			desired: entities.Upvote,
			action:  voting.Insert,
			up:      1,
		},
		{
			name:     "switch",
			existing: &entities.Vote{ID: "v", Type: entities.Upvote},
			desired:  entities.Downvote,
			action:   voting.Update,
			up:       -1,
			down:     1,
		},
		{
			name:      "toggle off",
			existing:  &entities.Vote{ID: "v", Type: entities.Downvote},
			desired:   entities.Downvote,
			action:    voting.Delete,
			down:      -1,
			nilResult: true,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s := storage.NewMockStorage(ctrl)
			srv := newService(s)

			expectTx(s)
			if tc.existing != nil {
				s.EXPECT().GetVote(gomock.Any(), userID, target).Return(tc.existing, nil)
			} else {
				s.EXPECT().GetVote(gomock.Any(), userID, target).Return(nil, storageinterface.ErrNotFound)
			}

			switch tc.action {
			case voting.Insert:
				s.EXPECT().CreateVote(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, v *entities.Vote) error {
					assert.Equal(t, userID, v.UserID)
					assert.Equal(t, target, v.Target)
					assert.Equal(t, tc.desired, v.Type)
					return nil
				})
			case voting.Update:
				s.EXPECT().UpdateVote(gomock.Any(), "v", tc.desired).Return(nil)
			case voting.Delete:
				s.EXPECT().DeleteVote(gomock.Any(), "v").Return(nil)
			}
			s.EXPECT().AddCounts(gomock.Any(), target, tc.up, tc.down).Return(nil)

			res, err := srv.Vote(context.Background(), userID, target, tc.desired)
			require.NoError(t, err)

			assert.Equal(t, tc.action, res.Transition.Action)
			if tc.nilResult {
				assert.Nil(t, res.Vote)
			} else {
				require.NotNil(t, res.Vote)
				assert.Equal(t, tc.desired, res.Vote.Type)
			}
		})
	}
}

func TestSrv_Vote_InvalidTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := newService(storage.NewMockStorage(ctrl))

	_, err := srv.Vote(context.Background(), userID, entities.PostTarget("1"), entities.Upvote)
	require.True(t, errors.Is(err, storageinterface.ErrTargetNotFound))
}

func TestSrv_Vote_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)
	srv := newService(s)

	expectTx(s)
	s.EXPECT().GetVote(gomock.Any(), userID, gomock.Any()).Return(nil, errTest)

	_, err := srv.Vote(context.Background(), userID, entities.PostTarget(postID), entities.Upvote)
	require.True(t, errors.Is(err, errTest))
}

func TestSrv_Vote_ConcurrentInsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)
	srv := newService(s)
	target := entities.PostTarget(postID)

	expectTx(s)
	expectTx(s)
	gomock.InOrder(
		s.EXPECT().GetVote(gomock.Any(), userID, target).Return(nil, storageinterface.ErrNotFound),
		s.EXPECT().CreateVote(gomock.Any(), gomock.Any()).Return(storageinterface.ErrAlreadyExists),
		s.EXPECT().GetVote(gomock.Any(), userID, target).Return(&entities.Vote{ID: "v", Type: entities.Upvote}, nil),
		s.EXPECT().UpdateVote(gomock.Any(), "v", entities.Downvote).Return(nil),
		s.EXPECT().AddCounts(gomock.Any(), target, -1, 1).Return(nil),
	)

	res, err := srv.Vote(context.Background(), userID, target, entities.Downvote)
	require.NoError(t, err)
	assert.Equal(t, voting.Update, res.Transition.Action)
	assert.Equal(t, entities.Downvote, res.Vote.Type)
}

func TestSrv_Vote_ConflictTwice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)
	srv := newService(s)

	expectTx(s)
	expectTx(s)
	s.EXPECT().GetVote(gomock.Any(), userID, gomock.Any()).Return(nil, storageinterface.ErrNotFound).Times(2)
	s.EXPECT().CreateVote(gomock.Any(), gomock.Any()).Return(storageinterface.ErrAlreadyExists).Times(2)

	_, err := srv.Vote(context.Background(), userID, entities.PostTarget(postID), entities.Upvote)
	require.True(t, errors.Is(err, storageinterface.ErrAlreadyExists))
}

func TestSrv_Vote_DeletedPost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)
	srv := newService(s)
	target := entities.PostTarget(postID)

	expectTx(s)
	s.EXPECT().GetVote(gomock.Any(), userID, target).Return(nil, storageinterface.ErrNotFound)
	s.EXPECT().CreateVote(gomock.Any(), gomock.Any()).Return(nil)
	s.EXPECT().AddCounts(gomock.Any(), target, 1, 0).Return(storageinterface.ErrTargetNotFound)

	_, err := srv.Vote(context.Background(), userID, target, entities.Upvote)
	require.True(t, errors.Is(err, storageinterface.ErrTargetNotFound))
}

func TestSrv_GetUserVotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)
	srv := newService(s)

	votes, err := srv.GetUserVotes(context.Background(), userID, []string{"bad", ""})
	require.NoError(t, err)
	assert.Empty(t, votes)

	s.EXPECT().GetUserVotes(gomock.Any(), userID, []string{postID}).Return(map[string]entities.VoteType{
		postID: entities.Downvote,
	}, nil)

	votes, err = srv.GetUserVotes(context.Background(), userID, []string{postID, "bad", postID})
	require.NoError(t, err)
	assert.Equal(t, map[string]entities.VoteType{postID: entities.Downvote}, votes)
}

func TestSrv_GetPostCounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)
	srv := newService(s)

	s.EXPECT().GetPostCounts(gomock.Any(), []string{postID}).Return(nil, errTest)

	_, err := srv.GetPostCounts(context.Background(), []string{postID})
	require.True(t, errors.Is(err, errTest))
}

func TestSrv_CreateReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)
	srv := newService(s)

	r := &entities.Report{
		ReporterID: userID,
		Target:     entities.PostTarget(postID),
		Reason:     entities.SpamReason,
	}

	gomock.InOrder(
		s.EXPECT().HasReport(gomock.Any(), userID, r.Target).Return(false, nil),
		s.EXPECT().CreateReport(gomock.Any(), gomock.Any()).Return(nil),
		s.EXPECT().HasReport(gomock.Any(), userID, r.Target).Return(true, nil),
	)

	out, err := srv.CreateReport(context.Background(), r)
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, entities.PendingStatus, out.Status)
	assert.Equal(t, now, out.CreatedAt)

	_, err = srv.CreateReport(context.Background(), r)
	require.True(t, errors.Is(err, service.ErrAlreadyReported))
}
