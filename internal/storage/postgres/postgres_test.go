//+build integration

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	m "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/readon-gr/readon/internal/entities"
	"github.com/readon-gr/readon/internal/storage"
)

var (
	db  *sql.DB
	ctx = context.Background()
	s   storage.Storage
)

func TestMain(m *testing.M) {
	shutdown := setup()

	s = New(db)

	code := m.Run()
	shutdown()
	os.Exit(code)
}

func setup() func() {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:12",
		Env:          map[string]string{"POSTGRES_PASSWORD": "root"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
	})
	if err != nil {
		logrus.WithError(err).Fatalf("failed to create container")
	}

	if err := c.Start(ctx); err != nil {
		logrus.WithError(err).Fatal("failed to start container")
	}

	host, err := c.Host(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to get host")
	}

	port, err := c.MappedPort(ctx, "5432")
	if err != nil {
		logrus.WithError(err).Fatal("failed to map port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=postgres password=root sslmode=disable", host, port.Int())

	db, err = sql.Open("postgres", dsn)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open connection")
	}

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	shutdownFn := func() {
		if c != nil {
			c.Terminate(ctx)
		}
	}

	migrate("postgres", "root", host, "postgres", port.Int())

	return shutdownFn
}

func migrate(username, password, hostname, dbname string, port int) {
	_, currFile, _, ok := runtime.Caller(0)
	if !ok {
		logrus.Fatal("failed to get current file location")
	}

	migrations := filepath.Join(currFile, "../../../../scripts/migrations/postgres/")

	migrator, err := m.New(
		fmt.Sprintf("file://%s", migrations),
		fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			username, password, hostname, port, dbname),
	)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create migrator")
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil {
		logrus.WithError(err).Fatal("failed to migrate")
	}
}

func cleanup(t *testing.T) {
	for _, table := range []string{"report", "vote", "comment", "post", "profile"} {
		_, err := db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, table))
		require.NoError(t, err)
	}
}

func createPost(t *testing.T, community entities.Community, createdAt time.Time, up, down int) *entities.Post {
	p := entities.Post{
		ID:        uuid.New().String(),
		Title:     "title",
		Content:   "content",
		PostType:  entities.TextPost,
		Community: community,
		AuthorID:  "author",
		CreatedAt: createdAt.UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, s.CreatePost(ctx, &p))
	require.NoError(t, s.AddCounts(ctx, entities.PostTarget(p.ID), up, down))

	p.Upvotes, p.Downvotes = up, down

	return &p
}

func TestPg_Ping(t *testing.T) {
	require.NoError(t, s.Ping(ctx))
}

func TestPg_CreatePost_GetPost(t *testing.T) {
	defer cleanup(t)

	_, err := db.ExecContext(ctx, `INSERT INTO profile(id, username, avatar_url) VALUES('author', 'nikos', NULL)`)
	require.NoError(t, err)

	p := createPost(t, entities.DefaultCommunity, time.Now(), 0, 0)

	got, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "content", got.Content)
	assert.Empty(t, got.URL)
	assert.Equal(t, entities.TextPost, got.PostType)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
	require.NotNil(t, got.Author)
	assert.Equal(t, "nikos", got.Author.Username)

	_, err = s.GetPost(ctx, uuid.New().String())
	require.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestPg_ListPosts(t *testing.T) {
	defer cleanup(t)

	now := time.Now()
	oldest := createPost(t, "politiki", now.Add(-3*time.Hour), 10, 0)
	middle := createPost(t, entities.DefaultCommunity, now.Add(-2*time.Hour), 1, 0)
	newest := createPost(t, "politiki", now.Add(-time.Hour), 5, 5)

	deleted := createPost(t, "politiki", now, 100, 0)
	_, err := db.ExecContext(ctx, `UPDATE post SET is_deleted = TRUE WHERE id = $1`, deleted.ID)
	require.NoError(t, err)

	ids := func(posts []*entities.Post) []string {
		out := make([]string, len(posts))
		for i, v := range posts {
			out[i] = v.ID
		}
		return out
	}

	posts, err := s.ListPosts(ctx, &storage.ListPostsParams{SortBy: storage.CreatedAtSortType, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, []string{newest.ID, middle.ID, oldest.ID}, ids(posts))

	posts, err = s.ListPosts(ctx, &storage.ListPostsParams{SortBy: storage.ScoreSortType, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, []string{oldest.ID, middle.ID, newest.ID}, ids(posts))

	c := entities.Community("politiki")
	posts, err = s.ListPosts(ctx, &storage.ListPostsParams{SortBy: storage.CreatedAtSortType, Limit: 1, Community: &c})
	require.NoError(t, err)
	assert.Equal(t, []string{newest.ID}, ids(posts))
}

func TestPg_Votes(t *testing.T) {
	defer cleanup(t)

	p := createPost(t, entities.DefaultCommunity, time.Now(), 0, 0)
	target := entities.PostTarget(p.ID)

	_, err := s.GetVote(ctx, "user", target)
	require.True(t, errors.Is(err, storage.ErrNotFound))

	v := entities.Vote{
		ID:        uuid.New().String(),
		UserID:    "user",
		Target:    target,
		Type:      entities.Upvote,
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.CreateVote(ctx, &v))

	dup := v
	dup.ID = uuid.New().String()
	require.True(t, errors.Is(s.CreateVote(ctx, &dup), storage.ErrAlreadyExists))

	got, err := s.GetVote(ctx, "user", target)
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.ID)
	assert.Equal(t, entities.Upvote, got.Type)
	assert.Equal(t, target, got.Target)

	require.NoError(t, s.UpdateVote(ctx, v.ID, entities.Downvote))

	votes, err := s.GetUserVotes(ctx, "user", []string{p.ID, uuid.New().String()})
	require.NoError(t, err)
	assert.Equal(t, map[string]entities.VoteType{p.ID: entities.Downvote}, votes)

	require.NoError(t, s.DeleteVote(ctx, v.ID))
	require.True(t, errors.Is(s.DeleteVote(ctx, v.ID), storage.ErrNotFound))

	missing := v
	missing.ID = uuid.New().String()
	missing.Target = entities.PostTarget(uuid.New().String())
	require.True(t, errors.Is(s.CreateVote(ctx, &missing), storage.ErrTargetNotFound))
}

func TestPg_AddCounts(t *testing.T) {
	defer cleanup(t)

	p := createPost(t, entities.DefaultCommunity, time.Now(), 3, 1)
	require.NoError(t, s.AddCounts(ctx, entities.PostTarget(p.ID), -1, 1))

	counts, err := s.GetPostCounts(ctx, []string{p.ID, uuid.New().String()})
	require.NoError(t, err)
	assert.Equal(t, map[string]entities.Counts{p.ID: {Upvotes: 2, Downvotes: 2}}, counts)

	err = s.AddCounts(ctx, entities.PostTarget(uuid.New().String()), 1, 0)
	require.True(t, errors.Is(err, storage.ErrTargetNotFound))
}

func TestPg_AddCounts_DeletedPost(t *testing.T) {
	defer cleanup(t)

	p := createPost(t, entities.DefaultCommunity, time.Now(), 1, 0)
	_, err := db.ExecContext(ctx, `UPDATE post SET is_deleted = TRUE WHERE id = $1`, p.ID)
	require.NoError(t, err)

	err = s.AddCounts(ctx, entities.PostTarget(p.ID), 1, 0)
	require.True(t, errors.Is(err, storage.ErrTargetNotFound))

	var up int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT upvotes FROM post WHERE id = $1`, p.ID).Scan(&up))
	assert.Equal(t, 1, up)
}

func TestPg_InTx(t *testing.T) {
	defer cleanup(t)

	p := createPost(t, entities.DefaultCommunity, time.Now(), 0, 0)

	err := s.InTx(ctx, func(tx storage.Storage) error {
		require.NoError(t, tx.AddCounts(ctx, entities.PostTarget(p.ID), 1, 0))
		return errors.New("rollback")
	})
	require.Error(t, err)

	got, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Upvotes)
}

func TestPg_Reports(t *testing.T) {
	defer cleanup(t)

	p := createPost(t, entities.DefaultCommunity, time.Now(), 0, 0)
	target := entities.PostTarget(p.ID)

	exists, err := s.HasReport(ctx, "user", target)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.CreateReport(ctx, &entities.Report{
		ID:         uuid.New().String(),
		ReporterID: "user",
		Target:     target,
		Reason:     entities.SpamReason,
		Status:     entities.PendingStatus,
		CreatedAt:  time.Now(),
	}))

	exists, err = s.HasReport(ctx, "user", target)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.HasReport(ctx, "other", target)
	require.NoError(t, err)
	assert.False(t, exists)
}
