// Package postgres is implementation of storage interface.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/readon-gr/readon/internal/entities"
	"github.com/readon-gr/readon/internal/storage"
)

var log = logrus.WithField("layer", "storage").WithField("package", "postgres")
var errBeginCalledWithinTx = errors.New("can not run InTx in tx")

const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
)

type pg struct {
	ext sqlx.ExtContext
}

type postDTO struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Content      sql.NullString `db:"content"`
	URL          sql.NullString `db:"url"`
	ImageURL     sql.NullString `db:"image_url"`
	PostType     string         `db:"post_type"`
	Community    string         `db:"community"`
	AuthorID     string         `db:"author_id"`
	Username     sql.NullString `db:"username"`
	AvatarURL    sql.NullString `db:"avatar_url"`
	Upvotes      int            `db:"upvotes"`
	Downvotes    int            `db:"downvotes"`
	CommentCount int            `db:"comment_count"`
	CreatedAt    time.Time      `db:"created_at"`
	IsDeleted    bool           `db:"is_deleted"`
}

type voteDTO struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	PostID    sql.NullString `db:"post_id"`
	CommentID sql.NullString `db:"comment_id"`
	VoteType  int8           `db:"vote_type"`
	CreatedAt time.Time      `db:"created_at"`
}

type reportDTO struct {
	ID          string         `db:"id"`
	ReporterID  string         `db:"reporter_id"`
	PostID      sql.NullString `db:"post_id"`
	CommentID   sql.NullString `db:"comment_id"`
	Reason      string         `db:"reason"`
	Description sql.NullString `db:"description"`
	Status      string         `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
}

const selectPost = `
	SELECT p.id, p.title, p.content, p.url, p.image_url, p.post_type, p.community, p.author_id,
		pr.username, pr.avatar_url, p.upvotes, p.downvotes, p.comment_count, p.created_at, p.is_deleted
	FROM post p
	LEFT JOIN profile pr ON pr.id = p.author_id
`

// New creates new instance of pg.
func New(db *sql.DB) storage.Storage {
	return pg{
		ext: sqlx.NewDb(db, "postgres"),
	}
}

func (s pg) InTx(ctx context.Context, f func(s storage.Storage) error) error {
	db, ok := s.ext.(*sqlx.DB)
	if !ok {
		return errBeginCalledWithinTx
	}

	tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to create tx: %w", err)
	}

	if err := f(pg{ext: tx}); err != nil {
		if err := tx.Rollback(); err != nil {
			log.WithError(err).Error("failed to rollback tx")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}

	return nil
}

func (s pg) Ping(ctx context.Context) error {
	if _, err := s.ext.ExecContext(ctx, `SELECT 1`); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) ListPosts(ctx context.Context, p *storage.ListPostsParams) ([]*entities.Post, error) {
	var (
		args  []interface{}
		where = "WHERE NOT p.is_deleted"
		order string
	)

	if p.Community != nil {
		args = append(args, string(*p.Community))
		where += fmt.Sprintf(" AND p.community = $%d", len(args))
	}

	switch p.SortBy {
	case storage.ScoreSortType:
		order = "ORDER BY (p.upvotes - p.downvotes) DESC, p.created_at DESC"
	case storage.CreatedAtSortType, "":
		order = "ORDER BY p.created_at DESC"
	default:
		return nil, fmt.Errorf("unknown sort type %s", p.SortBy)
	}

	args = append(args, p.Limit)
	query := fmt.Sprintf("%s %s %s LIMIT $%d", selectPost, where, order, len(args))

	var posts []*postDTO
	if err := sqlx.SelectContext(ctx, s.ext, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Post, len(posts))
	for i, v := range posts {
		out[i] = toPost(v)
	}

	return out, nil
}

func (s pg) CreatePost(ctx context.Context, p *entities.Post) error {
	if _, err := s.ext.ExecContext(ctx, `
			INSERT INTO post(id, title, content, url, image_url, post_type, community, author_id, created_at)
			VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
		p.ID, p.Title, nullString(p.Content), nullString(p.URL), nullString(p.ImageURL),
		p.PostType, p.Community, p.AuthorID, p.CreatedAt.UTC(),
	); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) GetPost(ctx context.Context, id string) (*entities.Post, error) {
	var p postDTO

	if err := sqlx.GetContext(ctx, s.ext, &p, selectPost+` WHERE p.id = $1 AND NOT p.is_deleted`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return toPost(&p), nil
}

func (s pg) GetVote(ctx context.Context, userID string, target entities.Target) (*entities.Vote, error) {
	column, id := targetColumn(target)

	var v voteDTO
	if err := sqlx.GetContext(ctx, s.ext, &v, fmt.Sprintf(`
			SELECT id, user_id, post_id, comment_id, vote_type, created_at
			FROM vote
			WHERE user_id = $1 AND %s = $2
		`, column),
		userID, id,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return &entities.Vote{
		ID:     v.ID,
		UserID: v.UserID,
		Target: entities.Target{
			PostID:    v.PostID.String,
			CommentID: v.CommentID.String,
		},
		Type:      entities.VoteType(v.VoteType),
		CreatedAt: v.CreatedAt,
	}, nil
}

func (s pg) CreateVote(ctx context.Context, v *entities.Vote) error {
	if _, err := s.ext.ExecContext(ctx, `
			INSERT INTO vote(id, user_id, post_id, comment_id, vote_type, created_at)
			VALUES($1, $2, $3, $4, $5, $6)
		`,
		v.ID, v.UserID, nullString(v.Target.PostID), nullString(v.Target.CommentID), v.Type, v.CreatedAt.UTC(),
	); err != nil {
		if err, ok := err.(*pq.Error); ok {
			switch err.Code {
			case foreignKeyViolation:
				return storage.ErrTargetNotFound
			case uniqueViolation:
				return storage.ErrAlreadyExists
			}
		}

		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) UpdateVote(ctx context.Context, id string, t entities.VoteType) error {
	res, err := s.ext.ExecContext(ctx, `UPDATE vote SET vote_type = $2 WHERE id = $1`, id, t)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s pg) DeleteVote(ctx context.Context, id string) error {
	res, err := s.ext.ExecContext(ctx, `DELETE FROM vote WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s pg) AddCounts(ctx context.Context, target entities.Target, upvotes, downvotes int) error {
	table := "post"
	if !target.IsPost() {
		table = "comment"
	}

	res, err := s.ext.ExecContext(ctx, fmt.Sprintf(`
			UPDATE %s SET upvotes = upvotes + $2, downvotes = downvotes + $3 WHERE id = $1 AND NOT is_deleted
		`, table),
		target.ID(), upvotes, downvotes,
	)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrTargetNotFound
	}

	return nil
}

func (s pg) GetUserVotes(ctx context.Context, userID string, postIDs []string) (map[string]entities.VoteType, error) {
	out := make(map[string]entities.VoteType, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	var votes []*voteDTO
	if err := sqlx.SelectContext(ctx, s.ext, &votes, `
			SELECT id, user_id, post_id, comment_id, vote_type, created_at
			FROM vote
			WHERE user_id = $1 AND post_id = ANY($2::uuid[])
		`, userID, pq.Array(postIDs),
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	for _, v := range votes {
		out[v.PostID.String] = entities.VoteType(v.VoteType)
	}

	return out, nil
}

func (s pg) GetPostCounts(ctx context.Context, postIDs []string) (map[string]entities.Counts, error) {
	out := make(map[string]entities.Counts, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(`SELECT id, upvotes, downvotes FROM post WHERE id IN (?)`, postIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to construct IN clause: %w", err)
	}

	var counts []struct {
		ID        string `db:"id"`
		Upvotes   int    `db:"upvotes"`
		Downvotes int    `db:"downvotes"`
	}

	if err := sqlx.SelectContext(ctx, s.ext, &counts, s.ext.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	for _, v := range counts {
		out[v.ID] = entities.Counts{Upvotes: v.Upvotes, Downvotes: v.Downvotes}
	}

	return out, nil
}

func (s pg) HasReport(ctx context.Context, reporterID string, target entities.Target) (bool, error) {
	column, id := targetColumn(target)

	var exists bool
	if err := sqlx.GetContext(ctx, s.ext, &exists, fmt.Sprintf(`
			SELECT EXISTS(SELECT 1 FROM report WHERE reporter_id = $1 AND %s = $2)
		`, column),
		reporterID, id,
	); err != nil {
		return false, fmt.Errorf("failed to query: %w", err)
	}

	return exists, nil
}

func (s pg) CreateReport(ctx context.Context, r *entities.Report) error {
	report := reportDTO{
		ID:          r.ID,
		ReporterID:  r.ReporterID,
		PostID:      nullString(r.Target.PostID),
		CommentID:   nullString(r.Target.CommentID),
		Reason:      string(r.Reason),
		Description: nullString(r.Description),
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt.UTC(),
	}

	if _, err := sqlx.NamedExecContext(ctx, s.ext, `
			INSERT INTO report(id, reporter_id, post_id, comment_id, reason, description, status, created_at)
			VALUES(:id, :reporter_id, :post_id, :comment_id, :reason, :description, :status, :created_at)
		`, report,
	); err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == foreignKeyViolation {
			return storage.ErrTargetNotFound
		}

		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func toPost(p *postDTO) *entities.Post {
	out := entities.Post{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content.String,
		URL:          p.URL.String,
		ImageURL:     p.ImageURL.String,
		PostType:     entities.PostType(p.PostType),
		Community:    entities.Community(p.Community),
		AuthorID:     p.AuthorID,
		Upvotes:      p.Upvotes,
		Downvotes:    p.Downvotes,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
		IsDeleted:    p.IsDeleted,
	}

	if p.Username.Valid {
		out.Author = &entities.Profile{
			ID:        p.AuthorID,
			Username:  p.Username.String,
			AvatarURL: p.AvatarURL.String,
		}
	}

	return &out
}

func targetColumn(t entities.Target) (string, string) {
	if t.IsPost() {
		return "post_id", t.ID()
	}

	return "comment_id", t.ID()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
