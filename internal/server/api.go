package server

import (
	"time"

	"github.com/readon-gr/readon/internal/entities"
)

// Error ...
// swagger:model
type Error struct {
	Error string `json:"error"`
}

// Message ...
// swagger:model
type Message struct {
	Message string `json:"message"`
}

// Post ...
// swagger:model
type Post struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Content      *string  `json:"content"`
	URL          *string  `json:"url"`
	ImageURL     *string  `json:"image_url"`
	PostType     string   `json:"post_type"`
	Community    string   `json:"community"`
	AuthorID     string   `json:"author_id"`
	Upvotes      int      `json:"upvotes"`
	Downvotes    int      `json:"downvotes"`
	CommentCount int      `json:"comment_count"`
	CreatedAt    string   `json:"created_at"`
	IsDeleted    bool     `json:"is_deleted"`
	HotScore     *float64 `json:"hot_score,omitempty"`
	Profile      *Profile `json:"profiles"`
}

// Profile is a short author profile.
type Profile struct {
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

// CreatePostRequest ...
// swagger:model
type CreatePostRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	URL       string `json:"url"`
	ImageURL  string `json:"image_url"`
	PostType  string `json:"post_type"`
	Community string `json:"community"`
}

// VoteRequest ...
// swagger:model
type VoteRequest struct {
	PostID    string `json:"post_id"`
	CommentID string `json:"comment_id"`
	VoteType  int8   `json:"vote_type"`
}

// Vote ...
// swagger:model
type Vote struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	PostID    *string `json:"post_id"`
	CommentID *string `json:"comment_id"`
	VoteType  int8    `json:"vote_type"`
	CreatedAt string  `json:"created_at"`
}

// PostIDsRequest is a body of user-votes and post-counts requests.
// swagger:model
type PostIDsRequest struct {
	PostIDs []string `json:"postIds"`
}

// Counts ...
// swagger:model
type Counts struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

// ReportRequest ...
// swagger:model
type ReportRequest struct {
	PostID      string `json:"post_id"`
	CommentID   string `json:"comment_id"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

// Report ...
// swagger:model
type Report struct {
	ID          string  `json:"id"`
	ReporterID  string  `json:"reporter_id"`
	PostID      *string `json:"post_id"`
	CommentID   *string `json:"comment_id"`
	Reason      string  `json:"reason"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

// Community ...
// swagger:model
type Community struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func toAPIPost(p *entities.Post, hotScore *float64) Post {
	out := Post{
		ID:           p.ID,
		Title:        p.Title,
		Content:      optional(p.Content),
		URL:          optional(p.URL),
		ImageURL:     optional(p.ImageURL),
		PostType:     string(p.PostType),
		Community:    string(p.Community),
		AuthorID:     p.AuthorID,
		Upvotes:      p.Upvotes,
		Downvotes:    p.Downvotes,
		CommentCount: p.CommentCount,
		CreatedAt:    formatTime(p.CreatedAt),
		IsDeleted:    p.IsDeleted,
		HotScore:     hotScore,
	}

	if p.Author != nil {
		out.Profile = &Profile{
			Username:  p.Author.Username,
			AvatarURL: optional(p.Author.AvatarURL),
		}
	}

	return out
}

func toAPIPosts(posts []entities.RankedPost) []Post {
	out := make([]Post, len(posts))
	for i, v := range posts {
		out[i] = toAPIPost(v.Post, v.HotScore)
	}

	return out
}

func toAPIVote(v *entities.Vote) Vote {
	return Vote{
		ID:        v.ID,
		UserID:    v.UserID,
		PostID:    optional(v.Target.PostID),
		CommentID: optional(v.Target.CommentID),
		VoteType:  int8(v.Type),
		CreatedAt: formatTime(v.CreatedAt),
	}
}

func toAPIReport(r *entities.Report) Report {
	return Report{
		ID:          r.ID,
		ReporterID:  r.ReporterID,
		PostID:      optional(r.Target.PostID),
		CommentID:   optional(r.Target.CommentID),
		Reason:      string(r.Reason),
		Description: optional(r.Description),
		Status:      string(r.Status),
		CreatedAt:   formatTime(r.CreatedAt),
	}
}
