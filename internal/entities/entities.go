// Package entities contains main entities of service.
package entities

import (
	"errors"
	"time"
)

// ErrInvalidTarget is returned when a target has both or none of post and comment set.
var ErrInvalidTarget = errors.New("must provide either post_id or comment_id")

// PostType ...
type PostType string

const (
	// TextPost ...
	TextPost PostType = "text"
	// LinkPost ...
	LinkPost PostType = "link"
	// ImagePost ...
	ImagePost PostType = "image"
)

// Valid returns true if t is one of known post types.
func (t PostType) Valid() bool {
	switch t {
	case TextPost, LinkPost, ImagePost:
		return true
	default:
		return false
	}
}

// Post ...
type Post struct {
	ID           string
	Title        string
	Content      string
	URL          string
	ImageURL     string
	PostType     PostType
	Community    Community
	AuthorID     string
	Author       *Profile
	Upvotes      int
	Downvotes    int
	CommentCount int
	CreatedAt    time.Time
	IsDeleted    bool
}

// Score returns net votes of the post.
func (p Post) Score() int {
	return p.Upvotes - p.Downvotes
}

// Body returns the field which is primary for the post type.
func (p Post) Body() string {
	switch p.PostType {
	case LinkPost:
		return p.URL
	case ImagePost:
		return p.ImageURL
	default:
		return p.Content
	}
}

// RankedPost is a post with an ephemeral hot score, which is set only under hot sort.
type RankedPost struct {
	*Post
	HotScore *float64
}

// Profile ...
type Profile struct {
	ID        string
	Username  string
	AvatarURL string
}

// VoteType is a vote magnitude.
type VoteType int8

const (
	// NoVote means there is no vote.
	NoVote VoteType = 0
	// Upvote ...
	Upvote VoteType = 1
	// Downvote ...
	Downvote VoteType = -1
)

// Valid returns true for upvote and downvote.
func (v VoteType) Valid() bool {
	return v == Upvote || v == Downvote
}

// Target is a post or a comment; exactly one of fields is set.
type Target struct {
	PostID    string
	CommentID string
}

// PostTarget ...
func PostTarget(id string) Target {
	return Target{PostID: id}
}

// CommentTarget ...
func CommentTarget(id string) Target {
	return Target{CommentID: id}
}

// Validate ...
func (t Target) Validate() error {
	if (t.PostID == "") == (t.CommentID == "") {
		return ErrInvalidTarget
	}

	return nil
}

// IsPost ...
func (t Target) IsPost() bool {
	return t.PostID != ""
}

// ID returns identifier of the post or the comment.
func (t Target) ID() string {
	if t.IsPost() {
		return t.PostID
	}

	return t.CommentID
}

// Vote ...
type Vote struct {
	ID        string
	UserID    string
	Target    Target
	Type      VoteType
	CreatedAt time.Time
}

// Counts are vote tallies of a post.
type Counts struct {
	Upvotes   int
	Downvotes int
}

// ReportReason ...
type ReportReason string

const (
	// SpamReason ...
	SpamReason ReportReason = "spam"
	// HarassmentReason ...
	HarassmentReason ReportReason = "harassment"
	// InappropriateReason ...
	InappropriateReason ReportReason = "inappropriate"
	// MisinformationReason ...
	MisinformationReason ReportReason = "misinformation"
	// OtherReason ...
	OtherReason ReportReason = "other"
)

// Valid ...
func (r ReportReason) Valid() bool {
	switch r {
	case SpamReason, HarassmentReason, InappropriateReason, MisinformationReason, OtherReason:
		return true
	default:
		return false
	}
}

// ReportStatus ...
type ReportStatus string

const (
	// PendingStatus ...
	PendingStatus ReportStatus = "pending"
	// ReviewedStatus ...
	ReviewedStatus ReportStatus = "reviewed"
	// ResolvedStatus ...
	ResolvedStatus ReportStatus = "resolved"
	// DismissedStatus ...
	DismissedStatus ReportStatus = "dismissed"
)

// Report ...
type Report struct {
	ID          string
	ReporterID  string
	Target      Target
	Reason      ReportReason
	Description string
	Status      ReportStatus
	CreatedAt   time.Time
}
