// Package readon is a client of readon API with client-side vote and counts caches.
package readon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"resty.dev/v3"
)

// CreateTimeout limits post creation requests.
const CreateTimeout = 10 * time.Second

// ErrUnauthenticated is returned when an action requires a signed in user.
var ErrUnauthenticated = errors.New("unauthenticated")

// APIError is a non-successful response of the API.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

// Error ...
func (e *APIError) Error() string {
	return fmt.Sprintf("readon: %d: %s", e.StatusCode, e.Message)
}

// VoteType ...
type VoteType int8

const (
	// NoVote means the user has not voted.
	NoVote VoteType = 0
	// Upvote ...
	Upvote VoteType = 1
	// Downvote ...
	Downvote VoteType = -1
)

// Counts ...
type Counts struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

// Profile ...
type Profile struct {
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

// Post ...
type Post struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      *string   `json:"content"`
	URL          *string   `json:"url"`
	ImageURL     *string   `json:"image_url"`
	PostType     string    `json:"post_type"`
	Community    string    `json:"community"`
	AuthorID     string    `json:"author_id"`
	Upvotes      int       `json:"upvotes"`
	Downvotes    int       `json:"downvotes"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	IsDeleted    bool      `json:"is_deleted"`
	HotScore     *float64  `json:"hot_score,omitempty"`
	Profile      *Profile  `json:"profiles"`
}

// CreatePostRequest ...
type CreatePostRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content,omitempty"`
	URL       string `json:"url,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	PostType  string `json:"post_type"`
	Community string `json:"community,omitempty"`
}

// Vote ...
type Vote struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PostID    *string   `json:"post_id"`
	CommentID *string   `json:"comment_id"`
	VoteType  VoteType  `json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
}

// VoteResponse is a result of vote request. Vote is nil when the vote was removed.
type VoteResponse struct {
	Created bool
	Vote    *Vote
}

// ReportRequest ...
type ReportRequest struct {
	PostID      string `json:"post_id,omitempty"`
	CommentID   string `json:"comment_id,omitempty"`
	Reason      string `json:"reason"`
	Description string `json:"description,omitempty"`
}

// Report ...
type Report struct {
	ID          string    `json:"id"`
	ReporterID  string    `json:"reporter_id"`
	PostID      *string   `json:"post_id"`
	CommentID   *string   `json:"comment_id"`
	Reason      string    `json:"reason"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Metadata is a link preview.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	SiteName    string `json:"siteName"`
	Type        string `json:"type"`
	URL         string `json:"url"`
}

// Community ...
type Community struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type postIDsRequest struct {
	PostIDs []string `json:"postIds"`
}

// Client ...
type Client struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates new instance of Client.
func NewClient(baseURL string) *Client {
	return &Client{
		client: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json"),
	}
}

// SetToken sets bearer token of the signed in user; empty token signs out.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Close ...
func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) r(ctx context.Context) *resty.Request {
	r := c.client.R().WithContext(ctx)

	c.mu.RLock()
	if c.token != "" {
		r.SetAuthToken(c.token)
	}
	c.mu.RUnlock()

	return r
}

// ListPosts returns ranked posts; empty community means all of them.
func (c *Client) ListPosts(ctx context.Context, sort, community string) ([]Post, error) {
	q := url.Values{}
	if sort != "" {
		q.Set("sort", sort)
	}
	if community != "" {
		q.Set("community", community)
	}

	var out []Post
	res, err := c.r(ctx).SetQueryParamsFromValues(q).SetResult(&out).Get("/api/posts")
	if err := check(res, err); err != nil {
		return nil, err
	}

	return out, nil
}

// GetPost ...
func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	var out Post
	res, err := c.r(ctx).SetPathParam("id", id).SetResult(&out).Get("/api/posts/{id}")
	if err := check(res, err); err != nil {
		return nil, err
	}

	return &out, nil
}

// CreatePost ...
func (c *Client) CreatePost(ctx context.Context, p CreatePostRequest) (*Post, error) {
	ctx, cancel := context.WithTimeout(ctx, CreateTimeout)
	defer cancel()

	var out Post
	res, err := c.r(ctx).SetBody(p).SetResult(&out).Post("/api/posts")
	if err := check(res, err); err != nil {
		return nil, err
	}

	return &out, nil
}

// Vote casts a vote on the post. Repeating the current vote removes it.
func (c *Client) Vote(ctx context.Context, postID string, v VoteType) (*VoteResponse, error) {
	var out struct {
		Vote
		Message string `json:"message"`
	}

	res, err := c.r(ctx).SetBody(map[string]interface{}{
		"post_id":   postID,
		"vote_type": v,
	}).SetResult(&out).Post("/api/votes")
	if err := check(res, err); err != nil {
		return nil, err
	}

	if out.ID == "" {
		return &VoteResponse{}, nil
	}

	return &VoteResponse{
		Created: res.StatusCode() == http.StatusCreated,
		Vote:    &out.Vote,
	}, nil
}

// UserVotes returns votes of signed in user for the posts.
func (c *Client) UserVotes(ctx context.Context, postIDs []string) (map[string]VoteType, error) {
	out := map[string]VoteType{}
	res, err := c.r(ctx).SetBody(postIDsRequest{PostIDs: postIDs}).SetResult(&out).Post("/api/user-votes")
	if err := check(res, err); err != nil {
		return nil, err
	}

	return out, nil
}

// PostCounts returns vote counts of the posts.
func (c *Client) PostCounts(ctx context.Context, postIDs []string) (map[string]Counts, error) {
	out := map[string]Counts{}
	res, err := c.r(ctx).SetBody(postIDsRequest{PostIDs: postIDs}).SetResult(&out).Post("/api/post-counts")
	if err := check(res, err); err != nil {
		return nil, err
	}

	return out, nil
}

// Report ...
func (c *Client) Report(ctx context.Context, r ReportRequest) (*Report, error) {
	var out Report
	res, err := c.r(ctx).SetBody(r).SetResult(&out).Post("/api/reports")
	if err := check(res, err); err != nil {
		return nil, err
	}

	return &out, nil
}

// Metadata returns link preview of the url.
func (c *Client) Metadata(ctx context.Context, u string) (*Metadata, error) {
	var out Metadata
	res, err := c.r(ctx).SetQueryParam("url", u).SetResult(&out).Get("/api/metadata")
	if err := check(res, err); err != nil {
		return nil, err
	}

	return &out, nil
}

// Communities ...
func (c *Client) Communities(ctx context.Context) ([]Community, error) {
	var out []Community
	res, err := c.r(ctx).SetResult(&out).Get("/api/communities")
	if err := check(res, err); err != nil {
		return nil, err
	}

	return out, nil
}

func check(res *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}

	if res.IsError() {
		e := APIError{StatusCode: res.StatusCode()}
		if err := json.Unmarshal([]byte(res.String()), &e); err != nil || e.Message == "" {
			e.Message = http.StatusText(res.StatusCode())
		}

		return &e
	}

	return nil
}
