package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi"

	"github.com/readon-gr/readon/internal/api"
	"github.com/readon-gr/readon/internal/entities"
	"github.com/readon-gr/readon/internal/metadata"
	"github.com/readon-gr/readon/internal/ranking"
	"github.com/readon-gr/readon/internal/service"
	"github.com/readon-gr/readon/internal/storage"
	"github.com/readon-gr/readon/internal/voting"
)

const (
	msgUnauthorized       = "Unauthorized"
	msgInvalidBody        = "Invalid request body"
	msgInvalidTarget      = "Must provide either post_id or comment_id"
	msgInvalidCommunity   = "Invalid community"
	msgAlreadyReported    = "Έχετε ήδη αναφέρει αυτό το περιεχόμενο"
	msgTitleRequired      = "Ο τίτλος είναι υποχρεωτικός"
	msgContentRequired    = "Το περιεχόμενο είναι υποχρεωτικό για text posts"
	msgURLRequiredForLink = "Το URL είναι υποχρεωτικό για link posts"
	msgImageRequired      = "Το URL εικόνας είναι υποχρεωτικό για image posts"
)

func (s server) listPosts(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /posts Posts ListPosts
	//
	// Returns ranked posts. Unknown sort falls back to hot.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: sort
	//   in: query
	//   required: false
	//   default: hot
	//   type: string
	//   enum: [hot, new, top]
	// - name: community
	//   in: query
	//   required: false
	//   type: string
	//   example: technologia
	// responses:
	//   '200':
	//     description: Posts
	//     schema:
	//       type: array
	//       items:
	//         "$ref": "#/definitions/Post"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	sort := ranking.Sort(r.URL.Query().Get("sort"))
	if !sort.Valid() {
		sort = ranking.Hot
	}

	var community *entities.Community
	if v := r.URL.Query().Get("community"); v != "" {
		c := entities.Community(v)
		if !c.Valid() {
			api.WriteError(w, http.StatusBadRequest, msgInvalidCommunity)
			return
		}
		community = &c
	}

	posts, err := s.s.ListPosts(r.Context(), sort, community)
	if err != nil {
		api.WriteInternalError(r.Context(), w, err, "Failed to fetch posts")
		return
	}

	api.WriteOK(w, http.StatusOK, toAPIPosts(posts))
}

func (s server) getPost(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /posts/{id} Posts GetPost
	//
	// Returns post by id.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: Post
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '404':
	//     description: post not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	p, err := s.s.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, "Post not found")
			return
		}
		api.WriteInternalError(r.Context(), w, err, "Failed to fetch post")
		return
	}

	api.WriteOK(w, http.StatusOK, toAPIPost(p, nil))
}

func (s server) createPost(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /posts Posts CreatePost
	//
	// Creates post on behalf of authenticated user.
	//
	// ---
	// produces:
	// - application/json
	// consumes:
	// - application/json
	// parameters:
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/CreatePostRequest"
	// responses:
	//   '201':
	//     description: Created post
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '401':
	//     description: unauthorized
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	uid, ok := userID(r)
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	p, msg := req.toPost()
	if msg != "" {
		api.WriteError(w, http.StatusBadRequest, msg)
		return
	}
	p.AuthorID = uid

	created, err := s.s.CreatePost(r.Context(), p)
	if err != nil {
		api.WriteInternalError(r.Context(), w, err, "Failed to create post")
		return
	}

	api.WriteOK(w, http.StatusCreated, toAPIPost(created, nil))
}

func (s server) vote(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /votes Votes Vote
	//
	// Casts, switches or retracts a vote. Repeating the same vote retracts it.
	//
	// ---
	// produces:
	// - application/json
	// consumes:
	// - application/json
	// parameters:
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/VoteRequest"
	// responses:
	//   '200':
	//     description: Changed vote or removal message
	//     schema:
	//       "$ref": "#/definitions/Vote"
	//   '201':
	//     description: Created vote
	//     schema:
	//       "$ref": "#/definitions/Vote"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '401':
	//     description: unauthorized
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: target not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '409':
	//     description: vote was changed concurrently
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	uid, ok := userID(r)
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	target := entities.Target{PostID: req.PostID, CommentID: req.CommentID}
	if err := target.Validate(); err != nil {
		api.WriteError(w, http.StatusBadRequest, msgInvalidTarget)
		return
	}

	t := entities.VoteType(req.VoteType)
	if !t.Valid() {
		api.WriteError(w, http.StatusBadRequest, "Invalid vote type")
		return
	}

	res, err := s.s.Vote(r.Context(), uid, target, t)
	if err != nil {
		if errors.Is(err, storage.ErrTargetNotFound) {
			api.WriteError(w, http.StatusNotFound, "Target not found")
			return
		}
		if errors.Is(err, storage.ErrAlreadyExists) {
			api.WriteError(w, http.StatusConflict, "Vote conflict")
			return
		}
		api.WriteInternalError(r.Context(), w, err, "Failed to vote")
		return
	}

	switch res.Transition.Action {
	case voting.Delete:
		api.WriteOK(w, http.StatusOK, Message{Message: "Vote removed"})
	case voting.Insert:
		api.WriteOK(w, http.StatusCreated, toAPIVote(res.Vote))
	default:
		api.WriteOK(w, http.StatusOK, toAPIVote(res.Vote))
	}
}

func (s server) getUserVotes(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /user-votes Votes GetUserVotes
	//
	// Returns votes of authenticated user for the posts. Anonymous users get empty object.
	//
	// ---
	// produces:
	// - application/json
	// consumes:
	// - application/json
	// parameters:
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/PostIDsRequest"
	// responses:
	//   '200':
	//     description: Votes by post id
	//     schema:
	//       type: object
	//       additionalProperties:
	//         type: integer
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	uid, ok := userID(r)
	if !ok {
		api.WriteOK(w, http.StatusOK, map[string]int8{})
		return
	}

	var req PostIDsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	votes, err := s.s.GetUserVotes(r.Context(), uid, req.PostIDs)
	if err != nil {
		api.WriteInternalError(r.Context(), w, err, "Failed to fetch user votes")
		return
	}

	out := make(map[string]int8, len(votes))
	for k, v := range votes {
		out[k] = int8(v)
	}

	api.WriteOK(w, http.StatusOK, out)
}

func (s server) getPostCounts(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /post-counts Posts GetPostCounts
	//
	// Returns vote counts of the posts.
	//
	// ---
	// produces:
	// - application/json
	// consumes:
	// - application/json
	// parameters:
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/PostIDsRequest"
	// responses:
	//   '200':
	//     description: Counts by post id
	//     schema:
	//       type: object
	//       additionalProperties:
	//         "$ref": "#/definitions/Counts"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	var req PostIDsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	counts, err := s.s.GetPostCounts(r.Context(), req.PostIDs)
	if err != nil {
		api.WriteInternalError(r.Context(), w, err, "Failed to fetch post counts")
		return
	}

	out := make(map[string]Counts, len(counts))
	for k, v := range counts {
		out[k] = Counts{Upvotes: v.Upvotes, Downvotes: v.Downvotes}
	}

	api.WriteOK(w, http.StatusOK, out)
}

func (s server) createReport(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /reports Moderation CreateReport
	//
	// Reports a post or a comment. Each user can report an item once.
	//
	// ---
	// produces:
	// - application/json
	// consumes:
	// - application/json
	// parameters:
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/ReportRequest"
	// responses:
	//   '201':
	//     description: Created report
	//     schema:
	//       "$ref": "#/definitions/Report"
	//   '400':
	//     description: bad request or duplicate report
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '401':
	//     description: unauthorized
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	uid, ok := userID(r)
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	target := entities.Target{PostID: req.PostID, CommentID: req.CommentID}
	if err := target.Validate(); err != nil {
		api.WriteError(w, http.StatusBadRequest, msgInvalidTarget)
		return
	}

	if req.Reason == "" {
		api.WriteError(w, http.StatusBadRequest, "Reason is required")
		return
	}

	reason := entities.ReportReason(req.Reason)
	if !reason.Valid() {
		api.WriteError(w, http.StatusBadRequest, "Invalid reason")
		return
	}

	report, err := s.s.CreateReport(r.Context(), &entities.Report{
		ReporterID:  uid,
		Target:      target,
		Reason:      reason,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyReported):
			api.WriteError(w, http.StatusBadRequest, msgAlreadyReported)
		case errors.Is(err, storage.ErrTargetNotFound):
			api.WriteError(w, http.StatusNotFound, "Target not found")
		default:
			api.WriteInternalError(r.Context(), w, err, "Failed to create report")
		}
		return
	}

	api.WriteOK(w, http.StatusCreated, toAPIReport(report))
}

func (s server) getMetadata(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /metadata Posts GetMetadata
	//
	// Returns link preview of the page.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: url
	//   in: query
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: Metadata
	//     schema:
	//       "$ref": "#/definitions/Metadata"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	u := r.URL.Query().Get("url")
	if u == "" {
		api.WriteError(w, http.StatusBadRequest, "URL is required")
		return
	}

	m, err := s.m.Fetch(r.Context(), u)
	if err != nil {
		switch {
		case errors.Is(err, metadata.ErrInvalidURL):
			api.WriteError(w, http.StatusBadRequest, "Invalid URL")
		case errors.Is(err, metadata.ErrFetchFailed):
			api.WriteError(w, http.StatusBadRequest, "Failed to fetch URL")
		default:
			api.WriteInternalError(r.Context(), w, err, "Failed to fetch metadata")
		}
		return
	}

	api.WriteOK(w, http.StatusOK, m)
}

func (s server) listCommunities(w http.ResponseWriter, _ *http.Request) {
	// swagger:operation GET /communities Posts ListCommunities
	//
	// Returns known communities, general goes first.
	//
	// ---
	// produces:
	// - application/json
	// responses:
	//   '200':
	//     description: Communities
	//     schema:
	//       type: array
	//       items:
	//         "$ref": "#/definitions/Community"

	list := entities.Communities()
	out := make([]Community, len(list))
	for i, v := range list {
		out[i] = Community{Key: string(v), Name: v.DisplayName()}
	}

	api.WriteOK(w, http.StatusOK, out)
}

func (req CreatePostRequest) toPost() (*entities.Post, string) {
	p := entities.Post{
		Title:     strings.TrimSpace(req.Title),
		PostType:  entities.PostType(req.PostType),
		Community: entities.Community(req.Community),
	}

	if p.Title == "" {
		return nil, msgTitleRequired
	}

	if p.Community == "" {
		p.Community = entities.DefaultCommunity
	}
	if !p.Community.Valid() {
		return nil, msgInvalidCommunity
	}

	switch p.PostType {
	case entities.TextPost:
		if p.Content = strings.TrimSpace(req.Content); p.Content == "" {
			return nil, msgContentRequired
		}
	case entities.LinkPost:
		if p.URL = strings.TrimSpace(req.URL); p.URL == "" {
			return nil, msgURLRequiredForLink
		}
	case entities.ImagePost:
		if p.ImageURL = strings.TrimSpace(req.ImageURL); p.ImageURL == "" {
			return nil, msgImageRequired
		}
	default:
		return nil, "Invalid post type"
	}

	return &p, ""
}
