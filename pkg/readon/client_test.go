package readon

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	votes := map[string]int8{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/posts":
			assert.Equal(t, "top", r.URL.Query().Get("sort"))
			assert.Equal(t, "politiki", r.URL.Query().Get("community"))
			_, _ = w.Write([]byte(`[{"id":"p1","title":"t","post_type":"text","created_at":"2024-03-01T12:00:00Z","profiles":{"username":"nikos","avatar_url":null}}]`))
		case "/api/votes":
			if r.Header.Get("Authorization") != "Bearer token" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
				return
			}

			var req struct {
				PostID   string `json:"post_id"`
				VoteType int8   `json:"vote_type"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

			switch votes[req.PostID] {
			case req.VoteType:
				delete(votes, req.PostID)
				_, _ = w.Write([]byte(`{"message":"Vote removed"}`))
			case 0:
				votes[req.PostID] = req.VoteType
				w.WriteHeader(http.StatusCreated)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": "v1", "post_id": req.PostID, "vote_type": req.VoteType})
			default:
				votes[req.PostID] = req.VoteType
				_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": "v1", "post_id": req.PostID, "vote_type": req.VoteType})
			}
		case "/api/post-counts":
			_, _ = w.Write([]byte(`{"p1":{"upvotes":2,"downvotes":1}}`))
		case "/api/reports":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Έχετε ήδη αναφέρει αυτό το περιεχόμενο"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	c := NewClient(srv.URL)
	defer c.Close()

	posts, err := c.ListPosts(ctx, "top", "politiki")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "nikos", posts[0].Profile.Username)
	assert.Nil(t, posts[0].HotScore)

	_, err = c.Vote(ctx, "p1", Upvote)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Unauthorized", apiErr.Message)

	c.SetToken("token")

	res, err := c.Vote(ctx, "p1", Upvote)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, Upvote, res.Vote.VoteType)

	res, err = c.Vote(ctx, "p1", Downvote)
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, Downvote, res.Vote.VoteType)

	res, err = c.Vote(ctx, "p1", Downvote)
	require.NoError(t, err)
	assert.Nil(t, res.Vote)

	counts, err := c.PostCounts(ctx, []string{"p1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]Counts{"p1": {Upvotes: 2, Downvotes: 1}}, counts)

	_, err = c.Report(ctx, ReportRequest{PostID: "p1", Reason: "spam"})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Έχετε ήδη αναφέρει αυτό το περιεχόμενο", apiErr.Message)

	_, err = c.Communities(ctx)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Not Found", apiErr.Message)
}
