package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTarget_Validate(t *testing.T) {
	require.NoError(t, PostTarget("1").Validate())
	require.NoError(t, CommentTarget("1").Validate())
	require.True(t, errors.Is(Target{}.Validate(), ErrInvalidTarget))
	require.True(t, errors.Is(Target{PostID: "1", CommentID: "2"}.Validate(), ErrInvalidTarget))
}

func TestPost_Body(t *testing.T) {
	p := Post{Content: "c", URL: "u", ImageURL: "i"}

	p.PostType = TextPost
	assert.Equal(t, "c", p.Body())
	p.PostType = LinkPost
	assert.Equal(t, "u", p.Body())
	p.PostType = ImagePost
	assert.Equal(t, "i", p.Body())
}

func TestCommunities(t *testing.T) {
	c := Communities()

	require.Len(t, c, 10)
	assert.Equal(t, DefaultCommunity, c[0])
	assert.Equal(t, Community("athlitika"), c[1])

	assert.True(t, Community("politiki").Valid())
	assert.False(t, Community("politics").Valid())
	assert.Equal(t, "Πολιτική", Community("politiki").DisplayName())
	assert.Equal(t, "unknown", Community("unknown").DisplayName())
}

func TestVoteType_Valid(t *testing.T) {
	assert.True(t, Upvote.Valid())
	assert.True(t, Downvote.Valid())
	assert.False(t, NoVote.Valid())
	assert.False(t, VoteType(2).Valid())
}
