package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-techstack/internal/domain"
)

func TestLatest_DiscardsStaleOutcomes(t *testing.T) {
	var latest Latest
	defer latest.Close()

	first, firstCtx := latest.Begin(context.Background())
	second, secondCtx := latest.Begin(context.Background())
	require.Greater(t, second, first)

	// Starting the second search cancels the first.
	assert.ErrorIs(t, firstCtx.Err(), context.Canceled)
	assert.NoError(t, secondCtx.Err())

	// The second search finishes first; the late first result must not replace it.
	assert.True(t, latest.Offer(Outcome{Token: second, Username: "bob", Result: &domain.SearchResult{Token: second}}))
	assert.False(t, latest.Offer(Outcome{Token: first, Username: "alice", Result: &domain.SearchResult{Token: first}}))

	current, ok := latest.Current()
	require.True(t, ok)
	assert.Equal(t, "bob", current.Username)
	assert.Equal(t, second, current.Result.Token)
}

func TestLatest_ErrorReplacesResult(t *testing.T) {
	var latest Latest

	_, ok := latest.Current()
	assert.False(t, ok)

	token, _ := latest.Begin(context.Background())
	assert.True(t, latest.Offer(Outcome{Token: token, Result: &domain.SearchResult{}}))

	token, _ = latest.Begin(context.Background())
	assert.True(t, latest.Offer(Outcome{Token: token, Err: domain.NewNotFoundError(nil)}))

	current, ok := latest.Current()
	require.True(t, ok)
	assert.Nil(t, current.Result)
	assert.ErrorIs(t, current.Err, domain.ErrNotFound)
}
