package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-techstack/internal/domain"
)

func TestRankTop(t *testing.T) {
	repos := []domain.Repository{
		{Name: "small", StargazersCount: 1},
		{Name: "popular-fork", StargazersCount: 10, ForksCount: 30, Fork: true},
		{Name: "tie-a", StargazersCount: 3, ForksCount: 2},
		{Name: "big", StargazersCount: 50},
		{Name: "tie-b", StargazersCount: 5},
	}

	ranked := RankTop(repos, 4)

	require.Len(t, ranked, 4)
	assert.Equal(t, []string{"big", "popular-fork", "tie-a", "tie-b"}, names(ranked))
	// The input order is left untouched.
	assert.Equal(t, "small", repos[0].Name)
}

func TestRankTop_Limits(t *testing.T) {
	var repos []domain.Repository
	for i := 0; i < 20; i++ {
		repos = append(repos, domain.Repository{StargazersCount: i % 7, ForksCount: i % 3})
	}

	ranked := RankTop(repos, DefaultRankLimit)
	require.Len(t, ranked, DefaultRankLimit)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Popularity(), ranked[i].Popularity())
	}

	assert.Len(t, RankTop(repos[:3], DefaultRankLimit), 3)
	assert.Empty(t, RankTop(repos, 0))
	assert.Empty(t, RankTop(nil, DefaultRankLimit))
}

func names(repos []domain.Repository) []string {
	result := make([]string, 0, len(repos))
	for _, r := range repos {
		result = append(result, r.Name)
	}
	return result
}
