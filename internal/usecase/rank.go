package usecase

import (
	"slices"
	"sort"

	"github.com/naka-gawa/github-techstack/internal/domain"
)

// DefaultRankLimit is the number of repositories shown in the ranking.
const DefaultRankLimit = 12

// RankTop returns at most limit repositories ordered by stars plus forks, descending.
// Equal scores keep their input order. Forks are not filtered and repos is not modified.
func RankTop(repos []domain.Repository, limit int) []domain.Repository {
	if limit <= 0 {
		return []domain.Repository{}
	}
	ranked := slices.Clone(repos)
	if ranked == nil {
		ranked = []domain.Repository{}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Popularity() > ranked[j].Popularity()
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
