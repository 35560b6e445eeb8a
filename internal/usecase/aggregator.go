// Package usecase contains the business logic of the application.
package usecase

import (
	"log"
	"sort"

	"github.com/naka-gawa/github-techstack/internal/domain"
)

// DefaultTopLanguages is the number of entries kept in a tech stack.
const DefaultTopLanguages = 10

// bytesPerStar scales the star-based weight proxy. The repositories listing carries no
// per-language byte counts, so (stars+1)*bytesPerStar stands in for them.
const bytesPerStar = 1000

// Aggregator turns a repository list into a ranked, percentage-weighted language distribution.
// It holds no per-run state and is safe for concurrent use.
type Aggregator struct {
	colors ColorTable
	limit  int
	logger *log.Logger
}

// NewAggregator creates a new Aggregator instance.
// A non-positive limit means DefaultTopLanguages.
func NewAggregator(colors ColorTable, limit int, logger *log.Logger) *Aggregator {
	if limit <= 0 {
		limit = DefaultTopLanguages
	}
	return &Aggregator{
		colors: colors,
		limit:  limit,
		logger: logger,
	}
}

// Weight returns the weight proxy a qualifying repository contributes to its language.
func Weight(repo domain.Repository) int64 {
	return (int64(repo.StargazersCount) + 1) * bytesPerStar
}

// Qualifies reports whether repo counts towards the tech stack: not a fork and has a language.
func Qualifies(repo domain.Repository) bool {
	return !repo.Fork && repo.Language != ""
}

// Aggregate computes the tech stack of repos.
// Entries are ordered by percentage descending, ties by language name ascending, and cut to the
// aggregator's limit. Percentages are shares of the weight of all qualifying repositories, so they
// sum to 100 unless languages were cut. No qualifying repositories yields an empty slice.
func (a *Aggregator) Aggregate(repos []domain.Repository) []domain.TechStackEntry {
	languageStats := make(map[string]*domain.LanguageStat)
	var totalWeight int64

	for _, repo := range repos {
		if !Qualifies(repo) {
			continue
		}
		stat, ok := languageStats[repo.Language]
		if !ok {
			stat = &domain.LanguageStat{}
			languageStats[repo.Language] = stat
		}
		weight := Weight(repo)
		stat.Count++
		stat.Weight += weight
		totalWeight += weight
	}

	techStack := make([]domain.TechStackEntry, 0, len(languageStats))
	for language, stat := range languageStats {
		var percentage float64
		if totalWeight > 0 {
			percentage = float64(stat.Weight) / float64(totalWeight) * 100
		}
		techStack = append(techStack, domain.TechStackEntry{
			Language:   language,
			Count:      stat.Count,
			Percentage: percentage,
			Color:      a.colors.Lookup(language),
		})
	}

	sort.Slice(techStack, func(i, j int) bool {
		if techStack[i].Percentage != techStack[j].Percentage {
			return techStack[i].Percentage > techStack[j].Percentage
		}
		return techStack[i].Language < techStack[j].Language
	})

	if len(techStack) > a.limit {
		a.logger.Printf("Usecase: keeping top %d of %d languages.\n", a.limit, len(techStack))
		techStack = techStack[:a.limit]
	}
	return techStack
}
