package usecase

import (
	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-techstack/internal/domain"
)

// Summarize computes headline numbers over repos.
func Summarize(repos []domain.Repository) domain.Summary {
	var summary domain.Summary
	if len(repos) == 0 {
		return summary
	}

	stars := make(stats.Float64Data, 0, len(repos))
	forks := make(stats.Float64Data, 0, len(repos))
	languages := make(map[string]struct{})
	for _, repo := range repos {
		stars = append(stars, float64(repo.StargazersCount))
		forks = append(forks, float64(repo.ForksCount))
		if repo.Fork {
			summary.ForkedRepositories++
		} else {
			summary.OwnRepositories++
		}
		if Qualifies(repo) {
			languages[repo.Language] = struct{}{}
		}
	}

	// Sum and Median only fail on empty input, which is ruled out above.
	totalStars, _ := stats.Sum(stars)
	totalForks, _ := stats.Sum(forks)
	medianStars, _ := stats.Median(stars)

	summary.TotalStars = int(totalStars)
	summary.TotalForks = int(totalForks)
	summary.MedianStars = medianStars
	summary.Languages = len(languages)
	return summary
}
