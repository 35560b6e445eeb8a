package domain

// LanguageStat accumulates the usage of one language during a single aggregation run.
type LanguageStat struct {
	Count  int
	Weight int64
}

// TechStackEntry is one row of the language distribution summary.
type TechStackEntry struct {
	Language   string  `json:"language"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// Summary holds headline numbers about a user's repositories.
type Summary struct {
	TotalStars         int     `json:"total_stars"`
	TotalForks         int     `json:"total_forks"`
	MedianStars        float64 `json:"median_stars"`
	OwnRepositories    int     `json:"own_repositories"`
	ForkedRepositories int     `json:"forked_repositories"`
	Languages          int     `json:"languages"`
}

// SearchResult is everything produced by one successful search.
// Token identifies the search that produced it so callers can drop stale results.
type SearchResult struct {
	Token           uint64           `json:"token"`
	Username        string           `json:"username"`
	Profile         Profile          `json:"profile"`
	Repositories    []Repository     `json:"repositories"`
	TechStack       []TechStackEntry `json:"tech_stack"`
	TopRepositories []Repository     `json:"top_repositories"`
	Summary         Summary          `json:"summary"`
}
