package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-techstack/internal/domain"
	"github.com/naka-gawa/github-techstack/internal/gateway"
)

// Outcome is the terminal result of one search: exactly one of Result and Err is set.
type Outcome struct {
	Token    uint64
	Username string
	Result   *domain.SearchResult
	Err      error
}

// Searcher is the use case behind "run search for username".
// It orchestrates the fetcher and the aggregation of the fetched data.
type Searcher struct {
	fetcher    gateway.Fetcher
	aggregator *Aggregator
	rankLimit  int
	logger     *log.Logger
	seq        atomic.Uint64
}

// NewSearcher creates a new Searcher instance.
// A non-positive rankLimit means DefaultRankLimit.
func NewSearcher(fetcher gateway.Fetcher, aggregator *Aggregator, rankLimit int, logger *log.Logger) *Searcher {
	if rankLimit <= 0 {
		rankLimit = DefaultRankLimit
	}
	return &Searcher{
		fetcher:    fetcher,
		aggregator: aggregator,
		rankLimit:  rankLimit,
		logger:     logger,
	}
}

// NextToken returns a new sequence token, strictly greater than any previous one.
func (s *Searcher) NextToken() uint64 {
	return s.seq.Add(1)
}

// Search runs one search tagged with a fresh token. See SearchWithToken.
func (s *Searcher) Search(ctx context.Context, username string) (*domain.SearchResult, error) {
	return s.SearchWithToken(ctx, s.NextToken(), username)
}

// SearchWithToken performs the main business logic for one username.
// A blank username fails with a validation error before any network call. Otherwise the profile
// is fetched first and the repositories only once it succeeded; any failure is returned as a
// single *domain.SearchError carrying token, with no partial result.
func (s *Searcher) SearchWithToken(ctx context.Context, token uint64, username string) (*domain.SearchResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		err := domain.NewValidationError(domain.MsgEmptyUsername)
		err.Token = token
		return nil, err
	}

	s.logger.Printf("Usecase: search #%d for %q started.\n", token, username)

	profile, err := s.fetcher.FetchProfile(ctx, username)
	if err != nil {
		return nil, s.fail(token, username, err)
	}
	repos, err := s.fetcher.FetchRepositories(ctx, username)
	if err != nil {
		return nil, s.fail(token, username, err)
	}
	if repos == nil {
		repos = []domain.Repository{}
	}

	result := &domain.SearchResult{
		Token:           token,
		Username:        username,
		Profile:         *profile,
		Repositories:    repos,
		TechStack:       s.aggregator.Aggregate(repos),
		TopRepositories: RankTop(repos, s.rankLimit),
		Summary:         Summarize(repos),
	}
	s.logger.Printf("Usecase: search #%d complete, %d repositories, %d languages.\n", token, len(repos), len(result.TechStack))
	return result, nil
}

// fail tags err with token. Errors outside the domain taxonomy are reported as transport failures.
func (s *Searcher) fail(token uint64, username string, err error) error {
	s.logger.Printf("Usecase: search #%d for %q failed: %v\n", token, username, err)
	var searchErr *domain.SearchError
	if !errors.As(err, &searchErr) {
		searchErr = domain.NewTransportError(err)
	}
	tagged := *searchErr
	tagged.Token = token
	return &tagged
}

// SearchAll runs independent searches for usernames, at most concurrency at a time
// (unbounded when concurrency <= 0). A failed search never stops the others.
// Outcomes are returned in input order.
func (s *Searcher) SearchAll(ctx context.Context, usernames []string, concurrency int) []Outcome {
	outcomes := make([]Outcome, len(usernames))

	var eg errgroup.Group
	if concurrency > 0 {
		eg.SetLimit(concurrency)
	}
	for i, username := range usernames {
		token := s.NextToken()
		eg.Go(func() error {
			result, err := s.SearchWithToken(ctx, token, username)
			outcomes[i] = Outcome{Token: token, Username: username, Result: result, Err: err}
			return nil
		})
	}
	// Every goroutine returns nil; failures live in the outcomes.
	_ = eg.Wait()
	return outcomes
}
