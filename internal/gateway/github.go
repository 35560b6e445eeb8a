// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying client and its error shapes.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"

	"github.com/naka-gawa/github-techstack/internal/domain"
)

// ReposPerPage is the size of the single page of repositories requested per user.
const ReposPerPage = 100

const reposSortUpdated = "updated"

// Fetcher defines the behavior of a gateway for fetching a user's data from GitHub.
type Fetcher interface {
	FetchProfile(ctx context.Context, username string) (*domain.Profile, error)
	FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error)
}

// Options configures the HTTP side of a GitHubGateway.
type Options struct {
	// BaseURL overrides the API root, e.g. for GitHub Enterprise or tests.
	BaseURL   string
	UserAgent string
	// Timeout bounds each HTTP request. Zero means no client-side timeout.
	Timeout time.Duration
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient *github.Client
	logger     *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// Requests are unauthenticated. Secondary rate limits reported by GitHub are logged
// and surfaced to the caller, never waited out.
func NewGitHubGateway(opts Options, logger *log.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil,
		github_ratelimit.WithSingleSleepLimit(0, func(*github_ratelimit.CallbackContext) {
			logger.Println("  GitHub reported a secondary rate limit; not waiting.")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	httpClient := &http.Client{
		Transport: rateLimitWaiter,
		Timeout:   opts.Timeout,
	}
	restClient := github.NewClient(httpClient)
	if opts.BaseURL != "" {
		baseURL, err := parseBaseURL(opts.BaseURL)
		if err != nil {
			return nil, err
		}
		restClient.BaseURL = baseURL
	}
	if opts.UserAgent != "" {
		restClient.UserAgent = opts.UserAgent
	}
	return &GitHubGateway{
		restClient: restClient,
		logger:     logger,
	}, nil
}

// parseBaseURL makes sure the URL ends with a slash, which go-github requires.
func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	baseURL, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", raw, err)
	}
	return baseURL, nil
}

// FetchProfile fetches GET /users/{username}.
func (g *GitHubGateway) FetchProfile(ctx context.Context, username string) (*domain.Profile, error) {
	g.logger.Printf("[1/2] Fetching profile for %q...\n", username)
	user, resp, err := g.restClient.Users.Get(ctx, username)
	if err != nil {
		return nil, classify(resp, err, domain.NewProfileFetchError)
	}
	g.logger.Println("Completed fetching profile.")
	return toProfile(user), nil
}

// FetchRepositories fetches one page of GET /users/{username}/repos, most recently updated first.
func (g *GitHubGateway) FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error) {
	g.logger.Printf("[2/2] Fetching up to %d repositories for %q...\n", ReposPerPage, username)
	opts := &github.RepositoryListByUserOptions{
		Sort:        reposSortUpdated,
		ListOptions: github.ListOptions{PerPage: ReposPerPage},
	}
	repos, resp, err := g.restClient.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		return nil, classify(resp, err, domain.NewRepositoriesFetchError)
	}
	result := make([]domain.Repository, 0, len(repos))
	for _, repo := range repos {
		result = append(result, toRepository(repo))
	}
	g.logger.Printf("Completed fetching %d repositories.\n", len(result))
	return result, nil
}

// classify turns a go-github failure into the domain error taxonomy.
// fetchErr builds the error for statuses that are neither 404 nor 403.
func classify(resp *github.Response, err error, fetchErr func(int, error) *domain.SearchError) *domain.SearchError {
	var rateLimitErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateLimitErr) || errors.As(err, &abuseErr) {
		return domain.NewRateLimitError(err)
	}
	// No response, or a successful status whose body could not be read or decoded.
	if resp == nil || resp.Response == nil || isSuccess(resp.StatusCode) {
		return domain.NewTransportError(err)
	}
	switch resp.StatusCode {
	case http.StatusNotFound:
		return domain.NewNotFoundError(err)
	case http.StatusForbidden:
		return domain.NewRateLimitError(err)
	default:
		return fetchErr(resp.StatusCode, err)
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func toProfile(user *github.User) *domain.Profile {
	return &domain.Profile{
		Login:       user.GetLogin(),
		Name:        user.GetName(),
		Bio:         user.GetBio(),
		AvatarURL:   user.GetAvatarURL(),
		HTMLURL:     user.GetHTMLURL(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
		PublicRepos: user.GetPublicRepos(),
	}
}

func toRepository(repo *github.Repository) domain.Repository {
	return domain.Repository{
		Name:            repo.GetName(),
		Description:     repo.GetDescription(),
		HTMLURL:         repo.GetHTMLURL(),
		Language:        repo.GetLanguage(),
		StargazersCount: repo.GetStargazersCount(),
		ForksCount:      repo.GetForksCount(),
		Fork:            repo.GetFork(),
		UpdatedAt:       repo.GetUpdatedAt().Time,
	}
}
