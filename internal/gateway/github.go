// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/rs/zerolog"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/issue-dashboard/internal/config"
	"github.com/naka-gawa/issue-dashboard/internal/domain"
)

// PageSize is the maximum page size accepted by the issues listing endpoint.
const PageSize = 100

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// FetchIssues returns every issue and pull request of the repository in API order.
	FetchIssues(ctx context.Context, repo domain.Repository) ([]*domain.RawItem, error)
	// CountIssues returns the open and closed issue totals, pull requests excluded.
	CountIssues(ctx context.Context, repo domain.Repository) (domain.IssueCounts, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        zerolog.Logger
}

// issueCountQuery fetches both totals in a single round trip.
type issueCountQuery struct {
	Repository struct {
		Open struct {
			TotalCount int
		} `graphql:"open: issues(states: OPEN)"`
		Closed struct {
			TotalCount int
		} `graphql:"closed: issues(states: CLOSED)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(cfg config.GitHubConfig, logger zerolog.Logger) (*GitHubGateway, error) {
	timeout, err := cfg.HTTPTimeout()
	if err != nil {
		return nil, fmt.Errorf("invalid timeout %q: %w", cfg.Timeout, err)
	}

	var base http.RoundTripper = http.DefaultTransport
	if cfg.WaitRateLimit {
		rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
		}
		base = rateLimitWaiter
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &oauth2.Transport{
			Base:   newHeaderTransport(base, cfg.APIVersion),
			Source: ts,
		},
	}

	restClient := github.NewClient(httpClient)
	if cfg.APIEndpoint != "" && cfg.APIEndpoint != config.DefaultAPIEndpoint {
		baseURL, err := url.Parse(strings.TrimSuffix(cfg.APIEndpoint, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid API endpoint %q: %w", cfg.APIEndpoint, err)
		}
		restClient.BaseURL = baseURL
	}

	graphqlClient := githubv4.NewClient(httpClient)
	if cfg.GraphQLEndpoint != "" && cfg.GraphQLEndpoint != config.DefaultGraphQLEndpoint {
		graphqlClient = githubv4.NewEnterpriseClient(cfg.GraphQLEndpoint, httpClient)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}, nil
}

// FetchIssues lists all issues of the repository, open and closed, including
// the pull requests the endpoint returns alongside them. Pages are requested
// sequentially until one comes back short. Any failure discards what was
// fetched so far.
func (g *GitHubGateway) FetchIssues(ctx context.Context, repo domain.Repository) ([]*domain.RawItem, error) {
	if repo.Owner == "" || repo.Name == "" {
		return nil, fmt.Errorf("%w: repository owner and name are required", domain.ErrMissingConfiguration)
	}

	g.logger.Info().Str("repository", repo.String()).Msg("[1/3] Fetching issues using REST API...")
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: PageSize},
	}

	var items []*domain.RawItem
	for page := 1; ; page++ {
		if page > 1 {
			opts.Page = page
		}
		issues, _, err := g.restClient.Issues.ListByRepo(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to list issues of %s (page %d): %w", domain.ErrFetchFailed, repo, page, err)
		}
		for _, issue := range issues {
			items = append(items, toRawItem(issue))
		}
		g.logger.Debug().Int("page", page).Int("items", len(issues)).Msg("  Fetched page of issues")
		if len(issues) < PageSize {
			break
		}
	}

	g.logger.Info().Int("items", len(items)).Msg("Completed fetching issues.")
	return items, nil
}

// CountIssues queries the GraphQL API for the open and closed issue totals.
func (g *GitHubGateway) CountIssues(ctx context.Context, repo domain.Repository) (domain.IssueCounts, error) {
	g.logger.Debug().Str("repository", repo.String()).Msg("Counting issues using GraphQL API...")
	variables := map[string]interface{}{
		"owner": githubv4.String(repo.Owner),
		"name":  githubv4.String(repo.Name),
	}

	var q issueCountQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return domain.IssueCounts{}, fmt.Errorf("%w: failed to execute GraphQL query for issue counts: %w", domain.ErrFetchFailed, err)
	}
	return domain.IssueCounts{
		Open:   q.Repository.Open.TotalCount,
		Closed: q.Repository.Closed.TotalCount,
	}, nil
}

func toRawItem(issue *github.Issue) *domain.RawItem {
	item := &domain.RawItem{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		State:     issue.GetState(),
		Labels:    make([]domain.RawLabel, 0, len(issue.Labels)),
		CreatedAt: issue.GetCreatedAt().Time,
		UpdatedAt: issue.GetUpdatedAt().Time,
	}
	for _, label := range issue.Labels {
		item.Labels = append(item.Labels, domain.RawLabel{Name: label.GetName()})
	}
	if issue.PullRequestLinks != nil {
		prURL := issue.PullRequestLinks.GetURL()
		item.PullRequestURL = &prURL
	}
	return item
}
