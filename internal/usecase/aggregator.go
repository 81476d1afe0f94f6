// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/naka-gawa/issue-dashboard/internal/domain"
	"github.com/naka-gawa/issue-dashboard/internal/gateway"
)

// GeneratedAtLayout is ISO-8601 with millisecond precision.
const GeneratedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Aggregator is the use case for summarizing the issues of a repository.
// It orchestrates fetching and reduces the result into a Report.
type Aggregator struct {
	fetcher    gateway.Fetcher
	logger     zerolog.Logger
	now        func() time.Time
	ageStats   bool
	crossCheck bool
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock overrides the source of the generation timestamp.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// WithAgeStats adds open issue age statistics to the summary.
func WithAgeStats(enabled bool) Option {
	return func(a *Aggregator) { a.ageStats = enabled }
}

// WithCrossCheck compares the aggregated open/closed counts against the
// totals reported by the GraphQL API and logs a warning on mismatch.
func WithCrossCheck(enabled bool) Option {
	return func(a *Aggregator) { a.crossCheck = enabled }
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger zerolog.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run fetches every item of the repository and aggregates it into a Report.
// A fetch failure aborts the run; no partial report is returned.
func (a *Aggregator) Run(ctx context.Context, repo domain.Repository) (*domain.Report, error) {
	items, err := a.fetcher.FetchIssues(ctx, repo)
	if err != nil {
		return nil, err
	}

	a.logger.Info().Int("items", len(items)).Msg("[2/3] Aggregating issues...")
	report := a.Aggregate(items, repo.String())
	a.logger.Info().
		Int("total", report.Summary.TotalIssues).
		Int("open", report.Summary.OpenIssues).
		Int("closed", report.Summary.ClosedIssues).
		Msg("Aggregation complete.")

	if a.crossCheck {
		a.verifyCounts(ctx, repo, report.Summary)
	}
	return report, nil
}

// Aggregate drops pull requests, projects the remaining items into issues
// and computes the summary. The issue order follows the input order.
// Nil elements are skipped.
func (a *Aggregator) Aggregate(items []*domain.RawItem, repository string) *domain.Report {
	now := a.now().UTC()

	issues := make([]domain.Issue, 0, len(items))
	for _, item := range items {
		if item == nil || item.IsPullRequest() {
			continue
		}
		issues = append(issues, project(item))
	}

	summary := summarize(issues)
	if a.ageStats {
		summary.AgeStats = computeAgeStats(issues, now)
	}

	return &domain.Report{
		GeneratedAt: now.Format(GeneratedAtLayout),
		Repository:  repository,
		Summary:     summary,
		Issues:      issues,
	}
}

func project(item *domain.RawItem) domain.Issue {
	labels := make([]string, 0, len(item.Labels))
	for _, label := range item.Labels {
		labels = append(labels, label.Name)
	}
	return domain.Issue{
		Number:    item.Number,
		Title:     item.Title,
		State:     item.State,
		Labels:    labels,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func summarize(issues []domain.Issue) domain.Summary {
	summary := domain.Summary{
		TotalIssues:    len(issues),
		StateBreakdown: make(map[string]int),
	}
	for _, issue := range issues {
		switch issue.State {
		case domain.StateOpen:
			summary.OpenIssues++
		case domain.StateClosed:
			summary.ClosedIssues++
		}
		for _, label := range issue.Labels {
			if strings.HasPrefix(label, domain.StateLabelPrefix) {
				summary.StateBreakdown[label]++
			}
		}
	}
	return summary
}

func (a *Aggregator) verifyCounts(ctx context.Context, repo domain.Repository, summary domain.Summary) {
	counts, err := a.fetcher.CountIssues(ctx, repo)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Skipping issue count cross-check")
		return
	}
	if counts.Open != summary.OpenIssues || counts.Closed != summary.ClosedIssues {
		a.logger.Warn().
			Int("graphql_open", counts.Open).
			Int("graphql_closed", counts.Closed).
			Int("report_open", summary.OpenIssues).
			Int("report_closed", summary.ClosedIssues).
			Msg("Issue counts differ from GraphQL totals; issues may have changed during the run")
		return
	}
	a.logger.Debug().Msg("Issue counts match GraphQL totals.")
}
