package usecase

import (
	"time"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/issue-dashboard/internal/domain"
)

// computeAgeStats reports, in days, how long the open issues have been open
// at now. Values are rounded to two decimals.
func computeAgeStats(issues []domain.Issue, now time.Time) *domain.AgeStats {
	var ages stats.Float64Data
	for _, issue := range issues {
		if issue.State != domain.StateOpen {
			continue
		}
		ages = append(ages, now.Sub(issue.CreatedAt).Hours()/24)
	}

	result := &domain.AgeStats{OpenCount: len(ages)}
	if len(ages) == 0 {
		return result
	}

	mean, _ := ages.Mean()
	median, _ := ages.Median()
	maxAge, _ := ages.Max()
	// Percentile rejects inputs too small to interpolate; fall back to the max.
	p90, err := ages.Percentile(90)
	if err != nil {
		p90 = maxAge
	}

	result.MeanDays = round2(mean)
	result.MedianDays = round2(median)
	result.P90Days = round2(p90)
	result.MaxDays = round2(maxAge)
	return result
}

func round2(v float64) float64 {
	r, err := stats.Round(v, 2)
	if err != nil {
		return v
	}
	return r
}
