package domain

// Report is the document consumed by the dashboard renderer.
// It is the core domain entity of this application.
type Report struct {
	GeneratedAt string  `json:"generatedAt"`
	Repository  string  `json:"repository"`
	Summary     Summary `json:"summary"`
	Issues      []Issue `json:"issues"`
}

// Summary holds the counts derived from the issues of a Report.
type Summary struct {
	TotalIssues    int            `json:"totalIssues"`
	OpenIssues     int            `json:"openIssues"`
	ClosedIssues   int            `json:"closedIssues"`
	StateBreakdown map[string]int `json:"stateBreakdown"`
	AgeStats       *AgeStats      `json:"ageStats,omitempty"`
}

// AgeStats describes how long currently open issues have been open, in days.
type AgeStats struct {
	OpenCount  int     `json:"openCount"`
	MeanDays   float64 `json:"meanDays"`
	MedianDays float64 `json:"medianDays"`
	P90Days    float64 `json:"p90Days"`
	MaxDays    float64 `json:"maxDays"`
}
