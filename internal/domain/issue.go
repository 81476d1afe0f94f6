// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// StateLabelPrefix marks labels used as informal workflow-stage tags.
const StateLabelPrefix = "state:"

// Issue states as reported by the GitHub API.
const (
	StateOpen   = "open"
	StateClosed = "closed"
)

// RawLabel is a label object attached to a RawItem.
type RawLabel struct {
	Name string
}

// RawItem is a single entry returned by the issues listing endpoint.
// The endpoint conflates issues and pull requests; PullRequestURL is only
// set for the latter.
type RawItem struct {
	Number         int
	Title          string
	State          string
	Labels         []RawLabel
	CreatedAt      time.Time
	UpdatedAt      time.Time
	PullRequestURL *string
}

// IsPullRequest reports whether the item carries the pull request marker.
func (r *RawItem) IsPullRequest() bool {
	return r.PullRequestURL != nil
}

// Issue is the projected, stable-shaped record persisted in a Report.
type Issue struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	State     string    `json:"state"`
	Labels    []string  `json:"labels"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
