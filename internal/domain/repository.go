package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// Repository identifies a GitHub repository.
type Repository struct {
	Owner string
	Name  string
}

// ParseRepository parses an "owner/name" identifier. Surrounding whitespace
// is ignored; each segment must be non-empty and free of whitespace.
func ParseRepository(s string) (Repository, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 || !validSegment(parts[0]) || !validSegment(parts[1]) {
		return Repository{}, fmt.Errorf("%w: invalid repository format. Expected: <owner>/<name>, got: %q", ErrMissingConfiguration, s)
	}
	return Repository{Owner: parts[0], Name: parts[1]}, nil
}

func validSegment(segment string) bool {
	return segment != "" && !strings.ContainsFunc(segment, unicode.IsSpace)
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// IssueCounts holds issue totals as reported by the GraphQL API.
type IssueCounts struct {
	Open   int
	Closed int
}
