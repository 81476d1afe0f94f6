// Package render prints a human-readable summary of a dashboard report.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/naka-gawa/issue-dashboard/internal/domain"
)

// Colors defines the palette used by the summary.
var Colors = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Open    lipgloss.Color
	Closed  lipgloss.Color
}{
	Primary: lipgloss.Color("#6C5CE7"), // Purple
	Muted:   lipgloss.Color("#636E72"), // Gray
	Open:    lipgloss.Color("#00B894"), // Green
	Closed:  lipgloss.Color("#A29BFE"), // Lavender
}

type styles struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	open    lipgloss.Style
	closed  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, keyWidth int) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(Colors.Primary),
		muted:   r.NewStyle().Foreground(Colors.Muted),
		section: r.NewStyle().Bold(true).MarginTop(1),
		key:     r.NewStyle().Width(keyWidth).PaddingLeft(2),
		open:    r.NewStyle().Foreground(Colors.Open),
		closed:  r.NewStyle().Foreground(Colors.Closed),
	}
}

// Render writes the summary of report to w. Colors are used only when w is
// a terminal.
func Render(w io.Writer, report *domain.Report) error {
	breakdown := sortedBreakdown(report.Summary.StateBreakdown)
	keyWidth := len("Closed") + 4
	for _, entry := range breakdown {
		keyWidth = max(keyWidth, len(entry.label)+4)
	}
	s := newStyles(lipgloss.NewRenderer(w), keyWidth)

	lines := []string{
		s.title.Render(report.Repository),
		s.muted.Render("Generated " + report.GeneratedAt),
		s.section.Render("Issues"),
		s.key.Render("Total") + fmt.Sprint(report.Summary.TotalIssues),
		s.key.Render("Open") + s.open.Render(fmt.Sprint(report.Summary.OpenIssues)),
		s.key.Render("Closed") + s.closed.Render(fmt.Sprint(report.Summary.ClosedIssues)),
		s.section.Render("State breakdown"),
	}
	if len(breakdown) == 0 {
		lines = append(lines, s.key.Render(s.muted.Render("(none)")))
	}
	for _, entry := range breakdown {
		lines = append(lines, s.key.Render(entry.label)+fmt.Sprint(entry.count))
	}

	if age := report.Summary.AgeStats; age != nil {
		lines = append(lines,
			s.section.Render("Open issue age (days)"),
			s.key.Render("Mean")+fmt.Sprintf("%.2f", age.MeanDays),
			s.key.Render("Median")+fmt.Sprintf("%.2f", age.MedianDays),
			s.key.Render("P90")+fmt.Sprintf("%.2f", age.P90Days),
			s.key.Render("Max")+fmt.Sprintf("%.2f", age.MaxDays),
		)
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

type breakdownEntry struct {
	label string
	count int
}

// sortedBreakdown orders by count descending, then label.
func sortedBreakdown(m map[string]int) []breakdownEntry {
	entries := make([]breakdownEntry, 0, len(m))
	for label, count := range m {
		entries = append(entries, breakdownEntry{label: label, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].label < entries[j].label
	})
	return entries
}
