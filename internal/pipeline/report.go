package pipeline

import (
	"sort"

	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/match"
)

// Issue is a contained failure of one page.
type Issue struct {
	Kind match.Kind
	URL  string
	Err  error
}

func newIssue(url string, err error) Issue {
	kind := match.KindOf(err)
	if kind == "" {
		kind = match.KindFetchFailed
	}
	return Issue{Kind: kind, URL: url, Err: err}
}

// Report is the outcome of one tournament run.
type Report struct {
	Tournament string
	Series     int
	Games      int
	Rows       []match.Row
	Issues     []Issue
}

// IssuesByKind counts issues per kind.
func (r *Report) IssuesByKind() map[match.Kind]int {
	counts := make(map[match.Kind]int)
	for _, issue := range r.Issues {
		counts[issue.Kind]++
	}
	return counts
}

// Kinds returns the issue kinds present, sorted.
func (r *Report) Kinds() []match.Kind {
	counts := r.IssuesByKind()
	kinds := make([]match.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
