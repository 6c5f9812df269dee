// Package namematch finds close fuzzy matches for a name among candidates.
package namematch

import (
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	// DefaultLimit is the maximum number of matches returned.
	DefaultLimit = 4

	// DefaultCutoff is the minimum similarity ratio for a match.
	DefaultCutoff = 0.7

	// NoMatches is printed when no candidate qualifies.
	NoMatches = "NO_MATCHES"
)

// Options configures matching.
type Options struct {
	Limit  int
	Cutoff float64
}

// DefaultOptions returns the default matching options.
func DefaultOptions() Options {
	return Options{Limit: DefaultLimit, Cutoff: DefaultCutoff}
}

// Match is one scored candidate.
type Match struct {
	Name  string
	Score float64
}

// Ratio returns the similarity of a and b in [0, 1], computed over runes as
// 2*M/T where M is the number of matched runes and T the total length.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

// Find returns up to opts.Limit candidates whose similarity to name is at
// least opts.Cutoff, best first. Equal scores order by candidate descending.
func Find(name string, candidates []string, opts Options) []Match {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Cutoff < 0 || opts.Cutoff > 1 {
		opts.Cutoff = DefaultCutoff
	}

	// The target is fixed as the second sequence so its index is built once.
	matcher := difflib.NewMatcher(nil, runes(name))
	var matches []Match
	for _, candidate := range candidates {
		matcher.SetSeq1(runes(candidate))
		if matcher.RealQuickRatio() < opts.Cutoff || matcher.QuickRatio() < opts.Cutoff {
			continue
		}
		if score := matcher.Ratio(); score >= opts.Cutoff {
			matches = append(matches, Match{Name: candidate, Score: score})
		}
	}

	slices.SortFunc(matches, func(a, b Match) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return strings.Compare(b.Name, a.Name)
	})

	if len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}
	return matches
}

// ParseCandidates splits a comma-separated candidate list, trimming space and
// dropping empty entries.
func ParseCandidates(blob string) []string {
	var out []string
	for _, part := range strings.Split(blob, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Line renders matches joined by ", ", or NoMatches when there are none.
func Line(matches []Match) string {
	if len(matches) == 0 {
		return NoMatches
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Name
	}
	return strings.Join(names, ", ")
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
