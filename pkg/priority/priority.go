// Package priority provides pure, stateless views over analyzed feedback.
// Every call recomputes from the collection it is given; nothing is retained.
package priority

import (
	"sort"

	"github.com/valentinpelus/feedbacklens/pkg/types"
)

// DefaultTopN is the ranking size when the caller does not specify one
const DefaultTopN = 10

// CategoryAll is the sentinel filter value meaning "no filter"
const CategoryAll = "all"

// Score returns the priority score for an item: urgency + impact, range
// [2,20]. Derived on demand so it can never drift from the source fields.
func Score(item types.AnalyzedFeedback) int {
	return item.Urgency + item.Impact
}

// FilterByCategory returns the items whose category equals the given value,
// preserving order. The sentinel "all" returns the input unchanged; an
// unrecognized category simply matches nothing. The result is never nil so
// an all-filtered batch still serializes as an empty JSON array.
func FilterByCategory(items []types.AnalyzedFeedback, category string) []types.AnalyzedFeedback {
	if category == CategoryAll {
		return items
	}

	filtered := []types.AnalyzedFeedback{}
	for _, item := range items {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Rank returns the top n items by descending priority score. Equal scores
// keep their original relative order. The input slice is not mutated;
// n <= 0 selects the default of 10.
func Rank(items []types.AnalyzedFeedback, n int) []types.AnalyzedFeedback {
	if n <= 0 {
		n = DefaultTopN
	}

	ranked := make([]types.AnalyzedFeedback, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(ranked[i]) > Score(ranked[j])
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// CountByCategory tallies items per category, for batch summaries
func CountByCategory(items []types.AnalyzedFeedback) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		counts[item.Category]++
	}
	return counts
}
