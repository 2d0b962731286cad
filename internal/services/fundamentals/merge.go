package fundamentals

import (
	"cmp"
	"slices"

	"github.com/ternarybob/valuelens/internal/models"
)

type reportKey struct {
	date   string
	annual bool
}

// MergeReports combines cached and freshly fetched reports of one kind.
// Reports are unique on (fiscal date, frequency); an incoming report replaces a
// cached one with the same key. The result is ordered newest-first.
func MergeReports[T models.FinancialReport](existing, incoming []T) []T {
	merged := make([]T, 0, len(existing)+len(incoming))
	position := make(map[reportKey]int, len(existing)+len(incoming))

	add := func(r T) {
		key := reportKey{date: r.FiscalDate(), annual: r.IsAnnual()}
		if i, ok := position[key]; ok {
			merged[i] = r
			return
		}
		position[key] = len(merged)
		merged = append(merged, r)
	}

	for _, r := range existing {
		add(r)
	}
	for _, r := range incoming {
		add(r)
	}

	// ISO dates order lexically
	slices.SortStableFunc(merged, func(a, b T) int {
		return cmp.Compare(b.FiscalDate(), a.FiscalDate())
	})

	return merged
}
