package attack

import (
	"slices"

	"coc_war_stats/internal/app"
)

// SortRecordsChronologically returns a new slice with records sorted by attack order (oldest first)
// Pure function: Does not modify input slice, returns new sorted slice
func SortRecordsChronologically(records []app.AttackRecord) []app.AttackRecord {
	sorted := slices.Clone(records)
	if sorted == nil {
		sorted = []app.AttackRecord{}
	}

	slices.SortStableFunc(sorted, func(a, b app.AttackRecord) int {
		return a.Order - b.Order
	})

	return sorted
}
