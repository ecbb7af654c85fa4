package analyze

import (
	"math"
	"sort"
	"strconv"

	"ado-policy-report/internal/model"
)

// TopN is the length of every "top" listing.
const TopN = 10

// Rank returns the table's entries sorted by descending count. Ties keep
// first-insertion order.
func Rank(t *FrequencyTable) []Entry {
	out := t.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Top returns at most n ranked entries annotated with their coverage of denominator.
func Top(t *FrequencyTable, n, denominator int) []model.RankedEntry {
	ranked := Rank(t)
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]model.RankedEntry, 0, len(ranked))
	for _, e := range ranked {
		out = append(out, model.RankedEntry{
			Label:    e.Label,
			Count:    e.Count,
			Coverage: Percent(e.Count, denominator),
		})
	}
	return out
}

// Percent returns 100*count/denominator rounded half away from zero to one
// decimal place. A zero denominator yields 0.
func Percent(count, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	v := float64(count) * 100.0 / float64(denominator)
	return math.Round(v*10) / 10
}

// FormatPercent renders a coverage value with exactly one decimal digit.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
