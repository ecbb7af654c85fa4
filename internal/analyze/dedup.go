package analyze

import "ado-policy-report/internal/model"

// Dedup keeps the first policy seen for each ID, preserving input order.
func Dedup(policies []model.RawPolicy) []model.RawPolicy {
	seen := make(map[string]struct{}, len(policies))
	out := make([]model.RawPolicy, 0, len(policies))
	for _, p := range policies {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
