package analyze

import (
	"strings"

	"ado-policy-report/internal/model"
)

const (
	statusCheckName     = "Status check"
	fallbackStatusName  = "Status Check"
	fallbackStatusGenre = "Unknown"
	statusPrefix        = "Status:"
)

// IsStatusCheck reports whether p is a status check rather than a plain
// branch policy: its type mentions STATUS or its name is "Status check".
func IsStatusCheck(p model.RawPolicy) bool {
	return strings.Contains(strings.ToUpper(p.Type), "STATUS") ||
		strings.EqualFold(p.Name, statusCheckName)
}

// Classify turns a raw policy into either a branch policy or a status check.
// Missing or malformed settings never fail; they fall through to the next source.
func Classify(p model.RawPolicy) model.Classified {
	if !IsStatusCheck(p) {
		return model.Classified{Branch: &model.BranchPolicy{
			ID:          p.ID,
			Type:        p.Type,
			Name:        p.Name,
			Description: p.Description,
			IsEnabled:   p.IsEnabled,
			IsBlocking:  p.IsBlocking,
		}}
	}
	return model.Classified{Status: &model.StatusCheck{
		ID:          p.ID,
		Type:        p.Type,
		StatusName:  StatusName(p.Description, p.Settings),
		StatusGenre: StatusGenre(p.Description, p.Settings),
		Description: p.Description,
		IsEnabled:   p.IsEnabled,
		IsBlocking:  p.IsBlocking,
	}}
}

// StatusName resolves the status name from settings, then from a
// "Status: <name> (<genre>)" description.
func StatusName(description string, settings model.Settings) string {
	return firstResolved(fallbackStatusName,
		func() string { return settings.Lookup("statusName") },
		func() string { return nameFromDescription(description) },
	)
}

// StatusGenre resolves the status genre from settings, then from the
// parenthesized part of the description.
func StatusGenre(description string, settings model.Settings) string {
	return firstResolved(fallbackStatusGenre,
		func() string { return settings.Lookup("statusGenre") },
		func() string { return genreFromDescription(description) },
	)
}

// firstResolved returns the first non-empty candidate, or fallback.
func firstResolved(fallback string, candidates ...func() string) string {
	for _, c := range candidates {
		if v := c(); v != "" {
			return v
		}
	}
	return fallback
}

func nameFromDescription(description string) string {
	if len(description) < len(statusPrefix) || !strings.EqualFold(description[:len(statusPrefix)], statusPrefix) {
		return ""
	}
	rest := description[len(statusPrefix):]
	// "(" is searched in the whole description; it can only sit after the prefix.
	if i := strings.Index(rest, "("); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSpace(rest)
}

func genreFromDescription(description string) string {
	start := strings.Index(description, "(")
	end := strings.Index(description, ")")
	if start < 0 || end < 0 || end < start {
		return ""
	}
	return strings.TrimSpace(description[start+1 : end])
}
