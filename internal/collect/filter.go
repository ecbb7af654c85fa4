package collect

import (
	"strings"

	"ado-policy-report/internal/model"
)

// Selection is the outcome of applying the repository filter to one team
// project's listing.
type Selection struct {
	// Analyze holds the enabled repositories to analyze, in listing order.
	Analyze []model.Repository
	// Disabled holds every disabled repository of the project.
	Disabled []model.Repository
	// NotFound is set when a repository was requested and the project has none by that name.
	NotFound bool
	// RequestedDisabled is set when the requested repository exists but is disabled.
	RequestedDisabled bool
}

// InScope reports whether repo matches the requested name. An empty request
// matches every repository. Names compare case-insensitively.
func InScope(repo model.Repository, requested string) bool {
	return requested == "" || strings.EqualFold(repo.Name, requested)
}

// Select filters a team project's repositories. Disabled repositories are
// never analyzed.
func Select(repos []model.Repository, requested string) Selection {
	var sel Selection
	found := false
	for _, r := range repos {
		if r.IsDisabled {
			sel.Disabled = append(sel.Disabled, r)
		}
		if !InScope(r, requested) {
			continue
		}
		if requested != "" && !found {
			found = true
			sel.RequestedDisabled = r.IsDisabled
		}
		if !r.IsDisabled {
			sel.Analyze = append(sel.Analyze, r)
		}
	}
	if requested != "" {
		sel.NotFound = !found
		if sel.NotFound || sel.RequestedDisabled {
			sel.Analyze = nil
		}
	}
	return sel
}

func names(repos []model.Repository) string {
	out := make([]string, 0, len(repos))
	for _, r := range repos {
		out = append(out, r.Name)
	}
	return strings.Join(out, ", ")
}
