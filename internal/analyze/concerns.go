package analyze

import (
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"ado-policy-report/internal/model"
)

// Concern levels written to the MigrationConcern CSV column.
const (
	ConcernHigh   = "HIGH"
	ConcernMedium = "MEDIUM"
	ConcernLow    = "LOW"
)

// concerningPolicies are branch policy names with no direct GitHub
// branch-protection equivalent. Matching is case-sensitive.
var concerningPolicies = sets.New[string](
	"Path-based branch protection",
	"Work item linking",
	"Build validation",
	"Status check",
)

// IsConcerning reports whether a branch policy name needs migration attention.
func IsConcerning(policyName string) bool {
	return concerningPolicies.Has(policyName)
}

// BranchConcernLevel maps a branch policy name to HIGH or LOW.
func BranchConcernLevel(policyName string) string {
	if IsConcerning(policyName) {
		return ConcernHigh
	}
	return ConcernLow
}

// StatusConcernLevel maps a status genre to a concern level.
func StatusConcernLevel(statusGenre string) string {
	switch strings.ToUpper(statusGenre) {
	case "EXTERNAL":
		return ConcernMedium
	case "SECURITY":
		return ConcernHigh
	default:
		return ConcernLow
	}
}

// DetectConcerns lists, in report order, every repository with at least one
// concerning branch policy together with the matching policy names.
func DetectConcerns(reports []model.RepositoryPolicyReport) []model.Concern {
	var out []model.Concern
	for _, r := range reports {
		var names []string
		for _, p := range r.Policies {
			if IsConcerning(p.Name) {
				names = append(names, p.Name)
			}
		}
		if len(names) == 0 {
			continue
		}
		out = append(out, model.Concern{
			TeamProject: r.TeamProject,
			Repository:  r.Repository,
			Policies:    names,
		})
	}
	return out
}
