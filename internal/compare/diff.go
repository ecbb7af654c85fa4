// Package compare diffs a report run against a previous JSON report.
package compare

import (
	"encoding/json"
	"fmt"
	"os"

	"k8s.io/apimachinery/pkg/util/sets"

	"ado-policy-report/internal/model"
)

// Diff compares prev against curr.
func Diff(prev, curr *model.Bundle) model.Comparison {
	r := model.Comparison{
		PreviousRunID:     prev.Run.RunID,
		PreviousStartedAt: prev.Run.StartedAt,
	}
	r.RepositoriesWithBranchPoliciesDelta = curr.Statistics.RepositoriesWithBranchPolicies -
		prev.Statistics.RepositoriesWithBranchPolicies

	r.RepositoriesAdded, r.RepositoriesRemoved = delta(repositoryKeys(prev), repositoryKeys(curr))
	r.PoliciesAdded, r.PoliciesRemoved = delta(policyKeys(prev), policyKeys(curr))
	r.StatusChecksAdded, r.StatusChecksRemoved = delta(statusKeys(prev), statusKeys(curr))
	r.ConcernsNew, r.ConcernsResolved = delta(concernKeys(prev), concernKeys(curr))
	return r
}

// Load reads a JSON report written by a previous run.
func Load(path string) (*model.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b model.Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &b, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func delta(prev, curr sets.Set[string]) (added, removed []string) {
	return sets.List(curr.Difference(prev)), sets.List(prev.Difference(curr))
}

func location(project, repo string) string {
	return project + "/" + repo
}

func repositoryKeys(b *model.Bundle) sets.Set[string] {
	s := sets.New[string]()
	for _, r := range b.Repositories {
		s.Insert(location(r.TeamProject, r.Repository))
	}
	return s
}

func policyKeys(b *model.Bundle) sets.Set[string] {
	s := sets.New[string]()
	for _, r := range b.Repositories {
		for _, p := range r.Policies {
			s.Insert(location(r.TeamProject, r.Repository) + ": " + p.Name)
		}
	}
	return s
}

func statusKeys(b *model.Bundle) sets.Set[string] {
	s := sets.New[string]()
	for _, c := range b.StatusChecks {
		s.Insert(location(c.TeamProject, c.Repository) + ": " + c.StatusName)
	}
	return s
}

func concernKeys(b *model.Bundle) sets.Set[string] {
	s := sets.New[string]()
	for _, c := range b.Concerns {
		for _, name := range c.Policies {
			s.Insert(location(c.TeamProject, c.Repository) + ": " + name)
		}
	}
	return s
}
