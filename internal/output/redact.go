package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"ado-policy-report/internal/model"
)

const redacted = "[redacted]"

// Redact returns a deep copy of the bundle with the organization, team
// project and repository names replaced by opaque tokens. Tokens are stable
// within one bundle so rows of the same repository still line up. Policy
// names and counts are preserved.
func Redact(b *model.Bundle) (*model.Bundle, error) {
	// Deep copy via JSON round-trip
	data, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	var r model.Bundle
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}

	m := newMasker()
	r.Scope.Organization = redacted
	if r.Scope.Repository != "" {
		r.Scope.Repository = m.scopeRepo(r.Scope, r.Repositories)
	}
	if r.Scope.TeamProject != "" {
		r.Scope.TeamProject = m.project(r.Scope.TeamProject)
	}

	for i := range r.Repositories {
		rep := &r.Repositories[i]
		rep.Organization = redacted
		rep.Repository = m.repo(rep.TeamProject, rep.Repository)
		rep.TeamProject = m.project(rep.TeamProject)
	}
	for i := range r.StatusChecks {
		c := &r.StatusChecks[i]
		c.Organization = redacted
		c.Repository = m.repo(c.TeamProject, c.Repository)
		c.TeamProject = m.project(c.TeamProject)
	}
	for i := range r.Concerns {
		c := &r.Concerns[i]
		c.Repository = m.repo(c.TeamProject, c.Repository)
		c.TeamProject = m.project(c.TeamProject)
	}
	// Skip reasons carry request URLs
	for i := range r.Skips {
		r.Skips[i].Unit = m.location(r.Skips[i].Unit)
		r.Skips[i].Reason = redacted
	}

	if c := r.Comparison; c != nil {
		for _, list := range []*[]string{
			&c.RepositoriesAdded, &c.RepositoriesRemoved,
			&c.PoliciesAdded, &c.PoliciesRemoved,
			&c.StatusChecksAdded, &c.StatusChecksRemoved,
			&c.ConcernsNew, &c.ConcernsResolved,
		} {
			for i, entry := range *list {
				loc, rest, found := strings.Cut(entry, ": ")
				if found {
					(*list)[i] = m.location(loc) + ": " + rest
				} else {
					(*list)[i] = m.location(entry)
				}
			}
		}
	}
	return &r, nil
}

type masker struct {
	projects map[string]string
	repos    map[string]string
}

func newMasker() *masker {
	return &masker{projects: map[string]string{}, repos: map[string]string{}}
}

func (m *masker) project(name string) string {
	if t, ok := m.projects[name]; ok {
		return t
	}
	t := fmt.Sprintf("project-%d", len(m.projects)+1)
	m.projects[name] = t
	return t
}

// repo must be called before the project name is replaced.
func (m *masker) repo(project, name string) string {
	key := project + "/" + name
	if t, ok := m.repos[key]; ok {
		return t
	}
	t := fmt.Sprintf("repository-%d", len(m.repos)+1)
	m.repos[key] = t
	return t
}

// scopeRepo masks the requested repository with the token of the report
// entry it selected, so the scope still points at that entry. The name is
// matched case-insensitively; without a single match the scope keeps the
// requested team project, or is fully redacted when none was given.
func (m *masker) scopeRepo(scope model.Scope, reports []model.RepositoryPolicyReport) string {
	var hit *model.RepositoryPolicyReport
	for i := range reports {
		rep := &reports[i]
		if !strings.EqualFold(rep.Repository, scope.Repository) {
			continue
		}
		if hit != nil && (hit.TeamProject != rep.TeamProject || hit.Repository != rep.Repository) {
			hit = nil
			break
		}
		hit = rep
	}
	switch {
	case hit != nil:
		return m.repo(hit.TeamProject, hit.Repository)
	case scope.TeamProject != "":
		return m.repo(scope.TeamProject, scope.Repository)
	default:
		return redacted
	}
}

// location masks "project/repository" or a bare project name.
func (m *masker) location(unit string) string {
	project, repo, found := strings.Cut(unit, "/")
	if !found {
		return m.project(unit)
	}
	r := m.repo(project, repo)
	return m.project(project) + "/" + r
}
