package output

import (
	"bytes"
	"fmt"
	"strings"

	"ado-policy-report/internal/analyze"
	"ado-policy-report/internal/model"
)

// Markdown renders a migration readiness report for reviewers.
func Markdown(b *model.Bundle) string {
	var buf bytes.Buffer
	w := func(s string) { buf.WriteString(s) }
	wf := func(f string, a ...any) { buf.WriteString(fmt.Sprintf(f, a...)) }
	cell := func(s string) string { return strings.ReplaceAll(s, "|", `\|`) }

	w("# Branch Policy Migration Readiness\n\n")
	wf("- Organization: %s\n", b.Scope.Organization)
	if b.Scope.TeamProject != "" {
		wf("- Team project: %s\n", b.Scope.TeamProject)
	}
	if b.Scope.Repository != "" {
		wf("- Repository: %s\n", b.Scope.Repository)
	}
	wf("- Run: %s\n\n", b.Run.RunID)

	s := b.Statistics
	w("## Summary\n\n")
	w("| Metric | Count |\n|---|---|\n")
	wf("| Total repositories analyzed | %d |\n", s.TotalRepositories)
	wf("| Repositories with branch policies | %d |\n", s.RepositoriesWithBranchPolicies)
	wf("| Repositories without branch policies | %d |\n", s.RepositoriesWithoutBranchPolicies)
	wf("| Repositories with status checks | %d |\n", s.RepositoriesWithStatusChecks)
	wf("| Repositories without status checks | %d |\n\n", s.RepositoriesWithoutStatusChecks)

	writeTop := func(title string, entries []model.RankedEntry) {
		wf("## %s\n\n", title)
		if len(entries) == 0 {
			w("None found.\n\n")
			return
		}
		w("| Name | Repositories | Coverage |\n|---|---|---|\n")
		for _, e := range entries {
			wf("| %s | %d | %s%% |\n", cell(e.Label), e.Count, analyze.FormatPercent(e.Coverage))
		}
		w("\n")
	}
	writeTop("Top Branch Policies", b.TopPolicies)
	writeTop("Top Status Checks", b.TopStatusChecks)

	w("## Migration Concerns\n\n")
	if len(b.Concerns) == 0 {
		w("No repositories use policies that need special attention.\n\n")
	} else {
		for _, c := range b.Concerns {
			wf("- **%s/%s**: %s\n", c.TeamProject, c.Repository, c.Joined())
		}
		w("\n")
	}

	if c := b.Comparison; c != nil {
		wf("## Changes Since Run %s\n\n", c.PreviousRunID)
		wf("Repositories with branch policies: %+d\n\n", c.RepositoriesWithBranchPoliciesDelta)
		list := func(title string, items []string) {
			if len(items) == 0 {
				return
			}
			wf("### %s\n\n", title)
			for _, it := range items {
				wf("- %s\n", it)
			}
			w("\n")
		}
		list("Repositories added", c.RepositoriesAdded)
		list("Repositories removed", c.RepositoriesRemoved)
		list("Policies added", c.PoliciesAdded)
		list("Policies removed", c.PoliciesRemoved)
		list("Status checks added", c.StatusChecksAdded)
		list("Status checks removed", c.StatusChecksRemoved)
		list("New concerns", c.ConcernsNew)
		list("Resolved concerns", c.ConcernsResolved)
	}

	if len(b.Skips) > 0 {
		w("## Skipped\n\n")
		for _, sk := range b.Skips {
			wf("- %s: %s\n", sk.Unit, sk.Reason)
		}
		w("\n")
	}
	return buf.String()
}
