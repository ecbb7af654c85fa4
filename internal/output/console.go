package output

import (
	"fmt"

	"go.uber.org/zap"

	"ado-policy-report/internal/analyze"
	"ado-policy-report/internal/model"
)

// PrintReport logs the per-repository listing, the policy summary, the top
// branch policies and any migration concerns.
func PrintReport(log *zap.Logger, agg *analyze.Aggregation) {
	info := func(s string) { log.Info(s) }
	infof := func(f string, a ...any) { log.Info(fmt.Sprintf(f, a...)) }

	info("")
	info("==== BRANCH POLICIES REPORT ====")
	info("")

	for _, r := range agg.SortedReports() {
		infof("Organization: %s", r.Organization)
		infof("Team Project: %s", r.TeamProject)
		infof("Repository: %s", r.Repository)
		infof("Branch Policies Count: %d", len(r.Policies))

		if len(r.Policies) > 0 {
			info("Policies:")
			for _, p := range r.Policies {
				status := "DISABLED"
				if p.IsEnabled {
					status = "ENABLED"
				}
				blocking := "NON-BLOCKING"
				if p.IsBlocking {
					blocking = "BLOCKING"
				}
				infof("  - %s (%s, %s)", p.Name, status, blocking)
				if p.Description != "" {
					infof("    %s", p.Description)
				}
			}
		} else {
			info("  No branch policies configured")
		}
		info("")
	}

	info("==== POLICY SUMMARY ====")
	info("")
	info("Branch policies grouped by type and count:")
	for _, e := range analyze.Rank(agg.PolicySummary) {
		infof("  %s: %d repositories", e.Label, e.Count)
	}

	stats := agg.Statistics()
	info("")
	infof("Total repositories analyzed: %d", stats.TotalRepositories)
	infof("Repositories with branch policies: %d", stats.RepositoriesWithBranchPolicies)
	infof("Repositories without branch policies: %d", stats.RepositoriesWithoutBranchPolicies)

	info("")
	info("==== TOP BRANCH POLICIES ====")
	info("")
	if top := agg.TopPolicies(); len(top) > 0 {
		info("Most frequently used branch policies across all repositories:")
		for _, e := range top {
			infof("  %s: %d repositories (%s%% coverage)", e.Label, e.Count, analyze.FormatPercent(e.Coverage))
		}
	} else {
		info("No branch policies found across all repositories.")
	}

	if concerns := agg.Concerns(); len(concerns) > 0 {
		info("")
		info("==== MIGRATION CONCERNS ====")
		info("")
		info("Repositories with policies that may require special attention during GitHub migration:")
		for _, c := range concerns {
			infof("  %s/%s: %s", c.TeamProject, c.Repository, c.Joined())
		}
	}
}

// PrintComparison logs what changed since the previous report.
func PrintComparison(log *zap.Logger, c *model.Comparison) {
	log.Info("")
	log.Info("==== CHANGES SINCE PREVIOUS RUN ====")
	log.Info("")
	log.Info(fmt.Sprintf("Compared with run %s", c.PreviousRunID))
	log.Info(fmt.Sprintf("Repositories with branch policies: %+d", c.RepositoriesWithBranchPoliciesDelta))
	if !c.HasChanges() {
		log.Info("No policy changes.")
		return
	}
	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		log.Info(title + ":")
		for _, it := range items {
			log.Info("  " + it)
		}
	}
	section("Repositories added", c.RepositoriesAdded)
	section("Repositories removed", c.RepositoriesRemoved)
	section("Policies added", c.PoliciesAdded)
	section("Policies removed", c.PoliciesRemoved)
	section("Status checks added", c.StatusChecksAdded)
	section("Status checks removed", c.StatusChecksRemoved)
	section("New migration concerns", c.ConcernsNew)
	section("Resolved migration concerns", c.ConcernsResolved)
}
