package output

import (
	"sort"
	"strconv"
	"strings"

	"ado-policy-report/internal/analyze"
	"ado-policy-report/internal/model"
)

const (
	branchPoliciesHeader = "Organization,TeamProject,Repository,PolicyId,PolicyType,PolicyName,Description,IsEnabled,IsBlocking,MigrationConcern"
	statusChecksHeader   = "Organization,TeamProject,Repository,PolicyId,PolicyType,StatusName,StatusGenre,Description,IsEnabled,IsBlocking,MigrationConcern"
)

// csvDoc builds a newline-terminated CSV document. Text cells are always
// quoted with embedded quotes doubled; bools and numbers are written bare.
type csvDoc struct {
	sb strings.Builder
}

func (d *csvDoc) line(s string) {
	d.sb.WriteString(s)
	d.sb.WriteByte('\n')
}

func (d *csvDoc) blank() {
	d.sb.WriteByte('\n')
}

// row writes cells that were already rendered with text, boolean or number.
func (d *csvDoc) row(cells ...string) {
	d.line(strings.Join(cells, ","))
}

func (d *csvDoc) String() string {
	return d.sb.String()
}

// EscapeCSV doubles every double quote in s.
func EscapeCSV(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

func text(s string) string {
	return `"` + EscapeCSV(s) + `"`
}

// boolean matches the True/False tokens of earlier exports.
func boolean(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

func number(n int) string {
	return strconv.Itoa(n)
}

// ── Branch policies ──────────────────────────────────────────────────────────

// BranchPoliciesCSV renders one row per branch policy, ordered by
// organization, team project and repository.
func BranchPoliciesCSV(records []model.BranchPolicyRecord) string {
	sorted := append([]model.BranchPolicyRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessLocation(sorted[i].Organization, sorted[i].TeamProject, sorted[i].Repository,
			sorted[j].Organization, sorted[j].TeamProject, sorted[j].Repository)
	})

	var d csvDoc
	d.line(branchPoliciesHeader)
	for _, r := range sorted {
		d.row(
			text(r.Organization),
			text(r.TeamProject),
			text(r.Repository),
			text(r.PolicyID),
			text(r.PolicyType),
			text(r.PolicyName),
			text(r.Description),
			boolean(r.IsEnabled),
			boolean(r.IsBlocking),
			text(analyze.BranchConcernLevel(r.PolicyName)),
		)
	}
	return d.String()
}

// BranchPoliciesSummaryCSV renders the per-policy counts, the repository
// statistics and, when top is non-empty, the ten most used policies with
// coverage against repositories that have branch policies.
func BranchPoliciesSummaryCSV(summary *analyze.FrequencyTable, stats model.Statistics, top *analyze.FrequencyTable) string {
	var d csvDoc
	d.line("PolicyType,RepositoryCount")
	for _, e := range analyze.Rank(summary) {
		d.row(text(e.Label), number(e.Count))
	}

	d.blank()
	d.line("Summary Statistics")
	d.line("Metric,Count")
	d.row(text("Total repositories analyzed"), number(stats.TotalRepositories))
	d.row(text("Repositories with branch policies"), number(stats.RepositoriesWithBranchPolicies))
	d.row(text("Repositories without branch policies"), number(stats.RepositoriesWithoutBranchPolicies))

	if top.Len() > 0 {
		d.blank()
		d.line("Top Branch Policies")
		d.line("PolicyType,RepositoryCount,CoveragePercentage")
		for _, e := range analyze.Top(top, analyze.TopN, stats.RepositoriesWithBranchPolicies) {
			d.row(text(e.Label), number(e.Count), analyze.FormatPercent(e.Coverage))
		}
	}
	return d.String()
}

// ── Status checks ────────────────────────────────────────────────────────────

// StatusChecksCSV renders one row per status check, ordered like BranchPoliciesCSV.
func StatusChecksCSV(records []model.StatusCheckRecord) string {
	sorted := append([]model.StatusCheckRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessLocation(sorted[i].Organization, sorted[i].TeamProject, sorted[i].Repository,
			sorted[j].Organization, sorted[j].TeamProject, sorted[j].Repository)
	})

	var d csvDoc
	d.line(statusChecksHeader)
	for _, r := range sorted {
		d.row(
			text(r.Organization),
			text(r.TeamProject),
			text(r.Repository),
			text(r.PolicyID),
			text(r.PolicyType),
			text(r.StatusName),
			text(r.StatusGenre),
			text(r.Description),
			boolean(r.IsEnabled),
			boolean(r.IsBlocking),
			text(analyze.StatusConcernLevel(r.StatusGenre)),
		)
	}
	return d.String()
}

// StatusChecksSummaryCSV renders the status-check counterpart of
// BranchPoliciesSummaryCSV. Top coverage is computed against all analyzed
// repositories, not only those with status checks.
func StatusChecksSummaryCSV(summary *analyze.FrequencyTable, stats model.Statistics, top *analyze.FrequencyTable) string {
	var d csvDoc
	d.line("## Status Checks Summary")
	d.blank()
	d.line("StatusName,RepositoryCount")
	for _, e := range analyze.Rank(summary) {
		d.row(text(e.Label), number(e.Count))
	}

	d.blank()
	d.line("## Summary Statistics")
	d.blank()
	d.line("Metric,Value")
	d.row(text("Total repositories analyzed"), number(stats.TotalRepositories))
	d.row(text("Repositories with status checks"), number(stats.RepositoriesWithStatusChecks))
	d.row(text("Repositories without status checks"), number(stats.RepositoriesWithoutStatusChecks))

	if top.Len() > 0 {
		d.blank()
		d.line("## Top Status Checks")
		d.blank()
		d.line("StatusName,RepositoryCount,CoveragePercentage")
		for _, e := range analyze.Top(top, analyze.TopN, stats.TotalRepositories) {
			d.row(text(e.Label), number(e.Count), analyze.FormatPercent(e.Coverage))
		}
	}
	return d.String()
}

func lessLocation(orgA, projA, repoA, orgB, projB, repoB string) bool {
	if orgA != orgB {
		return orgA < orgB
	}
	if projA != projB {
		return projA < projB
	}
	return repoA < repoB
}
