package output

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ado-policy-report/internal/analyze"
	"ado-policy-report/internal/model"
)

func TestPrintReportSections(t *testing.T) {
	log, logs := newObservedLogger()
	agg := analyze.NewAggregation()
	agg.AddRepository("org", "proj", "repo", []model.RawPolicy{
		{ID: "1", Type: "t1", Name: "Path-based branch protection", IsEnabled: true, IsBlocking: true, Description: "src/**"},
		{ID: "2", Type: "t2", Name: "Minimum number of reviewers"},
		{ID: "3", Type: "t3", Name: "Work item linking", IsEnabled: true},
	})

	PrintReport(log, agg)

	for _, msg := range []string{
		"==== BRANCH POLICIES REPORT ====",
		"Organization: org",
		"Branch Policies Count: 3",
		"  - Path-based branch protection (ENABLED, BLOCKING)",
		"    src/**",
		"  - Minimum number of reviewers (DISABLED, NON-BLOCKING)",
		"==== POLICY SUMMARY ====",
		"Branch policies grouped by type and count:",
		"Total repositories analyzed: 1",
		"Repositories with branch policies: 1",
		"Repositories without branch policies: 0",
		"==== TOP BRANCH POLICIES ====",
		"Most frequently used branch policies across all repositories:",
		"  Work item linking: 1 repositories (100.0% coverage)",
		"==== MIGRATION CONCERNS ====",
		"  proj/repo: Path-based branch protection, Work item linking",
	} {
		assert.Equal(t, 1, logs.FilterMessage(msg).Len(), "expected %q once", msg)
	}
}

func TestPrintReportEmpty(t *testing.T) {
	log, logs := newObservedLogger()
	agg := analyze.NewAggregation()
	agg.AddRepository("org", "proj", "bare", nil)

	PrintReport(log, agg)

	assert.Equal(t, 1, logs.FilterMessage("  No branch policies configured").Len())
	assert.Equal(t, 1, logs.FilterMessage("No branch policies found across all repositories.").Len())
	assert.Zero(t, logs.FilterMessage("==== MIGRATION CONCERNS ====").Len())
}

func TestPrintComparison(t *testing.T) {
	log, logs := newObservedLogger()
	PrintComparison(log, &model.Comparison{
		PreviousRunID:                       "prev",
		PoliciesAdded:                       []string{"p/web: Build validation"},
		RepositoriesWithBranchPoliciesDelta: 2,
	})

	var got []string
	for _, e := range logs.All() {
		got = append(got, e.Message)
	}
	assert.Equal(t, []string{
		"",
		"==== CHANGES SINCE PREVIOUS RUN ====",
		"",
		"Compared with run prev",
		"Repositories with branch policies: +2",
		"Policies added:",
		"  p/web: Build validation",
	}, got)

	log, logs = newObservedLogger()
	PrintComparison(log, &model.Comparison{PreviousRunID: "prev"})
	assert.Equal(t, 1, logs.FilterMessage("No policy changes.").Len())
	assert.Equal(t, 1, logs.FilterMessage("Repositories with branch policies: +0").Len())
}
