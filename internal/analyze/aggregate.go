package analyze

import (
	"sort"
	"time"

	"ado-policy-report/internal/model"
)

// Aggregation owns every table built during one report run. It is threaded
// through collection and read by the renderers once collection finishes.
type Aggregation struct {
	Reports       []model.RepositoryPolicyReport
	BranchRecords []model.BranchPolicyRecord
	StatusRecords []model.StatusCheckRecord

	// PolicySummary and StatusSummary feed the printed summaries.
	PolicySummary *FrequencyTable
	StatusSummary *FrequencyTable
	// GlobalPolicyCount and GlobalStatusCount feed the top-N rankings.
	GlobalPolicyCount *FrequencyTable
	GlobalStatusCount *FrequencyTable

	Skips []model.Skip

	reposWithStatusChecks int
}

func NewAggregation() *Aggregation {
	return &Aggregation{
		Reports:           []model.RepositoryPolicyReport{},
		PolicySummary:     NewFrequencyTable(),
		StatusSummary:     NewFrequencyTable(),
		GlobalPolicyCount: NewFrequencyTable(),
		GlobalStatusCount: NewFrequencyTable(),
	}
}

// AddRepository folds one repository's policies into the run. Duplicates are
// dropped first, survivors are classified, branch policies go into the
// repository's report, and each survivor is counted once. It returns the
// number of surviving policies of both kinds.
func (a *Aggregation) AddRepository(org, teamProject, repo string, raw []model.RawPolicy) int {
	unique := Dedup(raw)

	report := model.RepositoryPolicyReport{
		Organization: org,
		TeamProject:  teamProject,
		Repository:   repo,
		Policies:     []model.BranchPolicy{},
	}
	statusChecks := 0

	for _, p := range unique {
		c := Classify(p)
		if c.IsStatusCheck() {
			s := c.Status
			a.StatusSummary.Inc(s.StatusName)
			a.GlobalStatusCount.Inc(s.StatusName)
			a.StatusRecords = append(a.StatusRecords, model.StatusCheckRecord{
				Organization: org,
				TeamProject:  teamProject,
				Repository:   repo,
				PolicyID:     s.ID,
				PolicyType:   s.Type,
				StatusName:   s.StatusName,
				StatusGenre:  s.StatusGenre,
				Description:  s.Description,
				IsEnabled:    s.IsEnabled,
				IsBlocking:   s.IsBlocking,
			})
			statusChecks++
			continue
		}

		b := c.Branch
		report.Policies = append(report.Policies, *b)
		a.PolicySummary.Inc(b.Name)
		a.GlobalPolicyCount.Inc(b.Name)
		a.BranchRecords = append(a.BranchRecords, model.BranchPolicyRecord{
			Organization: org,
			TeamProject:  teamProject,
			Repository:   repo,
			PolicyID:     b.ID,
			PolicyType:   b.Type,
			PolicyName:   b.Name,
			Description:  b.Description,
			IsEnabled:    b.IsEnabled,
			IsBlocking:   b.IsBlocking,
		})
	}

	a.Reports = append(a.Reports, report)
	if statusChecks > 0 {
		a.reposWithStatusChecks++
	}
	return len(unique)
}

// Skip records a unit (team project or repository) that could not be analyzed.
func (a *Aggregation) Skip(unit, reason string, timeout bool) {
	a.Skips = append(a.Skips, model.Skip{Unit: unit, Reason: reason, Timeout: timeout})
}

func (a *Aggregation) TotalRepositories() int {
	return len(a.Reports)
}

func (a *Aggregation) RepositoriesWithBranchPolicies() int {
	n := 0
	for _, r := range a.Reports {
		if len(r.Policies) > 0 {
			n++
		}
	}
	return n
}

func (a *Aggregation) RepositoriesWithoutBranchPolicies() int {
	return a.TotalRepositories() - a.RepositoriesWithBranchPolicies()
}

func (a *Aggregation) RepositoriesWithStatusChecks() int {
	return a.reposWithStatusChecks
}

func (a *Aggregation) RepositoriesWithoutStatusChecks() int {
	return a.TotalRepositories() - a.reposWithStatusChecks
}

// Statistics snapshots the repository counters.
func (a *Aggregation) Statistics() model.Statistics {
	return model.Statistics{
		TotalRepositories:                 a.TotalRepositories(),
		RepositoriesWithBranchPolicies:    a.RepositoriesWithBranchPolicies(),
		RepositoriesWithoutBranchPolicies: a.RepositoriesWithoutBranchPolicies(),
		RepositoriesWithStatusChecks:      a.RepositoriesWithStatusChecks(),
		RepositoriesWithoutStatusChecks:   a.RepositoriesWithoutStatusChecks(),
	}
}

// TopPolicies ranks branch policies against repositories that have any.
func (a *Aggregation) TopPolicies() []model.RankedEntry {
	return Top(a.GlobalPolicyCount, TopN, a.RepositoriesWithBranchPolicies())
}

// TopStatusChecks ranks status checks against all analyzed repositories.
func (a *Aggregation) TopStatusChecks() []model.RankedEntry {
	return Top(a.GlobalStatusCount, TopN, a.TotalRepositories())
}

// Concerns runs concern detection over the collected reports.
func (a *Aggregation) Concerns() []model.Concern {
	return DetectConcerns(a.Reports)
}

// SortedReports returns the reports ordered by team project, then repository.
func (a *Aggregation) SortedReports() []model.RepositoryPolicyReport {
	out := append([]model.RepositoryPolicyReport(nil), a.Reports...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TeamProject != out[j].TeamProject {
			return out[i].TeamProject < out[j].TeamProject
		}
		return out[i].Repository < out[j].Repository
	})
	return out
}

// Bundle assembles the machine-readable report for the run.
func (a *Aggregation) Bundle(runID string, started, ended time.Time, scope model.Scope) model.Bundle {
	b := model.NewBundle(runID, started, scope)
	b.Run.EndedAt = ended
	b.Run.DurationSeconds = int(ended.Sub(started).Seconds())
	b.Statistics = a.Statistics()
	b.Repositories = append(b.Repositories, a.SortedReports()...)
	b.StatusChecks = a.StatusRecords
	b.TopPolicies = a.TopPolicies()
	b.TopStatusChecks = a.TopStatusChecks()
	b.Concerns = a.Concerns()
	b.Skips = a.Skips
	return b
}
