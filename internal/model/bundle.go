package model

import (
	"time"

	"github.com/google/uuid"
)

// Bundle is the machine-readable form of one report run.
type Bundle struct {
	SchemaVersion string     `json:"schemaVersion"`
	Tool          Tool       `json:"tool"`
	Run           Run        `json:"run"`
	Scope         Scope      `json:"scope"`
	Statistics    Statistics `json:"statistics"`

	Repositories []RepositoryPolicyReport `json:"repositories"`
	StatusChecks []StatusCheckRecord      `json:"statusChecks,omitempty"`
	// TopPolicies and TopStatusChecks use the same coverage bases as the CSV summaries.
	TopPolicies     []RankedEntry `json:"topPolicies,omitempty"`
	TopStatusChecks []RankedEntry `json:"topStatusChecks,omitempty"`
	Concerns        []Concern     `json:"concerns,omitempty"`
	// Skips records projects and repositories that failed to load.
	Skips []Skip `json:"skips,omitempty"`
	// Comparison holds the diff against a previous report when --compare is used.
	Comparison *Comparison `json:"comparison,omitempty"`
}

// Comparison lists what changed since a previous report. Entries are
// "project/repository" or "project/repository: name", sorted.
type Comparison struct {
	PreviousRunID     string    `json:"previousRunId"`
	PreviousStartedAt time.Time `json:"previousStartedAt"`

	RepositoriesAdded   []string `json:"repositoriesAdded,omitempty"`
	RepositoriesRemoved []string `json:"repositoriesRemoved,omitempty"`
	PoliciesAdded       []string `json:"policiesAdded,omitempty"`
	PoliciesRemoved     []string `json:"policiesRemoved,omitempty"`
	StatusChecksAdded   []string `json:"statusChecksAdded,omitempty"`
	StatusChecksRemoved []string `json:"statusChecksRemoved,omitempty"`
	ConcernsNew         []string `json:"concernsNew,omitempty"`
	ConcernsResolved    []string `json:"concernsResolved,omitempty"`

	// RepositoriesWithBranchPoliciesDelta is current minus previous.
	RepositoriesWithBranchPoliciesDelta int `json:"repositoriesWithBranchPoliciesDelta"`
}

// HasChanges reports whether any entry was added or removed.
func (c *Comparison) HasChanges() bool {
	return len(c.RepositoriesAdded)+len(c.RepositoriesRemoved)+
		len(c.PoliciesAdded)+len(c.PoliciesRemoved)+
		len(c.StatusChecksAdded)+len(c.StatusChecksRemoved)+
		len(c.ConcernsNew)+len(c.ConcernsResolved) > 0
}

type Tool struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type Run struct {
	RunID           string    `json:"runId"`
	StartedAt       time.Time `json:"startedAt"`
	EndedAt         time.Time `json:"endedAt"`
	DurationSeconds int       `json:"durationSeconds"`
}

type Scope struct {
	Organization string `json:"organization"`
	TeamProject  string `json:"teamProject,omitempty"`
	Repository   string `json:"repository,omitempty"`
}

type Statistics struct {
	TotalRepositories                 int `json:"totalRepositories"`
	RepositoriesWithBranchPolicies    int `json:"repositoriesWithBranchPolicies"`
	RepositoriesWithoutBranchPolicies int `json:"repositoriesWithoutBranchPolicies"`
	RepositoriesWithStatusChecks      int `json:"repositoriesWithStatusChecks"`
	RepositoriesWithoutStatusChecks   int `json:"repositoriesWithoutStatusChecks"`
}

// RankedEntry is one row of a top-N listing.
type RankedEntry struct {
	Label    string  `json:"label"`
	Count    int     `json:"count"`
	Coverage float64 `json:"coveragePercentage"`
}

const (
	ToolName    = "ado-policy-report"
	ToolVersion = "0.3.0"
)

func NewRunID() string {
	return uuid.NewString()
}

func NewBundle(runID string, started time.Time, scope Scope) Bundle {
	return Bundle{
		SchemaVersion: "1.0.0",
		Tool: Tool{
			Name:    ToolName,
			Version: ToolVersion,
		},
		Run: Run{
			RunID:     runID,
			StartedAt: started,
		},
		Scope:        scope,
		Repositories: []RepositoryPolicyReport{},
	}
}
