package model

import "strings"

// BranchPolicyRecord is one row of the branch-policy CSV export.
type BranchPolicyRecord struct {
	Organization string `json:"organization"`
	TeamProject  string `json:"teamProject"`
	Repository   string `json:"repository"`
	PolicyID     string `json:"policyId"`
	PolicyType   string `json:"policyType"`
	PolicyName   string `json:"policyName"`
	Description  string `json:"description"`
	IsEnabled    bool   `json:"isEnabled"`
	IsBlocking   bool   `json:"isBlocking"`
}

// StatusCheckRecord is one row of the status-check CSV export.
type StatusCheckRecord struct {
	Organization string `json:"organization"`
	TeamProject  string `json:"teamProject"`
	Repository   string `json:"repository"`
	PolicyID     string `json:"policyId"`
	PolicyType   string `json:"policyType"`
	StatusName   string `json:"statusName"`
	StatusGenre  string `json:"statusGenre"`
	Description  string `json:"description"`
	IsEnabled    bool   `json:"isEnabled"`
	IsBlocking   bool   `json:"isBlocking"`
}

// Concern flags a repository whose branch policies need attention during migration.
type Concern struct {
	TeamProject string   `json:"teamProject"`
	Repository  string   `json:"repository"`
	Policies    []string `json:"policies"`
}

// Skip records a team project or repository that could not be analyzed.
type Skip struct {
	Unit    string `json:"unit"`
	Reason  string `json:"reason"`
	Timeout bool   `json:"timeout"` // true when the collaborator call timed out
}

// Joined returns the concerning policy names separated by ", ".
func (c Concern) Joined() string {
	return strings.Join(c.Policies, ", ")
}
