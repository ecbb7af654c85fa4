package model

// Settings is the flattened, string-valued view of a policy's settings
// object. A nil Settings is valid and behaves as empty.
type Settings map[string]string

// Lookup returns the value stored under key, or "" when it is absent.
func (s Settings) Lookup(key string) string {
	if s == nil {
		return ""
	}
	return s[key]
}

// RawPolicy is one branch policy configuration as listed by the source platform.
type RawPolicy struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	IsEnabled   bool     `json:"isEnabled"`
	IsBlocking  bool     `json:"isBlocking"`
	Settings    Settings `json:"settings,omitempty"`
}

type BranchPolicy struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsEnabled   bool   `json:"isEnabled"`
	IsBlocking  bool   `json:"isBlocking"`
}

type StatusCheck struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	StatusName  string `json:"statusName"`
	StatusGenre string `json:"statusGenre"`
	Description string `json:"description,omitempty"`
	IsEnabled   bool   `json:"isEnabled"`
	IsBlocking  bool   `json:"isBlocking"`
}

// Classified holds exactly one of Branch or Status.
type Classified struct {
	Branch *BranchPolicy
	Status *StatusCheck
}

// IsStatusCheck reports whether the policy was classified as a status check.
func (c Classified) IsStatusCheck() bool { return c.Status != nil }

// RepositoryPolicyReport lists the branch policies of one repository.
// Status checks are tracked separately and never appear in Policies.
type RepositoryPolicyReport struct {
	Organization string         `json:"organization"`
	TeamProject  string         `json:"teamProject"`
	Repository   string         `json:"repository"`
	Policies     []BranchPolicy `json:"policies"`
}

// Repository is one entry of a team project's repository listing.
type Repository struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsDisabled bool   `json:"isDisabled"`
}
