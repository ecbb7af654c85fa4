package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ado-policy-report/internal/model"
)

func TestRedact(t *testing.T) {
	b := &model.Bundle{
		Scope: model.Scope{Organization: "contoso", TeamProject: "payments"},
		Repositories: []model.RepositoryPolicyReport{
			{Organization: "contoso", TeamProject: "payments", Repository: "ledger", Policies: []model.BranchPolicy{{Name: "Build validation"}}},
			{Organization: "contoso", TeamProject: "payments", Repository: "gateway"},
		},
		StatusChecks: []model.StatusCheckRecord{
			{Organization: "contoso", TeamProject: "payments", Repository: "ledger", StatusName: "sonar"},
		},
		Concerns: []model.Concern{{TeamProject: "payments", Repository: "ledger", Policies: []string{"Build validation"}}},
		Skips:    []model.Skip{{Unit: "payments/gateway", Reason: "GET https://dev.azure.com/contoso/payments: 403"}},
		Comparison: &model.Comparison{
			PoliciesAdded:     []string{"payments/ledger: Build validation"},
			RepositoriesAdded: []string{"payments/gateway"},
		},
	}

	r, err := Redact(b)
	require.NoError(t, err)

	assert.Equal(t, "[redacted]", r.Scope.Organization)
	assert.Equal(t, "project-1", r.Scope.TeamProject)
	assert.Equal(t, "repository-1", r.Repositories[0].Repository)
	assert.Equal(t, "repository-2", r.Repositories[1].Repository)
	assert.Equal(t, "project-1", r.Repositories[0].TeamProject)
	assert.Equal(t, "Build validation", r.Repositories[0].Policies[0].Name)
	assert.Equal(t, "repository-1", r.StatusChecks[0].Repository)
	assert.Equal(t, "sonar", r.StatusChecks[0].StatusName)
	assert.Equal(t, "repository-1", r.Concerns[0].Repository)
	assert.Equal(t, "project-1/repository-2", r.Skips[0].Unit)
	assert.Equal(t, "[redacted]", r.Skips[0].Reason)
	assert.Equal(t, []string{"project-1/repository-1: Build validation"}, r.Comparison.PoliciesAdded)
	assert.Equal(t, []string{"project-1/repository-2"}, r.Comparison.RepositoriesAdded)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	for _, name := range []string{"contoso", "payments", "ledger", "gateway"} {
		assert.False(t, strings.Contains(string(data), name), "%s leaked", name)
	}

	assert.Equal(t, "contoso", b.Repositories[0].Organization, "input must not be modified")
}

func TestRedactScopeRepositoryMatchesItsEntry(t *testing.T) {
	b := &model.Bundle{
		Scope: model.Scope{Organization: "contoso", Repository: "Ledger"},
		Repositories: []model.RepositoryPolicyReport{
			{Organization: "contoso", TeamProject: "billing", Repository: "audit"},
			{Organization: "contoso", TeamProject: "payments", Repository: "ledger"},
		},
		Concerns: []model.Concern{{TeamProject: "payments", Repository: "ledger", Policies: []string{"Work item linking"}}},
	}

	r, err := Redact(b)
	require.NoError(t, err)

	assert.Equal(t, r.Repositories[1].Repository, r.Scope.Repository)
	assert.Equal(t, r.Concerns[0].Repository, r.Scope.Repository)
	assert.NotEqual(t, r.Repositories[0].Repository, r.Scope.Repository)
	assert.Empty(t, r.Scope.TeamProject)
}

func TestRedactScopeRepositoryWithTeamProject(t *testing.T) {
	b := &model.Bundle{
		Scope: model.Scope{Organization: "contoso", TeamProject: "payments", Repository: "ledger"},
		Repositories: []model.RepositoryPolicyReport{
			{Organization: "contoso", TeamProject: "payments", Repository: "ledger"},
		},
	}

	r, err := Redact(b)
	require.NoError(t, err)
	assert.Equal(t, "repository-1", r.Scope.Repository)
	assert.Equal(t, r.Repositories[0].Repository, r.Scope.Repository)
	assert.Equal(t, r.Repositories[0].TeamProject, r.Scope.TeamProject)
}

func TestRedactScopeRepositoryAmbiguous(t *testing.T) {
	b := &model.Bundle{
		Scope: model.Scope{Organization: "contoso", Repository: "web"},
		Repositories: []model.RepositoryPolicyReport{
			{TeamProject: "alpha", Repository: "web"},
			{TeamProject: "beta", Repository: "web"},
		},
	}

	r, err := Redact(b)
	require.NoError(t, err)
	assert.Equal(t, "[redacted]", r.Scope.Repository)
}
