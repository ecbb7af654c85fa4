// Package collect walks team projects and repositories and feeds each
// repository's branch policies into an analyze.Aggregation.
package collect

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"ado-policy-report/internal/analyze"
	"ado-policy-report/internal/model"
)

// API lists what the walk needs from the source platform.
type API interface {
	ListTeamProjects(ctx context.Context, org string) ([]string, error)
	ListRepositories(ctx context.Context, org, project string) ([]model.Repository, error)
	ListPolicies(ctx context.Context, org, project, repoID string) ([]model.RawPolicy, error)
}

// Scope narrows the walk. Empty TeamProject means every team project of the
// organization; empty Repository means every enabled repository.
type Scope struct {
	Organization string
	TeamProject  string
	Repository   string
}

// Collector runs the walk. IsTimeout classifies collaborator errors; when nil
// only context deadlines and cancellations count as timeouts.
type Collector struct {
	API       API
	Log       *zap.Logger
	IsTimeout func(error) bool
}

// Run walks every in-scope repository sequentially and records it in agg.
// Failures of a single project or repository, including an expired or
// cancelled ctx, are logged and recorded as skips; only a failure to list the
// organization's team projects is returned.
func (c *Collector) Run(ctx context.Context, scope Scope, agg *analyze.Aggregation) error {
	projects := []string{scope.TeamProject}
	if scope.TeamProject == "" {
		var err error
		projects, err = c.API.ListTeamProjects(ctx, scope.Organization)
		if err != nil {
			return fmt.Errorf("list team projects: %w", err)
		}
	}

	for _, project := range projects {
		c.Log.Info("Analyzing team project: " + project)
		if err := c.project(ctx, scope, project, agg); err != nil {
			c.warn(agg, "", "team project", project, project, err)
		}
	}
	return nil
}

func (c *Collector) project(ctx context.Context, scope Scope, project string, agg *analyze.Aggregation) error {
	repos, err := c.API.ListRepositories(ctx, scope.Organization, project)
	if err != nil {
		return err
	}

	sel := Select(repos, scope.Repository)
	switch {
	case sel.NotFound:
		c.Log.Warn(fmt.Sprintf("  Repository '%s' not found in team project '%s'", scope.Repository, project))
		return nil
	case sel.RequestedDisabled:
		c.Log.Warn(fmt.Sprintf("  Repository '%s' is disabled. Skipping branch policy analysis.", scope.Repository))
		return nil
	}
	if len(sel.Disabled) > 0 && scope.Repository == "" {
		c.Log.Info(fmt.Sprintf("  Skipping %d disabled repository(ies): %s", len(sel.Disabled), names(sel.Disabled)))
	}

	for _, repo := range sel.Analyze {
		c.Log.Info("  Analyzing repository: " + repo.Name)
		raw, err := c.API.ListPolicies(ctx, scope.Organization, project, repo.ID)
		if err != nil {
			c.warn(agg, "    ", "repository", repo.Name, project+"/"+repo.Name, err)
			continue
		}
		n := agg.AddRepository(scope.Organization, project, repo.Name, raw)
		c.Log.Info(fmt.Sprintf("    Found %d unique branch policies", n))
	}
	return nil
}

// warn logs a failed unit and records it as a skip under unit.
func (c *Collector) warn(agg *analyze.Aggregation, indent, kind, name, unit string, err error) {
	timeout := c.timeout(err)
	if timeout {
		c.Log.Warn(fmt.Sprintf("%sRequest timeout analyzing %s %s: %v", indent, kind, name, err))
	} else {
		c.Log.Warn(fmt.Sprintf("%sFailed to analyze %s %s: %v", indent, kind, name, err))
	}
	agg.Skip(unit, err.Error(), timeout)
}

func (c *Collector) timeout(err error) bool {
	if c.IsTimeout != nil {
		return c.IsTimeout(err)
	}
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// SkipSummary folds the recorded skips into one aggregate error, or nil when
// nothing was skipped.
func SkipSummary(skips []model.Skip) error {
	errs := make([]error, 0, len(skips))
	for _, s := range skips {
		errs = append(errs, fmt.Errorf("%s: %s", s.Unit, s.Reason))
	}
	return utilerrors.NewAggregate(errs)
}
