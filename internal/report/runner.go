// Package report runs one branch-policy analysis end to end: collection,
// console report and exports.
package report

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ado-policy-report/internal/analyze"
	"ado-policy-report/internal/collect"
	"ado-policy-report/internal/compare"
	"ado-policy-report/internal/model"
	"ado-policy-report/internal/output"
)

// Request names what to analyze and where the exports go. Empty paths skip
// the corresponding export.
type Request struct {
	Scope collect.Scope

	CSVOutput             string
	StatusChecksCSVOutput string
	JSONOutput            string
	MarkdownOutput        string

	// ComparePath names a JSON report of an earlier run to diff against.
	ComparePath string
	// Redact masks organization, project and repository names in the JSON
	// and Markdown reports.
	Redact bool
}

type Runner struct {
	Log       *zap.Logger
	Collector *collect.Collector
	Exporter  *output.Exporter
	// Now defaults to time.Now.
	Now func() time.Time
}

// Run collects every in-scope repository, prints the report and writes the
// requested exports. Export failures are logged, counted in the closing
// summary and do not fail the run; the returned error is set only when
// collection could not start.
func (r *Runner) Run(ctx context.Context, req Request) (*analyze.Aggregation, error) {
	now := r.Now
	if now == nil {
		now = time.Now
	}
	started := now().UTC()

	r.Log.Info("Starting branch policies analysis...")

	agg := analyze.NewAggregation()
	if err := r.Collector.Run(ctx, req.Scope, agg); err != nil {
		return agg, fmt.Errorf("collect: %w", err)
	}

	output.PrintReport(r.Log, agg)

	if err := collect.SkipSummary(agg.Skips); err != nil {
		r.Log.Info("")
		r.Log.Warn(fmt.Sprintf("Skipped %d unit(s) that could not be analyzed: %v", len(agg.Skips), err))
	}

	scope := model.Scope{
		Organization: req.Scope.Organization,
		TeamProject:  req.Scope.TeamProject,
		Repository:   req.Scope.Repository,
	}
	b := agg.Bundle(model.NewRunID(), started, now().UTC(), scope)
	r.applyComparison(&b, req.ComparePath)

	// ── Exports ─────────────────────────────────────────────────────────────
	// A partial report is still written after the run deadline has passed.
	ectx := context.WithoutCancel(ctx)
	failed := 0
	if req.CSVOutput != "" && r.Exporter.BranchPolicies(ectx, req.CSVOutput, agg) != nil {
		failed++
	}
	if req.StatusChecksCSVOutput != "" && r.Exporter.StatusChecks(ectx, req.StatusChecksCSVOutput, agg) != nil {
		failed++
	}
	if req.JSONOutput != "" || req.MarkdownOutput != "" {
		failed += r.exportReports(ectx, req, &b)
	}

	r.Log.Info("")
	if failed > 0 {
		r.Log.Warn(fmt.Sprintf("%d export(s) failed; see the errors above.", failed))
	}
	r.Log.Info("Branch policies analysis completed.")
	return agg, nil
}

func (r *Runner) applyComparison(b *model.Bundle, path string) {
	if path == "" {
		return
	}
	prev, err := compare.Load(path)
	if err != nil {
		r.Log.Info("")
		r.Log.Warn(fmt.Sprintf("Could not load previous report %s: %v (skipping comparison)", path, err))
		return
	}
	diff := compare.Diff(prev, b)
	b.Comparison = &diff
	output.PrintComparison(r.Log, &diff)
}

// exportReports writes the JSON and Markdown reports and returns how many
// of them could not be written.
func (r *Runner) exportReports(ctx context.Context, req Request, b *model.Bundle) int {
	if req.Redact {
		red, err := output.Redact(b)
		if err != nil {
			r.Log.Error("Failed to redact report: " + err.Error())
			n := 0
			if req.JSONOutput != "" {
				n++
			}
			if req.MarkdownOutput != "" {
				n++
			}
			return n
		}
		b = red
	}
	failed := 0
	if req.JSONOutput != "" && r.Exporter.JSON(ctx, req.JSONOutput, b) != nil {
		failed++
	}
	if req.MarkdownOutput != "" && r.Exporter.Markdown(ctx, req.MarkdownOutput, b) != nil {
		failed++
	}
	return failed
}
