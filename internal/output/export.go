package output

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ado-policy-report/internal/analyze"
	"ado-policy-report/internal/model"
)

// Exporter renders documents and hands them to a Writer. A failed export is
// logged and reported; it never prevents the remaining exports.
type Exporter struct {
	Log    *zap.Logger
	Writer Writer
}

// BranchPolicies writes the branch-policy detail CSV to path and the summary
// CSV next to it.
func (e *Exporter) BranchPolicies(ctx context.Context, path string, agg *analyze.Aggregation) error {
	e.Log.Info("")
	e.Log.Info("Exporting results to CSV...")

	if err := e.Writer.WriteText(ctx, path, BranchPoliciesCSV(agg.BranchRecords)); err != nil {
		return e.failed("CSV", err)
	}
	e.Log.Info("Branch policies data exported to: " + path)

	summaryPath := SummaryPath(path)
	summary := BranchPoliciesSummaryCSV(agg.PolicySummary, agg.Statistics(), agg.GlobalPolicyCount)
	if err := e.Writer.WriteText(ctx, summaryPath, summary); err != nil {
		return e.failed("CSV", err)
	}
	e.Log.Info("Summary data exported to: " + summaryPath)
	return nil
}

// StatusChecks writes the status-check detail CSV to path and the summary
// CSV next to it.
func (e *Exporter) StatusChecks(ctx context.Context, path string, agg *analyze.Aggregation) error {
	e.Log.Info("")
	e.Log.Info("Exporting status checks to CSV...")

	if err := e.Writer.WriteText(ctx, path, StatusChecksCSV(agg.StatusRecords)); err != nil {
		return e.failed("status checks CSV", err)
	}
	e.Log.Info("Status checks data exported to: " + path)

	summaryPath := SummaryPath(path)
	summary := StatusChecksSummaryCSV(agg.StatusSummary, agg.Statistics(), agg.GlobalStatusCount)
	if err := e.Writer.WriteText(ctx, summaryPath, summary); err != nil {
		return e.failed("status checks CSV", err)
	}
	e.Log.Info("Status checks summary data exported to: " + summaryPath)
	return nil
}

// JSON writes the machine-readable bundle.
func (e *Exporter) JSON(ctx context.Context, path string, b *model.Bundle) error {
	doc, err := JSON(b)
	if err != nil {
		return e.failed("JSON report", err)
	}
	if err := e.Writer.WriteText(ctx, path, doc); err != nil {
		return e.failed("JSON report", err)
	}
	e.Log.Info("JSON report exported to: " + path)
	return nil
}

// Markdown writes the readiness report for reviewers.
func (e *Exporter) Markdown(ctx context.Context, path string, b *model.Bundle) error {
	if err := e.Writer.WriteText(ctx, path, Markdown(b)); err != nil {
		return e.failed("Markdown report", err)
	}
	e.Log.Info("Markdown report exported to: " + path)
	return nil
}

func (e *Exporter) failed(what string, err error) error {
	cause := "file access error"
	if IsPermission(err) {
		cause = "permission error"
	}
	e.Log.Error(fmt.Sprintf("Failed to export %s due to %s: %v", what, cause, err))
	return fmt.Errorf("export %s: %w", what, err)
}
