package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"go.uber.org/zap"

	"ado-policy-report/internal/ado"
	"ado-policy-report/internal/collect"
	"ado-policy-report/internal/config"
	"ado-policy-report/internal/logging"
	"ado-policy-report/internal/output"
	"ado-policy-report/internal/report"
)

func main() {
	config.LoadEnvFile()

	cfg, err := config.Load(os.Args[0], os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		boot := logging.New(logging.Options{Console: os.Stderr})
		boot.Fatal("invalid arguments: " + err.Error())
	}

	log := logging.New(logging.Options{Verbose: cfg.Verbose, FilePath: cfg.LogFile})
	defer func() { _ = log.Sync() }()

	client, err := ado.New(ado.Options{BaseURL: cfg.BaseURL, PAT: cfg.PAT, QPS: float32(cfg.QPS)})
	if err != nil {
		log.Fatal("ado client", zap.Error(err))
	}

	writers := output.MultiWriter{output.FileWriter{}}
	if cfg.Export.Enabled {
		mirror, err := output.NewObjectWriter(cfg.Export.S3)
		if err != nil {
			log.Fatal("export mirror", zap.Error(err))
		}
		writers = append(writers, mirror)
		log.Debug("mirroring exports", zap.String("endpoint", cfg.Export.S3.Endpoint), zap.String("bucket", cfg.Export.S3.Bucket))
	}

	ctx := context.Background()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	runner := &report.Runner{
		Log:       log,
		Collector: &collect.Collector{API: client, Log: log, IsTimeout: ado.IsTimeout},
		Exporter:  &output.Exporter{Log: log, Writer: writers},
	}
	req := report.Request{
		Scope: collect.Scope{
			Organization: cfg.Organization,
			TeamProject:  cfg.TeamProject,
			Repository:   cfg.Repository,
		},
		CSVOutput:             cfg.CSVOutput,
		StatusChecksCSVOutput: cfg.StatusChecksCSVOutput,
		JSONOutput:            cfg.JSONOutput,
		MarkdownOutput:        cfg.MarkdownOutput,
		ComparePath:           cfg.ComparePath,
		Redact:                cfg.Redact,
	}
	if _, err := runner.Run(ctx, req); err != nil {
		log.Fatal("branch policies analysis failed", zap.Error(err))
	}
}
