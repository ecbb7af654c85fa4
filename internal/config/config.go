// Package config parses command-line flags and environment for the report command.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"ado-policy-report/internal/ado"
	"ado-policy-report/internal/output"
)

type Config struct {
	Organization string
	PAT          string
	TeamProject  string
	Repository   string
	BaseURL      string

	CSVOutput             string
	StatusChecksCSVOutput string
	JSONOutput            string
	MarkdownOutput        string
	ComparePath           string
	Redact                bool

	Verbose bool
	LogFile string
	Timeout time.Duration
	QPS     float64

	Export ExportConfig
}

// ExportConfig mirrors every written report into an S3-compatible bucket
// when Enabled.
type ExportConfig struct {
	Enabled bool
	S3      output.S3Config
}

// LoadEnvFile loads .env style files into the process environment. Missing
// files are ignored.
func LoadEnvFile(paths ...string) {
	_ = godotenv.Load(paths...)
}

// Load parses args (without the program name). getenv supplies fallbacks for
// values not given on the command line.
func Load(name string, args []string, getenv func(string) string, usage io.Writer) (*Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if usage != nil {
		fs.SetOutput(usage)
	}

	var (
		org         = fs.String("ado-org", "", "Azure DevOps organization (or ADO_ORG)")
		pat         = fs.String("ado-pat", "", "Personal access token (or ADO_PAT)")
		teamProject = fs.String("team-project", "", "Team project; all team projects of the organization when empty")
		repo        = fs.String("repo", "", "Repository name; all enabled repositories when empty")
		csvOut      = fs.String("csv-output", "", "Path for the branch policies CSV; a -summary.csv is written next to it")
		statusOut   = fs.String("status-checks-csv-output", "", "Path for the status checks CSV; a -summary.csv is written next to it")
		jsonOut     = fs.String("json-output", "", "Path for the JSON report (optional)")
		mdOut       = fs.String("markdown-output", "", "Path for the Markdown readiness report (optional)")
		comparePath = fs.String("compare", "", "Path to a previous JSON report to diff against")
		redact      = fs.Bool("redact", false, "Mask organization, project and repository names in JSON and Markdown reports")
		verbose     = fs.Bool("verbose", false, "Debug logging with timestamps and levels")
		logFile     = fs.String("log-file", "", "Also write JSON logs to this rotated file")
		timeout     = fs.Duration("timeout", 30*time.Minute, "Upper bound for the whole analysis")
		baseURL     = fs.String("ado-base-url", "", "Azure DevOps base URL (or ADO_BASE_URL)")
		qps         = fs.Float64("qps", 10, "Maximum Azure DevOps requests per second")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := &Config{
		Organization:          firstNonEmpty(*org, getenv("ADO_ORG")),
		PAT:                   firstNonEmpty(*pat, getenv("ADO_PAT")),
		TeamProject:           strings.TrimSpace(*teamProject),
		Repository:            strings.TrimSpace(*repo),
		BaseURL:               firstNonEmpty(*baseURL, getenv("ADO_BASE_URL"), ado.DefaultBaseURL),
		CSVOutput:             strings.TrimSpace(*csvOut),
		StatusChecksCSVOutput: strings.TrimSpace(*statusOut),
		JSONOutput:            strings.TrimSpace(*jsonOut),
		MarkdownOutput:        strings.TrimSpace(*mdOut),
		ComparePath:           strings.TrimSpace(*comparePath),
		Redact:                *redact,
		Verbose:               *verbose,
		LogFile:               strings.TrimSpace(*logFile),
		Timeout:               *timeout,
		QPS:                   *qps,
		Export:                loadExportConfig(getenv),
	}
	return cfg, cfg.Validate()
}

func loadExportConfig(getenv func(string) string) ExportConfig {
	endpoint := strings.TrimSpace(getenv("EXPORT_S3_ENDPOINT"))
	return ExportConfig{
		Enabled: endpoint != "",
		S3: output.S3Config{
			Endpoint:  endpoint,
			Region:    firstNonEmpty(getenv("EXPORT_S3_REGION"), "us-east-1"),
			AccessKey: firstNonEmpty(getenv("EXPORT_S3_ACCESS_KEY"), getenv("MINIO_ROOT_USER")),
			SecretKey: firstNonEmpty(getenv("EXPORT_S3_SECRET_KEY"), getenv("MINIO_ROOT_PASSWORD")),
			Bucket:    firstNonEmpty(getenv("EXPORT_S3_BUCKET"), "ado-policy-reports"),
			Prefix:    strings.TrimSpace(getenv("EXPORT_S3_PREFIX")),
			UseSSL:    parseBool(getenv("EXPORT_S3_USE_SSL"), true),
		},
	}
}

// Validate reports the settings the command cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if c.Organization == "" {
		errs = append(errs, errors.New("--ado-org is required"))
	}
	if c.PAT == "" {
		errs = append(errs, errors.New("--ado-pat or ADO_PAT is required"))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("--timeout must not be negative, got %s", c.Timeout))
	}
	if c.QPS <= 0 {
		errs = append(errs, fmt.Errorf("--qps must be positive, got %g", c.QPS))
	}
	return errors.Join(errs...)
}

func parseBool(raw string, def bool) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			return v
		}
	}
	return ""
}
