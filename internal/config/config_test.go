package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ado-policy-report/internal/ado"
)

func env(kv map[string]string) func(string) string {
	return func(k string) string { return kv[k] }
}

func TestLoadFlags(t *testing.T) {
	cfg, err := Load("report", []string{
		"--ado-org", "contoso",
		"--ado-pat", "pat",
		"--team-project", " alpha ",
		"--repo", "web",
		"--csv-output", "out/policies.csv",
		"--status-checks-csv-output", "out/status.csv",
		"--verbose",
		"--timeout", "5m",
		"--qps", "2.5",
	}, env(nil), io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "contoso", cfg.Organization)
	assert.Equal(t, "pat", cfg.PAT)
	assert.Equal(t, "alpha", cfg.TeamProject)
	assert.Equal(t, "web", cfg.Repository)
	assert.Equal(t, "out/policies.csv", cfg.CSVOutput)
	assert.Equal(t, "out/status.csv", cfg.StatusChecksCSVOutput)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)
	assert.Equal(t, 2.5, cfg.QPS)
	assert.Equal(t, ado.DefaultBaseURL, cfg.BaseURL)
	assert.False(t, cfg.Export.Enabled)
}

func TestLoadEnvFallbacks(t *testing.T) {
	cfg, err := Load("report", nil, env(map[string]string{
		"ADO_ORG":      "contoso",
		"ADO_PAT":      "from-env",
		"ADO_BASE_URL": "https://ado.example.com",
	}), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "contoso", cfg.Organization)
	assert.Equal(t, "from-env", cfg.PAT)
	assert.Equal(t, "https://ado.example.com", cfg.BaseURL)
}

func TestFlagWinsOverEnv(t *testing.T) {
	cfg, err := Load("report", []string{"--ado-org", "flag", "--ado-pat", "flag-pat"},
		env(map[string]string{"ADO_ORG": "env", "ADO_PAT": "env-pat"}), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "flag", cfg.Organization)
	assert.Equal(t, "flag-pat", cfg.PAT)
}

func TestLoadValidation(t *testing.T) {
	_, err := Load("report", nil, env(nil), io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--ado-org is required")
	assert.Contains(t, err.Error(), "--ado-pat or ADO_PAT is required")

	_, err = Load("report", []string{"--ado-org", "o", "--ado-pat", "p", "--qps", "0"}, env(nil), io.Discard)
	assert.ErrorContains(t, err, "--qps must be positive")

	_, err = Load("report", []string{"--ado-org", "o", "--ado-pat", "p", "extra"}, env(nil), io.Discard)
	assert.EqualError(t, err, "unexpected arguments: extra")

	_, err = Load("report", []string{"--bogus"}, env(nil), io.Discard)
	assert.Error(t, err)
}

func TestExportConfig(t *testing.T) {
	cfg, err := Load("report", []string{"--ado-org", "o", "--ado-pat", "p"}, env(map[string]string{
		"EXPORT_S3_ENDPOINT":  "minio:9000",
		"MINIO_ROOT_USER":     "minio",
		"MINIO_ROOT_PASSWORD": "secret",
		"EXPORT_S3_USE_SSL":   "false",
		"EXPORT_S3_PREFIX":    "runs/",
	}), io.Discard)
	require.NoError(t, err)

	assert.True(t, cfg.Export.Enabled)
	s3 := cfg.Export.S3
	assert.Equal(t, "minio:9000", s3.Endpoint)
	assert.Equal(t, "us-east-1", s3.Region)
	assert.Equal(t, "minio", s3.AccessKey)
	assert.Equal(t, "secret", s3.SecretKey)
	assert.Equal(t, "ado-policy-reports", s3.Bucket)
	assert.Equal(t, "runs/", s3.Prefix)
	assert.False(t, s3.UseSSL)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ADO_POLICY_REPORT_TEST_KEY=from-file\n"), 0o600))
	t.Setenv("ADO_POLICY_REPORT_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("ADO_POLICY_REPORT_TEST_KEY"))

	LoadEnvFile(path)
	assert.Equal(t, "from-file", os.Getenv("ADO_POLICY_REPORT_TEST_KEY"))

	LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
}

func TestParseBool(t *testing.T) {
	assert.True(t, parseBool("", true))
	assert.False(t, parseBool("0", true))
	assert.True(t, parseBool("nope", true))
}
