package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolePrintsBareMessages(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Console: &buf})
	log.Info("==== POLICY SUMMARY ====")
	log.Debug("hidden")
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "==== POLICY SUMMARY ===="), "got %q", out)
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, "INFO")
}

func TestVerboseAddsLevelAndDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Console: &buf, Verbose: true})
	log.Debug("listing repositories")
	require.NoError(t, log.Sync())

	assert.Contains(t, buf.String(), "listing repositories")
	assert.Contains(t, buf.String(), "DEBUG")
}

func TestFileSinkWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.log")
	log := New(Options{Console: &bytes.Buffer{}, FilePath: path})
	log.Warn("Failed to analyze repository repo1: boom")
	require.NoError(t, log.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(raw), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "Failed to analyze repository repo1: boom", line["message"])
	assert.Equal(t, "ado-policy-report", line["app"])
}
