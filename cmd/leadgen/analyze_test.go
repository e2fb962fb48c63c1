package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCommand_Offline(t *testing.T) {
	dir := fixtureDir(t)

	stdout, stderr, err := executeCommand(t, "analyze", "Acme", "Robotics", "--profiles", dir)
	require.NoError(t, err, stderr)

	assert.Contains(t, stdout, "Analyzing Acme Robotics (max retries 3, delay 1.0s-3.0s)")
	assert.Contains(t, stdout, "Robotics")
	assert.Contains(t, stdout, "72")
	assert.Contains(t, stdout, "Moderate Risk")
	assert.Contains(t, stderr, "Analysis complete!")
	assert.NotContains(t, stdout, "Exported")
}

func TestAnalyzeCommand_Export(t *testing.T) {
	dir := fixtureDir(t)
	outDir := filepath.Join(t.TempDir(), "reports")

	stdout, stderr, err := executeCommand(t, "analyze", "Acme Robotics",
		"--profiles", dir, "--export", "md", "--out", outDir,
		"--max-retries", "2", "--delay-min", "0.5", "--delay-max", "0.5")
	require.NoError(t, err, stderr)

	path := filepath.Join(outDir, "Acme Robotics_analysis.md")
	assert.Contains(t, stdout, "Exported "+path)
	assert.Contains(t, stdout, "max retries 2, delay 0.5s-0.5s")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Robotics")
}

func TestAnalyzeCommand_SingleDelayFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"only max", []string{"--delay-max", "4"}, "delay 1.0s-4.0s"},
		{"only min", []string{"--delay-min", "2"}, "delay 2.0s-3.0s"},
		{"only min above default max", []string{"--delay-min", "4.5"}, "delay 4.5s-4.5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"analyze", "Acme Robotics", "--profiles", fixtureDir(t)}, tt.args...)
			stdout, stderr, err := executeCommand(t, args...)
			require.NoError(t, err, stderr)
			assert.Contains(t, stdout, tt.want)
		})
	}
}

func TestAnalyzeCommand_ConfigFile(t *testing.T) {
	dir := fixtureDir(t)
	outDir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "leadgen.toml")
	cfg := "company = \"Acme Robotics\"\n" +
		"engine = \"offline\"\n" +
		"profiles_dir = \"" + filepath.ToSlash(dir) + "\"\n" +
		"export_format = \"json\"\n" +
		"output_dir = \"" + filepath.ToSlash(outDir) + "\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	_, stderr, err := executeCommand(t, "analyze", "--config", cfgPath)
	require.NoError(t, err, stderr)

	data, err := os.ReadFile(filepath.Join(outDir, "Acme Robotics_analysis.json"))
	require.NoError(t, err)
	assert.JSONEq(t, acmeFixture, string(data))
}

func TestAnalyzeCommand_EmptyCompany(t *testing.T) {
	_, _, err := executeCommand(t, "analyze", "--profiles", fixtureDir(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "please enter a company name")
}

func TestAnalyzeCommand_UnknownCompany(t *testing.T) {
	_, _, err := executeCommand(t, "analyze", "Unknown Co", "--profiles", fixtureDir(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis failed")
	assert.Contains(t, err.Error(), "unknown-co.json")
}

func TestAnalyzeCommand_InvalidRetries(t *testing.T) {
	_, _, err := executeCommand(t, "analyze", "Acme Robotics", "--profiles", fixtureDir(t), "--max-retries", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_retries")
}

func TestAnalyzeCommand_InvalidDelayRange(t *testing.T) {
	_, _, err := executeCommand(t, "analyze", "Acme Robotics", "--profiles", fixtureDir(t), "--delay-min", "4", "--delay-max", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delay_min")
}

func TestAnalyzeCommand_UnknownExportFormat(t *testing.T) {
	_, _, err := executeCommand(t, "analyze", "Acme Robotics", "--profiles", fixtureDir(t), "--export", "docx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "docx")
}

func TestAnalyzeCommand_LiveRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, _, err := executeCommand(t, "analyze", "Acme Robotics", "--engine", "live")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestAnalyzeCommand_OfflineRequiresProfiles(t *testing.T) {
	t.Setenv("LEADGEN_PROFILES_DIR", "")

	_, _, err := executeCommand(t, "analyze", "Acme Robotics", "--engine", "offline")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--profiles")
}
