package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

func TestDefaultReportPath(t *testing.T) {
	cases := map[string]string{
		"md-stats.dat":      "md-cor.dat",
		"run/npt-stats.dat": "run/npt-cor.dat",
		"series.txt":        "series-cor.dat",
		"plain":             "plain-cor.dat",
	}
	for in, want := range cases {
		assert.Equal(t, want, defaultReportPath(in))
	}
}

func TestRunCommand_EndToEnd(t *testing.T) {
	dir := t.TempDir()

	input := filepath.Join(dir, "md-stats.dat")
	require.NoError(t, os.WriteFile(input, []byte(
		"# Step | x | y\n0 1 2\n1 2 4\n2 3 6\n3 4 8\n4 5 10\n"), 0o644))

	configPath := filepath.Join(dir, "cor.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
correlations:
  - name: x2
    a: {columns: [x]}
    b: {columns: [x]}
    blocks: 1
    points: 4
    averaging: 2
`), 0o644))

	output := filepath.Join(dir, "md-cor.dat")
	cmd := newRunCmd()
	cmd.SetArgs([]string{"--config", configPath, "--input", input, "--output", output})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var back map[string]struct {
		Value []float64 `yaml:"value"`
		Lags  []float64 `yaml:"lags"`
	}
	require.NoError(t, yaml.Unmarshal(data, &back))
	require.Contains(t, back, "x2")
	require.NotEmpty(t, back["x2"].Value)
	assert.InDelta(t, 11.0, back["x2"].Value[0], 1e-12)
	assert.Equal(t, float64(0), back["x2"].Lags[0])
}

func TestRunCommand_MissingInput(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "cor.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
correlations:
  - name: x2
    a: {columns: [x]}
    b: {columns: [x]}
`), 0o644))

	cmd := newRunCmd()
	cmd.SetArgs([]string{"--config", configPath})
	assert.Error(t, cmd.Execute())
}

func TestSummaryCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "md-stats.dat")
	require.NoError(t, os.WriteFile(input, []byte(
		"# Step | T [K]\n0 300\n1 302\n2 304\n"), 0o644))

	var buf bytes.Buffer
	cmd := newSummaryCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{input})
	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "contains 2 timeseries, each with 3 elements")
	assert.Contains(t, out, "T [K] 302")
}
