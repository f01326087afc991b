package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cor.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
input: md-stats.dat
correlations:
  - name: vaf
    a: {columns: [vx, vy, vz]}
    b: {columns: [vx, vy, vz]}
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Correlation, 1)
	cor := cfg.Correlation[0]
	assert.Equal(t, "vaf", cor.Name)
	assert.Equal(t, DefaultBlocks, cor.Blocks)
	assert.Equal(t, DefaultPoints, cor.Points)
	assert.Equal(t, DefaultAveraging, cor.Averaging)
	assert.Equal(t, DefaultUpdateFrequency, cor.UpdateFrequency)
}

func TestLoad_Explicit(t *testing.T) {
	path := writeConfig(t, `
input: md-stats.dat
output: md-cor.dat
log_level: debug
correlations:
  - name: stress
    a: {columns: [Pxy]}
    b: {columns: [Pxy]}
    blocks: 3
    points: 32
    averaging: 4
    update_frequency: 10
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "md-cor.dat", cfg.Output)
	assert.Equal(t, "debug", cfg.LogLevel)
	cor := cfg.Correlation[0]
	assert.Equal(t, 3, cor.Blocks)
	assert.Equal(t, 32, cor.Points)
	assert.Equal(t, 4, cor.Averaging)
	assert.Equal(t, 10, cor.UpdateFrequency)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing_name": `
correlations:
  - a: {columns: [x]}
    b: {columns: [x]}
`,
		"duplicate_name": `
correlations:
  - name: c
    a: {columns: [x]}
    b: {columns: [x]}
  - name: c
    a: {columns: [y]}
    b: {columns: [y]}
`,
		"no_columns": `
correlations:
  - name: c
    a: {columns: []}
    b: {columns: [x]}
`,
		"column_count_mismatch": `
correlations:
  - name: c
    a: {columns: [x, y]}
    b: {columns: [x]}
`,
		"negative_blocks": `
correlations:
  - name: c
    a: {columns: [x]}
    b: {columns: [x]}
    blocks: -1
`,
		"negative_frequency": `
correlations:
  - name: c
    a: {columns: [x]}
    b: {columns: [x]}
    update_frequency: -5
`,
		"unknown_field": `
correlations:
  - name: c
    a: {columns: [x]}
    b: {columns: [x]}
    window: 7
`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
