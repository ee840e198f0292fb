package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/commitlens/cmd/commitlens/commands"
	"github.com/Sumatoshi-tech/commitlens/pkg/config"
	"github.com/Sumatoshi-tech/commitlens/pkg/render"
)

const payload = `[
  {"sha": "a1", "commit": {"author": {"date": "2024-01-01T09:00:00Z"}},
   "files": [{"filename": "main.go", "patch": "@@ -0,0 +1,3 @@\n+package main\n+\n+func main() {}"}]},
  {"sha": "b2", "commit": {"author": {"date": "2024-01-02T14:00:00Z"}},
   "files": [{"filename": "app.py", "patch": "@@ -0,0 +1,2 @@\n+def handle_request():\n+    return None"}]},
  null,
  {"sha": "c3", "commit": {"author": {"date": "2024-01-08T20:00:00Z"}},
   "files": [{"filename": "README"}]}
]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestAnalyze_WritesOutputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "commits.json", payload)
	cfgPath := writeFile(t, dir, "config.yaml", "")
	htmlPath := filepath.Join(dir, "dashboard.html")
	geometryPath := filepath.Join(dir, "geometry.json")
	svgDir := filepath.Join(dir, "svg")

	cmd := commands.NewAnalyzeCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--config", cfgPath,
		"--width", "800",
		"--workers", "2",
		"--no-color",
		"--strict",
		"--html", htmlPath,
		"--svg-dir", svgDir,
		"--geometry", geometryPath,
		input,
	})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Commits: 4")
	assert.NotContains(t, out.String(), "\x1b[")

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), render.WeekdaysTitle)

	for _, name := range []string{render.WeekdaysFile, render.SizesFile} {
		_, statErr := os.Stat(filepath.Join(svgDir, name))
		require.NoError(t, statErr)
	}

	raw, err := os.ReadFile(geometryPath)
	require.NoError(t, err)

	var geometry map[string]any
	require.NoError(t, json.Unmarshal(raw, &geometry))
	assert.InDelta(t, 800.0, geometry["viewport"], 1e-9)
	assert.InDelta(t, 4.0, geometry["commits"], 1e-9)
}

func TestAnalyze_StdinGeometryYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "layout:\n  measurer: fixed\n")

	cmd := commands.NewAnalyzeCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(payload))
	cmd.SetArgs([]string{"--config", cfgPath, "--geometry", "-", "--geometry-format", "yaml", "-"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "viewport: 1200")
	assert.NotContains(t, out.String(), "=== COMMITLENS ===")
}

func TestAnalyze_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "")
	input := writeFile(t, dir, "commits.json", payload)
	invalid := writeFile(t, dir, "invalid.json", `[{"sha": 5}]`)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"zero width", []string{"--config", cfgPath, "--width", "0", input}, config.ErrInvalidViewport},
		{"negative workers", []string{"--config", cfgPath, "--workers", "-3", input}, config.ErrInvalidWorkers},
		{"bad timezone", []string{"--config", cfgPath, "--timezone", "Nowhere/City", input}, config.ErrInvalidTimezone},
		{"strict schema", []string{"--config", cfgPath, "--strict", invalid}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := commands.NewAnalyzeCommand()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			require.Error(t, err)

			if tt.want != nil {
				require.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	valid := writeFile(t, dir, "valid.json", payload)
	invalid := writeFile(t, dir, "invalid.json", `[{"sha": 5, "files": [{"filename": 1}]}]`)

	cmd := commands.NewValidateCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--no-color", valid})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Commit payload is valid")

	cmd = commands.NewValidateCommand()
	out.Reset()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--no-color", invalid})

	err := cmd.Execute()
	require.ErrorIs(t, err, commands.ErrValidationFailed)
	assert.Contains(t, out.String(), "Commit payload is invalid")
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestSchema(t *testing.T) {
	t.Parallel()

	cmd := commands.NewSchemaCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	var schema map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &schema))
	assert.Equal(t, "object", schema["type"])
}
