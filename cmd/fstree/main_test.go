package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettbedarf/fstree"
	"github.com/brettbedarf/fstree/export"
)

const confDef = `
name: conf
children:
  - {name: info.json, size: 10}
  - name: source
    children:
      - {name: source_sso.conf, size: 10}
      - {name: source_forti.conf, size: 10}
      - {name: source_tennant.conf, size: 10}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes the CLI and returns stdout and stderr
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestPrint(t *testing.T) {
	def := writeFile(t, "conf.yaml", confDef)

	out, _, err := run(t, "print", def)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, 6)
	assert.Equal(t, fstree.DirMarker+"conf (40kb)", lines[0])
	assert.Equal(t, "    "+fstree.DirMarker+"source (30kb)", lines[2])
}

func TestPrint_ConfigFile(t *testing.T) {
	def := writeFile(t, "conf.yaml", confDef)
	cfg := writeFile(t, "fstree.yaml", "indent_width: 2\ndir_marker: \"D \"\nfile_marker: \"F \"\n")

	out, _, err := run(t, "--config", cfg, "print", def)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "D conf (40kb)\n  F info.json (10kb)\n"), out)
}

func TestExport(t *testing.T) {
	def := writeFile(t, "conf.yaml", confDef)

	out, _, err := run(t, "export", "-f", export.JSONFormat, def)
	require.NoError(t, err)
	assert.Equal(t,
		`{"info.json":"file","source":[{"source_forti.conf":"file","source_sso.conf":"file","source_tennant.conf":"file"}]}`+"\n",
		out)

	out, _, err = run(t, "export", def)
	require.NoError(t, err)
	assert.Contains(t, out, fstree.DirMarker+"conf (40kb)", "default format is pretty")
}

func TestExport_DefaultFormatFromConfig(t *testing.T) {
	def := writeFile(t, "conf.yaml", confDef)
	cfg := writeFile(t, "fstree.json", `{"default_format": "listing"}`)

	out, _, err := run(t, "-c", cfg, "export", def)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[conf] (directory)\n"), out)
}

func TestExport_UnknownFormat(t *testing.T) {
	_, _, err := run(t, "export", "-f", "xml", "missing.yaml")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)
}

func TestSizeAndStats(t *testing.T) {
	def := writeFile(t, "conf.yaml", confDef)

	out, _, err := run(t, "size", def)
	require.NoError(t, err)
	assert.Equal(t, "40kb\n", out)

	out, _, err = run(t, "stats", def)
	require.NoError(t, err)
	assert.Equal(t, "2 directories, 4 files, 40kb total, depth 2\n", out)
}

func TestFormats(t *testing.T) {
	out, _, err := run(t, "formats")
	require.NoError(t, err)
	assert.Equal(t, export.NewDefaultRegistry(nil).Names(), strings.Fields(out))
}

func TestErrors(t *testing.T) {
	_, _, err := run(t, "print", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = run(t, "--config", "fstree.toml", "formats")
	assert.ErrorContains(t, err, "failed to load config")

	_, _, err = run(t, "print")
	assert.Error(t, err)

	_, _, err = run(t, "mount", "only-one-arg")
	assert.Error(t, err)
}

func TestVerboseLogsToStderr(t *testing.T) {
	def := writeFile(t, "conf.yaml", confDef)

	out, errOut, err := run(t, "-v", "4", "size", def)
	require.NoError(t, err)
	assert.Equal(t, "40kb\n", out)
	assert.Contains(t, errOut, "Tree loaded")

	_, errOut, err = run(t, "-v", "1", "size", def)
	require.NoError(t, err)
	assert.NotContains(t, errOut, "Tree loaded")
}
