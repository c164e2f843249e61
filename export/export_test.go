package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/fstree"
	"github.com/brettbedarf/fstree/config"
	"github.com/brettbedarf/fstree/filesystem"
	"github.com/brettbedarf/fstree/internal/mocks"
)

// confTree builds conf/{info.json, source/{3 files}} with every file at 10kb
func confTree(t *testing.T) *filesystem.Dir {
	t.Helper()
	root := filesystem.MustDir("conf", "folder")
	source := filesystem.MustDir("source", "folder")
	require.NoError(t, source.Add(
		filesystem.MustFile("source_sso.conf", 10, "file"),
		filesystem.MustFile("source_forti.conf", 10, "file"),
		filesystem.MustFile("source_tennant.conf", 10, "file"),
	))
	require.NoError(t, root.Add(filesystem.MustFile("info.json", 10, "file"), source))
	return root
}

// deepTree nests dirs several levels with an empty dir and a shared file
func deepTree(t *testing.T) *filesystem.Dir {
	t.Helper()
	shared := filesystem.MustFile("shared.bin", 3, "")
	root := filesystem.MustDir("root", "")
	a := filesystem.MustDir("a", "")
	b := filesystem.MustDir("b", "")
	empty := filesystem.MustDir("empty", "")
	require.NoError(t, b.Add(shared, filesystem.MustFile("b.txt", 5, "")))
	require.NoError(t, a.Add(b, empty, shared))
	require.NoError(t, root.Add(a, filesystem.MustFile("top.txt", 1, "")))
	return root
}

func countNodes(n fstree.Node) int {
	count := 1
	for _, c := range n.Children() {
		count += countNodes(c)
	}
	return count
}

func TestPretty_MatchesRender(t *testing.T) {
	t.Parallel()

	for _, root := range []*filesystem.Dir{confTree(t), deepTree(t)} {
		var rendered, printed bytes.Buffer
		require.NoError(t, root.Render(&rendered, ""))
		require.NoError(t, Pretty(&printed, root))
		assert.Equal(t, rendered.String(), printed.String())
	}
}

func TestPretty_LineCountAndIndent(t *testing.T) {
	t.Parallel()

	root := deepTree(t)
	out := DefaultPrinter().String(root)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, countNodes(root))

	var depths []int
	require.NoError(t, fstree.Walk(root, func(_ fstree.Node, depth int) error {
		depths = append(depths, depth)
		return nil
	}))
	for i, line := range lines {
		indent := len(line) - len(strings.TrimLeft(line, " "))
		assert.Equal(t, 4*depths[i], indent, "line %d: %q", i, line)
	}
}

func TestPretty_ConfScenario(t *testing.T) {
	t.Parallel()

	out := DefaultPrinter().String(confTree(t))
	assert.Contains(t, out, fstree.DirMarker+"conf (40kb)\n")
	assert.Contains(t, out, "    "+fstree.DirMarker+"source (30kb)\n")
}

func TestPretty_EmptyDir(t *testing.T) {
	t.Parallel()

	out := PrettyString(filesystem.MustDir("empty", ""))
	assert.Equal(t, fstree.DirMarker+"empty (0kb)\n", out)
}

func TestPrinter_FromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewDefaultConfig()
	cfg.IndentWidth = 2
	cfg.DirMarker = "D "
	cfg.FileMarker = "F "

	out := NewPrinter(cfg).String(confTree(t))
	assert.True(t, strings.HasPrefix(out, "D conf (40kb)\n  F info.json (10kb)\n  D source (30kb)\n    F source_sso.conf (10kb)\n"))
}

func TestPretty_WriteErrorAborts(t *testing.T) {
	t.Parallel()

	sinkErr := errors.New("closed")
	w := &mocks.FailingWriter{Allow: 1, Err: sinkErr}
	err := Pretty(w, confTree(t))
	assert.ErrorIs(t, err, sinkErr)
	assert.Len(t, w.Writes, 1)
}

func TestStructured_ConfScenario(t *testing.T) {
	t.Parallel()

	expected := map[string]any{
		"info.json": "file",
		"source": []any{map[string]any{
			"source_sso.conf":     "file",
			"source_forti.conf":   "file",
			"source_tennant.conf": "file",
		}},
	}
	assert.Equal(t, expected, Structured(confTree(t)))
}

func TestStructured_File(t *testing.T) {
	t.Parallel()

	f := filesystem.MustFile("info.json", 10, "")
	assert.Equal(t, map[string]any{"name": "info.json"}, Structured(f))
	assert.Equal(t, map[string]any{"name": "info.json"}, Flat(f))
}

func TestFlat(t *testing.T) {
	t.Parallel()

	expected := map[string]any{
		"top.txt": "file",
		"a": map[string]any{
			"b":          map[string]any{"shared.bin": "file", "b.txt": "file"},
			"empty":      map[string]any{},
			"shared.bin": "file",
		},
	}
	assert.Equal(t, expected, Flat(deepTree(t)))
}

func TestJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, confTree(t), false))
	assert.Equal(t,
		`{"info.json":"file","source":[{"source_forti.conf":"file","source_sso.conf":"file","source_tennant.conf":"file"}]}`+"\n",
		buf.String())

	buf.Reset()
	require.NoError(t, JSON(&buf, confTree(t), true))
	assert.Equal(t,
		`{"info.json":"file","source":{"source_forti.conf":"file","source_sso.conf":"file","source_tennant.conf":"file"}}`+"\n",
		buf.String())
}

func TestYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, YAML(&buf, confTree(t), false))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, Structured(confTree(t)), decoded)
	assert.Contains(t, buf.String(), "source:\n  - source_forti.conf: file\n")
}

func TestListing(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Listing(&buf, confTree(t)))
	assert.Equal(t, strings.Join([]string{
		"[conf] (directory)",
		"[info.json] (file)",
		"[source] (directory)",
		"[source_sso.conf] (file)",
		"[source_forti.conf] (file)",
		"[source_tennant.conf] (file)",
	}, "\n")+"\n", buf.String())
}

func TestTree_Plain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Tree(&buf, confTree(t), false))
	assert.Equal(t, strings.Join([]string{
		"📁 conf (40kb)",
		"├── 📄 info.json (10kb)",
		"└── 📁 source (30kb)",
		"    ├── 📄 source_sso.conf (10kb)",
		"    ├── 📄 source_forti.conf (10kb)",
		"    └── 📄 source_tennant.conf (10kb)",
		"",
		"2 directories, 4 files, 40kb total",
	}, "\n")+"\n", buf.String())
}

func TestTree_NestedContinuation(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Tree(&buf, deepTree(t), false))
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, []string{
		"📁 root (12kb)",
		"├── 📁 a (11kb)",
		"│   ├── 📁 b (8kb)",
		"│   │   ├── 📄 shared.bin (3kb)",
		"│   │   └── 📄 b.txt (5kb)",
		"│   ├── 📁 empty (0kb)",
		"│   └── 📄 shared.bin (3kb)",
		"└── 📄 top.txt (1kb)",
	}, lines[:8])
}

func TestTree_Color(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Tree(&buf, confTree(t), true))
	out := buf.String()
	for _, name := range []string{"conf", "info.json", "source_tennant.conf", "2 directories"} {
		assert.Contains(t, out, name)
	}
}

func TestCollect(t *testing.T) {
	t.Parallel()

	root := deepTree(t)
	s := Collect(root)
	assert.Equal(t, Stats{Files: 4, Dirs: 4, TotalSize: 12, MaxDepth: 3}, s)
	assert.Equal(t, root.Size(), s.TotalSize, "size must equal the sum of every reachable file position")

	f := filesystem.MustFile("solo", 2, "")
	assert.Equal(t, Stats{Files: 1, TotalSize: 2}, Collect(f))
}

func TestWriteStats(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteStats(&buf, confTree(t)))
	assert.Equal(t, "2 directories, 4 files, 40kb total, depth 2\n", buf.String())
}
