package export

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettbedarf/fstree"
	"github.com/brettbedarf/fstree/config"
)

func TestRegister_Single(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	called := false
	e := func(io.Writer, fstree.Node) error { called = true; return nil }

	assert.True(t, r.Register("custom", e))
	got, err := r.Get("custom")
	require.NoError(t, err)
	require.NoError(t, got(io.Discard, confTree(t)))
	assert.True(t, called)
}

func TestRegister_DuplicateKeepsFirst(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	first := func(w io.Writer, _ fstree.Node) error { _, err := io.WriteString(w, "first"); return err }
	second := func(w io.Writer, _ fstree.Node) error { _, err := io.WriteString(w, "second"); return err }

	assert.True(t, r.Register("x", first))
	assert.False(t, r.Register("x", second))

	var buf bytes.Buffer
	require.NoError(t, r.Export(&buf, "x", confTree(t)))
	assert.Equal(t, "first", buf.String())
}

func TestRegistry_UnknownFormat(t *testing.T) {
	t.Parallel()

	r := NewDefaultRegistry(nil)
	_, err := r.Get("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	err = r.Export(io.Discard, "xml", confTree(t))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestNewDefaultRegistry_Names(t *testing.T) {
	t.Parallel()

	r := NewDefaultRegistry(nil)
	assert.Equal(t, []string{
		JSONFormat, JSONFlatFormat, ListingFormat, PrettyFormat,
		StatsFormat, TreeFormat, YAMLFormat, YAMLFlatFormat,
	}, r.Names())
}

func TestNewDefaultRegistry_UsesConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewDefaultConfig()
	cfg.FlatExport = true
	cfg.DirMarker = "+"
	r := NewDefaultRegistry(cfg)

	var jsonOut, flatOut, prettyOut bytes.Buffer
	require.NoError(t, r.Export(&jsonOut, JSONFormat, confTree(t)))
	require.NoError(t, r.Export(&flatOut, JSONFlatFormat, confTree(t)))
	require.NoError(t, r.Export(&prettyOut, PrettyFormat, confTree(t)))

	assert.Equal(t, flatOut.String(), jsonOut.String(), "flat_export must switch the json format")
	assert.Contains(t, prettyOut.String(), "+conf (40kb)")
}

func TestNewDefaultRegistry_AllFormatsRender(t *testing.T) {
	t.Parallel()

	cfg := config.NewDefaultConfig()
	cfg.Color = false
	r := NewDefaultRegistry(cfg)
	for _, name := range r.Names() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, r.Export(&buf, name, confTree(t)))
			assert.NotEmpty(t, buf.String())
		})
	}
}

func TestRegister_Concurrent(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	r := NewRegistry()

	for i := range 100 {
		wg.Go(func() {
			name := fmt.Sprintf("format%d", i)
			assert.True(t, r.Register(name, Listing))
			_, err := r.Get(name)
			assert.NoError(t, err)
		})
	}
	wg.Wait()
	assert.Len(t, r.Names(), 100)
}
