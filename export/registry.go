package export

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/brettbedarf/fstree"
	"github.com/brettbedarf/fstree/config"
	"github.com/brettbedarf/fstree/internal/util"
)

// ErrUnknownFormat is returned when no exporter is registered under a name.
var ErrUnknownFormat = errors.New("unknown export format")

// Exporter writes a representation of n to w.
type Exporter func(w io.Writer, n fstree.Node) error

// Built-in format names
const (
	PrettyFormat   = "pretty"
	JSONFormat     = "json"
	JSONFlatFormat = "json-flat"
	YAMLFormat     = "yaml"
	YAMLFlatFormat = "yaml-flat"
	ListingFormat  = "listing"
	TreeFormat     = "tree"
	StatsFormat    = "stats"
)

// Registry maps format names to Exporters. Safe for concurrent use.
type Registry struct {
	exporters *xsync.Map[string, Exporter]
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{exporters: xsync.NewMap[string, Exporter]()}
}

// NewDefaultRegistry returns a Registry with every built-in format
// registered and configured from cfg. A nil cfg uses the defaults.
func NewDefaultRegistry(cfg *config.Config) *Registry {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	printer := NewPrinter(cfg)
	r := NewRegistry()
	r.Register(PrettyFormat, printer.Print)
	r.Register(JSONFormat, func(w io.Writer, n fstree.Node) error { return JSON(w, n, cfg.FlatExport) })
	r.Register(JSONFlatFormat, func(w io.Writer, n fstree.Node) error { return JSON(w, n, true) })
	r.Register(YAMLFormat, func(w io.Writer, n fstree.Node) error { return YAML(w, n, cfg.FlatExport) })
	r.Register(YAMLFlatFormat, func(w io.Writer, n fstree.Node) error { return YAML(w, n, true) })
	r.Register(ListingFormat, Listing)
	r.Register(TreeFormat, func(w io.Writer, n fstree.Node) error { return Tree(w, n, cfg.Color) })
	r.Register(StatsFormat, WriteStats)
	return r
}

// Register adds e under name. The first registration of a name wins; later
// ones are ignored and Register returns false.
func (r *Registry) Register(name string, e Exporter) bool {
	logger := util.GetLogger("Registry.Register")
	if _, loaded := r.exporters.LoadOrStore(name, e); loaded {
		logger.Debug().Str("format", name).Msg("Format already registered")
		return false
	}
	logger.Trace().Str("format", name).Msg("Registered format")
	return true
}

// Get returns the Exporter for name or an error wrapping [ErrUnknownFormat].
func (r *Registry) Get(name string) (Exporter, error) {
	if e, ok := r.exporters.Load(name); ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Names returns all registered format names sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.exporters.Size())
	r.exporters.Range(func(name string, _ Exporter) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

// Export writes n to w in the named format.
func (r *Registry) Export(w io.Writer, format string, n fstree.Node) error {
	e, err := r.Get(format)
	if err != nil {
		return err
	}
	return e(w, n)
}
