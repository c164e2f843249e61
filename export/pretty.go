// Package export holds stateless, read-only walkers that turn a node tree into
// an external representation. None of them mutate the tree or keep state
// between calls, and new formats are added here without touching node types.
package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/brettbedarf/fstree"
	"github.com/brettbedarf/fstree/config"
)

// Printer renders one line per node, pre-order:
//
//	<indent><marker><name> (<size>kb)
//
// where indent is Indent repeated once per depth level. The zero value is
// not useful; start from [DefaultPrinter] or [NewPrinter].
type Printer struct {
	DirMarker  string
	FileMarker string
	Indent     string // One depth level
}

// DefaultPrinter matches [fstree.Node.Render] byte for byte.
func DefaultPrinter() Printer {
	return Printer{
		DirMarker:  fstree.DirMarker,
		FileMarker: fstree.FileMarker,
		Indent:     fstree.IndentUnit,
	}
}

// NewPrinter builds a Printer from cfg.
func NewPrinter(cfg *config.Config) Printer {
	return Printer{
		DirMarker:  cfg.DirMarker,
		FileMarker: cfg.FileMarker,
		Indent:     cfg.Indent(),
	}
}

// Print writes n and its subtree to w. Directories print their aggregate
// size; empty directories still print their own line. The first write error
// aborts the walk.
func (p Printer) Print(w io.Writer, n fstree.Node) error {
	return n.Accept(&prettyVisitor{p: p, w: w})
}

// String renders n to a string with p.
func (p Printer) String(n fstree.Node) string {
	var sb strings.Builder
	// strings.Builder never fails
	_ = p.Print(&sb, n)
	return sb.String()
}

// Pretty writes n with the [DefaultPrinter].
func Pretty(w io.Writer, n fstree.Node) error {
	return DefaultPrinter().Print(w, n)
}

// PrettyString renders n with the [DefaultPrinter].
func PrettyString(n fstree.Node) string {
	return DefaultPrinter().String(n)
}

type prettyVisitor struct {
	p     Printer
	w     io.Writer
	depth int
}

func (v *prettyVisitor) line(marker string, n fstree.Node) error {
	_, err := io.WriteString(v.w, strings.Repeat(v.p.Indent, v.depth)+marker+n.Name()+
		" ("+strconv.FormatInt(n.Size(), 10)+fstree.SizeUnit+")\n")
	return err
}

func (v *prettyVisitor) VisitFile(n fstree.Node) error {
	return v.line(v.p.FileMarker, n)
}

func (v *prettyVisitor) EnterDir(n fstree.Node) error {
	if err := v.line(v.p.DirMarker, n); err != nil {
		return err
	}
	v.depth++
	return nil
}

func (v *prettyVisitor) LeaveDir(fstree.Node) error {
	v.depth--
	return nil
}
