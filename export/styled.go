package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brettbedarf/fstree"
)

// Style colors for the "tree" format
var (
	primaryColor = lipgloss.Color("#7571f9")
	mutedColor   = lipgloss.Color("#6c757d")
	fileColor    = lipgloss.Color("#ffffff")
)

// Tree renders n with box-drawing connectors, one node per line, followed by
// a blank line and a [Stats] footer:
//
//	📁 conf (40kb)
//	├── 📄 info.json (10kb)
//	└── 📁 source (30kb)
//	    └── 📄 source_sso.conf (10kb)
//
// With color set, directory names, file names and sizes are styled.
func Tree(w io.Writer, n fstree.Node, color bool) error {
	v := &treeVisitor{w: w, styles: newTreeStyles(color)}
	if err := n.Accept(v); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n"+v.styles.muted(v.stats.String())+"\n")
	return err
}

type treeStyles struct {
	dir   func(string) string
	file  func(string) string
	muted func(string) string
}

func newTreeStyles(color bool) treeStyles {
	if !color {
		plain := func(s string) string { return s }
		return treeStyles{dir: plain, file: plain, muted: plain}
	}
	dir := lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	file := lipgloss.NewStyle().Foreground(fileColor)
	muted := lipgloss.NewStyle().Foreground(mutedColor)
	return treeStyles{dir: dir.Render, file: file.Render, muted: muted.Render}
}

// treeFrame tracks one open directory
type treeFrame struct {
	remaining int  // Children not yet printed
	last      bool // Whether the directory itself was its parent's last child
}

type treeVisitor struct {
	w      io.Writer
	styles treeStyles
	frames []treeFrame
	stats  Stats
}

// prefix returns the connector prefix for the next node and whether that node
// is the last child of the current directory.
func (v *treeVisitor) prefix() (string, bool) {
	if len(v.frames) == 0 {
		return "", false
	}
	parent := &v.frames[len(v.frames)-1]
	parent.remaining--
	last := parent.remaining <= 0

	var sb strings.Builder
	// the root has no connector so its frame adds no column
	for _, f := range v.frames[1:] {
		if f.last {
			sb.WriteString("    ")
		} else {
			sb.WriteString("│   ")
		}
	}
	if last {
		sb.WriteString("└── ")
	} else {
		sb.WriteString("├── ")
	}
	return sb.String(), last
}

func (v *treeVisitor) line(prefix, icon, name string, size int64) error {
	sizeStr := v.styles.muted(" (" + strconv.FormatInt(size, 10) + fstree.SizeUnit + ")")
	_, err := io.WriteString(v.w, prefix+icon+" "+name+sizeStr+"\n")
	return err
}

func (v *treeVisitor) VisitFile(n fstree.Node) error {
	prefix, _ := v.prefix()
	v.stats.Files++
	v.stats.TotalSize += n.Size()
	return v.line(prefix, "📄", v.styles.file(n.Name()), n.Size())
}

func (v *treeVisitor) EnterDir(n fstree.Node) error {
	prefix, last := v.prefix()
	v.stats.Dirs++
	if err := v.line(prefix, "📁", v.styles.dir(n.Name()), n.Size()); err != nil {
		return err
	}
	v.frames = append(v.frames, treeFrame{remaining: len(n.Children()), last: last})
	return nil
}

func (v *treeVisitor) LeaveDir(fstree.Node) error {
	v.frames = v.frames[:len(v.frames)-1]
	return nil
}
