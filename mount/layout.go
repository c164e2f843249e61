package mount

import (
	"strings"

	"github.com/brettbedarf/fstree"
	"github.com/brettbedarf/fstree/internal/util"
)

// entry is one position in the mounted tree
type entry struct {
	name     string
	dir      bool
	file     *fileInfo // files only
	children []*entry
}

// fileInfo is shared by every position of the same file node, which the
// mount exposes as hard links to one inode.
type fileInfo struct {
	size  uint64 // bytes
	links uint32
}

type frame struct {
	e     *entry
	names map[string]struct{}
}

// layoutBuilder flattens a node tree into entries. Children with a name
// already taken in their directory, or a name the kernel cannot represent,
// are dropped along with their subtree; the first position wins.
type layoutBuilder struct {
	logger util.Logger
	stack  []*frame // nil frames mark skipped subtrees
	root   *entry
	files  map[fstree.Node]*fileInfo
}

func layout(root fstree.Node) *entry {
	b := &layoutBuilder{
		logger: util.GetLogger("mount.layout"),
		files:  make(map[fstree.Node]*fileInfo),
	}
	// the builder never fails
	_ = root.Accept(b)
	return b.root
}

// place appends a new entry for n under the current directory, or returns
// nil when n must be skipped
func (b *layoutBuilder) place(n fstree.Node, dir bool) *entry {
	parent := b.stack[len(b.stack)-1]
	if parent == nil {
		return nil
	}
	name := n.Name()
	if !validName(name) {
		b.logger.Warn().Str("dir", parent.e.name).Str("name", name).Msg("Skipping node with invalid name")
		return nil
	}
	if _, taken := parent.names[name]; taken {
		b.logger.Warn().Str("dir", parent.e.name).Str("name", name).Msg("Duplicate name, keeping first")
		return nil
	}
	parent.names[name] = struct{}{}
	e := &entry{name: name, dir: dir}
	parent.e.children = append(parent.e.children, e)
	return e
}

func (b *layoutBuilder) VisitFile(n fstree.Node) error {
	if len(b.stack) == 0 {
		// a lone file is mounted inside an unnamed root directory
		b.root = &entry{dir: true}
		b.stack = append(b.stack, &frame{e: b.root, names: map[string]struct{}{}})
		defer func() { b.stack = b.stack[:0] }()
	}
	e := b.place(n, false)
	if e == nil {
		return nil
	}
	info, ok := b.files[n]
	if !ok {
		info = &fileInfo{size: uint64(n.Size()) * 1024}
		b.files[n] = info
	}
	info.links++
	e.file = info
	return nil
}

func (b *layoutBuilder) EnterDir(n fstree.Node) error {
	if len(b.stack) == 0 {
		b.root = &entry{name: n.Name(), dir: true}
		b.stack = append(b.stack, &frame{e: b.root, names: map[string]struct{}{}})
		return nil
	}
	var f *frame
	if e := b.place(n, true); e != nil {
		f = &frame{e: e, names: map[string]struct{}{}}
	}
	b.stack = append(b.stack, f)
	return nil
}

func (b *layoutBuilder) LeaveDir(fstree.Node) error {
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

var _ fstree.Visitor = (*layoutBuilder)(nil)

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, "/\x00")
}
