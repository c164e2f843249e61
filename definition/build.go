package definition

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/brettbedarf/fstree"
	"github.com/brettbedarf/fstree/filesystem"
	"github.com/brettbedarf/fstree/internal/util"
)

// Tree is a built document: its root and every node by uuid.
type Tree struct {
	Root fstree.Node
	ByID map[uuid.UUID]fstree.Node
}

// Build creates the tree described by a nested document. Children are
// attached with [filesystem.Dir.AddChecked] so refs cannot introduce cycles.
func Build(def *NodeDef) (*Tree, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDefinition)
	}
	if def.Ref != nil {
		return nil, fmt.Errorf("%w: root cannot be a ref", ErrInvalidDefinition)
	}
	b := &builder{tree: &Tree{ByID: make(map[uuid.UUID]fstree.Node)}}
	root, err := b.build(def, "")
	if err != nil {
		return nil, err
	}
	b.tree.Root = root
	return b.tree, nil
}

type builder struct {
	tree *Tree
}

func (b *builder) build(def *NodeDef, parentPath string) (fstree.Node, error) {
	p := path.Join(parentPath, def.Name)
	if def.Ref != nil {
		return b.resolve(def, parentPath)
	}

	id, err := b.identity(def.UUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}

	typ := def.Type
	if typ == "" {
		typ = FileNodeType
		if def.Children != nil {
			typ = DirNodeType
		}
	}

	var node fstree.Node
	switch typ {
	case FileNodeType:
		if len(def.Children) > 0 {
			return nil, fmt.Errorf("%s: %w: file cannot have children", p, ErrInvalidDefinition)
		}
		f, err := filesystem.NewFile(def.Name, util.ValueOrDefault(def.Size, 0), util.ValueOrDefault(def.Kind, fstree.FileKind))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		node = f
	case DirNodeType:
		if def.Size != nil {
			return nil, fmt.Errorf("%s: %w: dir size is computed from its children", p, ErrInvalidDefinition)
		}
		d, err := filesystem.NewDir(def.Name, util.ValueOrDefault(def.Kind, fstree.DirKind))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		// registered before its children so they may ref it; AddChecked
		// rejects the resulting cycle
		b.tree.ByID[id] = d
		for i, childDef := range def.Children {
			if childDef == nil {
				return nil, fmt.Errorf("%s: %w: child %d is empty", p, ErrInvalidDefinition, i)
			}
			child, err := b.build(childDef, p)
			if err != nil {
				return nil, err
			}
			if err := d.AddChecked(child); err != nil {
				return nil, fmt.Errorf("%s: %w", p, err)
			}
		}
		node = d
	default:
		return nil, fmt.Errorf("%s: %w: unknown node type %q", p, ErrInvalidDefinition, typ)
	}

	b.tree.ByID[id] = node
	return node, nil
}

// resolve returns the earlier node a ref def points to
func (b *builder) resolve(def *NodeDef, parentPath string) (fstree.Node, error) {
	if def.Name != "" || def.Type != "" || def.Kind != nil || def.Size != nil || def.UUID != nil || def.Children != nil {
		return nil, fmt.Errorf("%s: %w: ref %q cannot set other fields", parentPath, ErrInvalidDefinition, *def.Ref)
	}
	id, err := uuid.Parse(*def.Ref)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: ref %q: %v", parentPath, ErrInvalidDefinition, *def.Ref, err)
	}
	node, ok := b.tree.ByID[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w: %s", parentPath, ErrUnknownRef, id)
	}
	return node, nil
}

// identity parses a declared uuid or allocates a new one
func (b *builder) identity(raw *string) (uuid.UUID, error) {
	if raw == nil {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: uuid %q: %v", ErrInvalidDefinition, *raw, err)
	}
	if _, exists := b.tree.ByID[id]; exists {
		return uuid.Nil, fmt.Errorf("%w: duplicate uuid %s", ErrInvalidDefinition, id)
	}
	return id, nil
}

// BuildPaths creates the tree described by a path document. The first
// segment of every path must name the same root. Like `mkdir -p`, missing
// directories are created and existing ones reused; a file path that already
// exists is an error.
func BuildPaths(entries []*PathDef) (*Tree, error) {
	tree := &Tree{ByID: make(map[uuid.UUID]fstree.Node)}
	dirs := make(map[string]*filesystem.Dir) // by full path
	files := make(map[string]bool)           // by full path

	var rootName string
	for i, e := range entries {
		if e == nil {
			return nil, fmt.Errorf("%w: entry %d is empty", ErrInvalidDefinition, i)
		}
		isDir := e.Type == DirNodeType || strings.HasSuffix(e.Path, "/")
		if e.Type != "" && e.Type != DirNodeType && e.Type != FileNodeType {
			return nil, fmt.Errorf("%s: %w: unknown node type %q", e.Path, ErrInvalidDefinition, e.Type)
		}
		if e.Type == FileNodeType && strings.HasSuffix(e.Path, "/") {
			return nil, fmt.Errorf("%s: %w: file path ends with a slash", e.Path, ErrInvalidDefinition)
		}
		segments := strings.Split(strings.Trim(e.Path, "/"), "/")
		if segments[0] == "" {
			return nil, fmt.Errorf("entry %d: %w: empty path", i, fstree.ErrInvalidConstruction)
		}
		if rootName == "" {
			rootName = segments[0]
		} else if segments[0] != rootName {
			return nil, fmt.Errorf("%s: %w: path is outside root %q", e.Path, ErrInvalidDefinition, rootName)
		}
		if isDir && e.Size != nil {
			return nil, fmt.Errorf("%s: %w: dir size is computed from its children", e.Path, ErrInvalidDefinition)
		}

		dirSegments := segments
		if !isDir {
			if len(segments) == 1 {
				return nil, fmt.Errorf("%s: %w: root must be a directory", e.Path, ErrInvalidDefinition)
			}
			dirSegments = segments[:len(segments)-1]
		}
		parent, err := ensureDirs(tree, dirs, files, dirSegments, e.Kind, isDir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Path, err)
		}
		if isDir {
			continue
		}

		full := strings.Join(segments, "/")
		if files[full] || dirs[full] != nil {
			return nil, fmt.Errorf("%s: %w: node already exists at path", e.Path, ErrInvalidDefinition)
		}
		f, err := filesystem.NewFile(segments[len(segments)-1], util.ValueOrDefault(e.Size, 0), util.ValueOrDefault(e.Kind, fstree.FileKind))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Path, err)
		}
		if err := parent.Add(f); err != nil {
			return nil, fmt.Errorf("%s: %w", e.Path, err)
		}
		files[full] = true
		tree.ByID[uuid.New()] = f
	}

	if rootName == "" {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDefinition)
	}
	tree.Root = dirs[rootName]
	return tree, nil
}

// ensureDirs walks segments creating any missing directory and returns the
// last one. kind applies to the last directory when leafKind is set.
func ensureDirs(tree *Tree, dirs map[string]*filesystem.Dir, files map[string]bool,
	segments []string, kind *string, leafKind bool,
) (*filesystem.Dir, error) {
	var cur *filesystem.Dir
	for i, name := range segments {
		p := strings.Join(segments[:i+1], "/")
		if files[p] {
			return nil, fmt.Errorf("%w: %q is a file", ErrInvalidDefinition, p)
		}
		if d, ok := dirs[p]; ok {
			cur = d
			continue
		}
		dirKind := fstree.DirKind
		if leafKind && i == len(segments)-1 {
			dirKind = util.ValueOrDefault(kind, fstree.DirKind)
		}
		d, err := filesystem.NewDir(name, dirKind)
		if err != nil {
			return nil, err
		}
		if cur != nil {
			if err := cur.Add(d); err != nil {
				return nil, err
			}
		}
		dirs[p] = d
		tree.ByID[uuid.New()] = d
		cur = d
	}
	return cur, nil
}
