package export

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/fstree"
)

// Structured returns the structured export of n: for a directory, a map from
// each child name to "file" (files) or a one-element list holding the child
// directory's own export. A file exports as {"name": <name>}.
//
// The list wrapping is kept for compatibility with existing consumers; see
// [Flat] for the unwrapped shape.
func Structured(n fstree.Node) any {
	return n.Export()
}

// Flat is like [Structured] but child directories map straight to their
// export without the one-element list.
func Flat(n fstree.Node) any {
	b := &flatBuilder{}
	// the builder never returns errors
	_ = n.Accept(b)
	return b.result
}

// flatBuilder assembles the flat export with a stack of open directory maps
type flatBuilder struct {
	stack  []map[string]any
	result any
}

func (b *flatBuilder) VisitFile(n fstree.Node) error {
	if len(b.stack) == 0 {
		b.result = n.Export()
		return nil
	}
	b.stack[len(b.stack)-1][n.Name()] = fstree.FileEntry
	return nil
}

func (b *flatBuilder) EnterDir(fstree.Node) error {
	b.stack = append(b.stack, map[string]any{})
	return nil
}

func (b *flatBuilder) LeaveDir(n fstree.Node) error {
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	if len(b.stack) == 0 {
		b.result = top
		return nil
	}
	b.stack[len(b.stack)-1][n.Name()] = top
	return nil
}

func value(n fstree.Node, flat bool) any {
	if flat {
		return Flat(n)
	}
	return Structured(n)
}

// JSON writes the structured (or flat) export of n as a single JSON line.
// Keys are sorted.
func JSON(w io.Writer, n fstree.Node, flat bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value(n, flat)); err != nil {
		return fmt.Errorf("failed to encode json export: %w", err)
	}
	return nil
}

// YAML writes the structured (or flat) export of n as a YAML document.
func YAML(w io.Writer, n fstree.Node, flat bool) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(value(n, flat)); err != nil {
		return fmt.Errorf("failed to encode yaml export: %w", err)
	}
	return enc.Close()
}
