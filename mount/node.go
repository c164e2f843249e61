package mount

import (
	"context"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/brettbedarf/fstree/internal/util"
)

const (
	dirPerm  = 0o555
	filePerm = 0o444
)

var _ fs.NodeOnAdder = (*rootNode)(nil)
var _ fs.NodeStatfser = (*rootNode)(nil)
var _ fs.NodeGetattrer = (*rootNode)(nil)
var _ fs.NodeGetattrer = (*dirNode)(nil)
var _ fs.NodeGetattrer = (*fileNode)(nil)
var _ fs.NodeOpener = (*fileNode)(nil)
var _ fs.NodeReader = (*fileNode)(nil)

// dirNode is a read-only directory. Its children are created up front by
// the root.
type dirNode struct {
	fs.Inode
	entry *entry
}

func (d *dirNode) Getattr(ctx context.Context, fh fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Attr.Mode = syscall.S_IFDIR | dirPerm
	out.Attr.Nlink = 2 + uint32(countDirs(d.entry))
	return 0
}

// rootNode is the mount root. The whole tree is materialized when the kernel
// adds it.
type rootNode struct {
	dirNode
}

func (r *rootNode) OnAdd(ctx context.Context) {
	logger := util.GetLogger("mount.OnAdd")
	inodes := populate(ctx, &r.Inode, r.entry, make(map[*fileInfo]*fs.Inode))
	logger.Debug().Str("root", r.entry.name).Int("inodes", inodes).Msg("Tree mounted")
}

// Statfs reports a read-only filesystem with no free space.
func (r *rootNode) Statfs(ctx context.Context, out *fuse.StatfsOut) syscall.Errno {
	out.Bsize = 1024
	out.NameLen = 255
	out.Files = uint64(countNodes(r.entry))
	out.Blocks = totalBytes(r.entry, make(map[*fileInfo]bool)) / 1024
	return 0
}

// populate creates the inodes below parent and returns how many were new.
// Positions of the same file share one inode.
func populate(ctx context.Context, parent *fs.Inode, e *entry, files map[*fileInfo]*fs.Inode) int {
	created := 0
	for _, c := range e.children {
		var ch *fs.Inode
		switch {
		case c.dir:
			ch = parent.NewPersistentInode(ctx, &dirNode{entry: c}, fs.StableAttr{Mode: syscall.S_IFDIR})
			created += 1 + populate(ctx, ch, c, files)
		case files[c.file] != nil:
			ch = files[c.file]
		default:
			ch = parent.NewPersistentInode(ctx, &fileNode{info: c.file}, fs.StableAttr{Mode: syscall.S_IFREG})
			files[c.file] = ch
			created++
		}
		parent.AddChild(c.name, ch, false)
	}
	return created
}

// fileNode is a read-only file whose content is size*1024 zero bytes.
type fileNode struct {
	fs.Inode
	info *fileInfo
}

func (f *fileNode) Getattr(ctx context.Context, fh fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Attr.Mode = syscall.S_IFREG | filePerm
	out.Attr.Size = f.info.size
	out.Attr.Blocks = (f.info.size + 511) / 512
	out.Attr.Nlink = f.info.links
	return 0
}

func (f *fileNode) Open(ctx context.Context, flags uint32) (fs.FileHandle, uint32, syscall.Errno) {
	if writable(flags) {
		return nil, 0, syscall.EROFS
	}
	return nil, fuse.FOPEN_KEEP_CACHE, 0
}

func (f *fileNode) Read(ctx context.Context, fh fs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	n := readSpan(f.info.size, off, len(dest))
	buf := dest[:n]
	clear(buf)
	return fuse.ReadResultData(buf), 0
}

func writable(flags uint32) bool {
	return flags&(syscall.O_WRONLY|syscall.O_RDWR|syscall.O_TRUNC|syscall.O_APPEND) != 0
}

// readSpan returns how many of n bytes requested at off lie within size
func readSpan(size uint64, off int64, n int) int {
	if off < 0 || uint64(off) >= size {
		return 0
	}
	return int(min(uint64(n), size-uint64(off)))
}

func countDirs(e *entry) int {
	count := 0
	for _, c := range e.children {
		if c.dir {
			count++
		}
	}
	return count
}

func countNodes(e *entry) int {
	count := 1
	for _, c := range e.children {
		count += countNodes(c)
	}
	return count
}

// totalBytes sums file sizes counting each shared file once
func totalBytes(e *entry, seen map[*fileInfo]bool) uint64 {
	if !e.dir {
		if seen[e.file] {
			return 0
		}
		seen[e.file] = true
		return e.file.size
	}
	var total uint64
	for _, c := range e.children {
		total += totalBytes(c, seen)
	}
	return total
}
