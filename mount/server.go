// Package mount exposes a node tree as a read-only FUSE filesystem.
package mount

import (
	"errors"
	"time"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/brettbedarf/fstree"
	"github.com/brettbedarf/fstree/config"
	"github.com/brettbedarf/fstree/internal/util"
)

// cacheTimeout applies to entries and attributes; the tree never changes
// while mounted.
const cacheTimeout = time.Hour

// Server mounts a snapshot of a tree. Later mutations of the tree are not
// reflected in the mount.
type Server struct {
	cfg    *config.Config
	root   *rootNode
	server *fuse.Server
}

// New lays out root for mounting with cfg. A nil cfg uses the defaults.
func New(cfg *config.Config, root fstree.Node) *Server {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &Server{
		cfg:  cfg,
		root: &rootNode{dirNode{entry: layout(root)}},
	}
}

func (s *Server) options() *fs.Options {
	timeout := cacheTimeout
	opts := s.cfg.MountOptions
	return &fs.Options{
		EntryTimeout: &timeout,
		AttrTimeout:  &timeout,
		MountOptions: fuse.MountOptions{
			Name:   opts.Name,
			FsName: opts.FsName,
			Debug:  opts.Debug || s.cfg.LogLvl == util.TraceLevel,
			Logger: util.NewLogLogger("FuseServer", util.DebugLevel),
		},
	}
}

// Serve mounts the tree at mountPoint and returns once the mount is ready.
func (s *Server) Serve(mountPoint string) error {
	logger := util.GetLogger("Server.Serve")
	if s.server != nil {
		return errors.New("already mounted")
	}
	srv, err := fs.Mount(mountPoint, s.root, s.options())
	if err != nil {
		return err
	}
	s.server = srv
	logger.Info().Str("mountPoint", mountPoint).Str("root", s.root.entry.name).Msg("Mounted")
	return nil
}

// Wait blocks until the filesystem is unmounted.
func (s *Server) Wait() {
	if s.server != nil {
		s.server.Wait()
	}
}

// Unmount cleanly unmounts the filesystem.
func (s *Server) Unmount() error {
	if s.server == nil {
		return nil
	}
	return s.server.Unmount()
}
