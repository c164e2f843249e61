package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brettbedarf/fstree"
	"github.com/brettbedarf/fstree/export"
	"github.com/brettbedarf/fstree/internal/util"
	"github.com/brettbedarf/fstree/mount"
)

func (c *cli) printCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print <definition>",
		Short: "Print the tree with markers, indentation and sizes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadTree(args[0])
			if err != nil {
				return err
			}
			return export.NewPrinter(c.cfg).Print(cmd.OutOrStdout(), root)
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <definition>",
		Short: "Export the tree in a registered format",
		Long: `Export the tree in a registered format. Run "fstree formats" for the list.
The default format comes from the config (default_format).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = c.cfg.DefaultFormat
			}
			registry := export.NewDefaultRegistry(c.cfg)
			// fail on an unknown format before reading the definition
			if _, err := registry.Get(format); err != nil {
				return err
			}
			root, err := loadTree(args[0])
			if err != nil {
				return err
			}
			return registry.Export(cmd.OutOrStdout(), format, root)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "export format (default from config)")
	return cmd
}

func (c *cli) sizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "size <definition>",
		Short: "Print the total size of the tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadTree(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d%s\n", root.Size(), fstree.SizeUnit)
			return err
		},
	}
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <definition>",
		Short: "Print directory and file counts, total size and depth",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadTree(args[0])
			if err != nil {
				return err
			}
			return export.WriteStats(cmd.OutOrStdout(), root)
		},
	}
}

func (c *cli) formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the export formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range export.NewDefaultRegistry(c.cfg).Names() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (c *cli) mountCmd() *cobra.Command {
	var umount bool

	cmd := &cobra.Command{
		Use:   "mount <definition> <mountpoint>",
		Short: "Mount the tree as a read-only filesystem until interrupted",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := util.GetLogger("main")
			mnt := args[1]

			root, err := loadTree(args[0])
			if err != nil {
				return err
			}
			if umount {
				// ignore error if not already mounted
				exec.Command("fusermount", "-u", mnt).Run() // nolint:errcheck
			}

			srv := mount.New(c.cfg, root)
			if err := srv.Serve(mnt); err != nil {
				return fmt.Errorf("failed to mount filesystem: %w", err)
			}

			signalChan := make(chan os.Signal, 1)
			signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
			defer signal.Stop(signalChan)

			unmounted := make(chan struct{})
			go func() {
				srv.Wait()
				close(unmounted)
			}()

			select {
			case sig := <-signalChan:
				logger.Info().Str("signal", sig.String()).Msg("Received signal, unmounting filesystem")
			case <-unmounted:
				logger.Info().Msg("Filesystem unmounted externally")
				return nil
			}

			if err := srv.Unmount(); err != nil {
				return fmt.Errorf("failed to unmount filesystem: %w", err)
			}
			logger.Info().Msg("Filesystem unmounted successfully")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&umount, "umount", "u", false,
		"unmount the mountpoint first if needed; useful for debuggers that don't exit properly")
	return cmd
}
