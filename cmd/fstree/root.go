package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brettbedarf/fstree"
	"github.com/brettbedarf/fstree/config"
	"github.com/brettbedarf/fstree/definition"
	"github.com/brettbedarf/fstree/internal/util"
)

// cli holds the state shared by every command of one invocation
type cli struct {
	configPath string
	verbose    int
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	rootCmd := &cobra.Command{
		Use:   "fstree",
		Short: "Build, print and mount file trees",
		Long: `fstree loads a tree of directories and sized files from a JSON or YAML
definition document, then prints it, exports it or mounts it read-only.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file path (.yaml, .yml or .json)")
	rootCmd.PersistentFlags().IntVarP(&c.verbose, "verbose", "v", config.InfoVerbose,
		"log verbosity level between 1 (error) and 5 (trace)")

	rootCmd.AddCommand(
		c.printCmd(),
		c.exportCmd(),
		c.sizeCmd(),
		c.statsCmd(),
		c.formatsCmd(),
		c.mountCmd(),
	)
	return rootCmd
}

// setup loads the config and initializes logging before any command runs.
// An explicit --verbose wins over the config file.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg := config.NewDefaultConfig()
	if c.configPath != "" {
		var err error
		if cfg, err = config.NewConfigFromFile(c.configPath); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if c.configPath == "" || cmd.Flags().Changed("verbose") {
		cfg.LogLvl = util.LevelFromVerbosity(c.verbose)
	}
	c.cfg = cfg

	util.InitializeLogger(cfg.LogLvl, cmd.ErrOrStderr())
	logger := util.GetLogger("main")
	logger.Debug().Str("command", cmd.Name()).Str("config", c.configPath).Msg("fstree initializing")
	return nil
}

func loadTree(path string) (fstree.Node, error) {
	logger := util.GetLogger("main")
	tree, err := definition.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("definition", path).Str("root", tree.Root.Name()).
		Int("nodes", len(tree.ByID)).Msg("Tree loaded")
	return tree.Root, nil
}
