// Package commands implements the geo-events command line front end.
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/klabast/wb-services/geo-events/internal/app"
)

// cli carries state shared by all subcommands of one invocation
type cli struct {
	configPath string
	dataDir    string
	backend    string
	verbose    bool
	now        string

	cfg *app.Config
	log *zap.Logger
	app *app.App
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "geo-events",
		Short: "Manage company events across geographic regions",
		Long: `geo-events lists geos, searches and filters their events, and creates,
edits or deletes individual events. State is kept locally and survives
between runs; the first run starts from demo data.`,
		SilenceUsage:       true,
		PersistentPreRunE:  c.setup,
		PersistentPostRunE: c.teardown,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", app.DefaultConfigFile, "path to YAML config")
	flags.StringVar(&c.dataDir, "data-dir", "", "directory holding persisted state (overrides config)")
	flags.StringVar(&c.backend, "backend", "", "storage backend: file, sqlite or memory (overrides config)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&c.now, "now", "", "evaluate time-relative filters at this RFC 3339 instant")

	root.AddCommand(
		c.geosCommand(),
		c.listCommand(),
		c.showCommand(),
		c.addCommand(),
		c.updateCommand(),
		c.deleteCommand(),
		c.exportCommand(),
		c.resetCommand(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := app.LoadConfig(c.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.dataDir != "" {
		cfg.Storage.Dir = c.dataDir
	}
	if c.backend != "" {
		cfg.Storage.Backend = c.backend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	c.log, err = app.NewLogger(cfg.Log, c.verbose)
	if err != nil {
		return err
	}

	c.app, err = app.Open(cfg, c.log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	c.log.Debug("store ready",
		zap.String("backend", cfg.Storage.Backend), zap.String("dir", cfg.Storage.Dir))
	return nil
}

func (c *cli) teardown(cmd *cobra.Command, args []string) error {
	var err error
	if c.app != nil {
		err = c.app.Close()
	}
	if c.log != nil {
		_ = c.log.Sync()
	}
	return err
}

// clock returns the evaluation instant for time-relative filters
func (c *cli) clock() (time.Time, error) {
	loc, err := c.cfg.Location()
	if err != nil {
		return time.Time{}, err
	}
	if c.now == "" {
		return time.Now().In(loc), nil
	}
	t, err := time.Parse(time.RFC3339, c.now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now: %w", err)
	}
	return t.In(loc), nil
}
