// Package cli wires the logogrip commands: the interactive gallery and the
// search, list and fetch subcommands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"logogrip/internal/catalog"
	"logogrip/internal/config"
	"logogrip/internal/domain"
	"logogrip/internal/logging"
)

type app struct {
	configPath string
	manifest   string
	verbose    bool

	cfg       *config.Config
	configSvc config.ConfigService
	logger    *zap.Logger
	printer   *Printer
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "logogrip",
		Short: "Browse and search car manufacturer logos",
		Long: `logogrip shows a logo manifest as a searchable gallery in the terminal.

Example usage:
  logogrip                          # browse logos.json in the current directory
  logogrip --manifest https://example.com/logos.json
  logogrip search volkswagon        # typo tolerant search
  logogrip list                     # print every logo
  logogrip fetch ./logos            # rebuild a manifest from carlogos.org`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runBrowse,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default is "+config.FileName+")")
	root.PersistentFlags().StringVarP(&a.manifest, "manifest", "m", "", "manifest path or URL (overrides catalog.manifest)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.newSearchCommand(),
		a.newListCommand(),
		a.newFetchCommand(),
	)
	return root
}

// Execute runs the root command and returns the process exit code
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		NewPrinter(os.Stdout, os.Stderr).Error("%v", err)
		return 1
	}
	return 0
}

// init loads configuration and the logger before any command runs
func (a *app) init(cmd *cobra.Command) error {
	a.printer = NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
	a.configSvc = config.NewConfigService()

	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = a.configSvc.LoadFromPath(a.configPath)
	} else {
		cfg, err = a.configSvc.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.manifest != "" {
		cfg.Catalog.Manifest = a.manifest
	}
	a.cfg = cfg

	a.logger, err = logging.New(logging.Options{
		File:    cfg.Logging.File,
		Level:   cfg.Logging.Level,
		Verbose: a.verbose,
	})
	if err != nil {
		return err
	}
	a.logger.Debug("configuration loaded",
		zap.String("manifest", cfg.Catalog.Manifest),
		zap.Float64("threshold", cfg.Search.Threshold),
		zap.Strings("keys", cfg.Search.Keys))
	return nil
}

// source opens the configured manifest
func (a *app) source() (catalog.Source, error) {
	return catalog.NewSource(a.cfg.Catalog.Manifest, catalog.SourceOptions{
		Timeout:   a.cfg.Catalog.Timeout.Std(),
		UserAgent: a.cfg.Catalog.UserAgent,
	})
}

// loadDataset reads the manifest once, outside of the catalog service
func (a *app) loadDataset(ctx context.Context) (*domain.Dataset, error) {
	src, err := a.source()
	if err != nil {
		return nil, err
	}
	ds, report, err := catalog.Load(ctx, src, catalog.NewNormalizer(a.logger))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", src.Origin(), err)
	}
	if n := len(report.Rejected); n > 0 {
		a.printer.Warning("%d of %d records in %s were skipped", n, report.Total, src.Origin())
	}
	return ds, nil
}
