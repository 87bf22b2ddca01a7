package cli

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"logogrip/internal/scraper"
)

func (a *app) newFetchCommand() *cobra.Command {
	var (
		baseURL     string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "fetch <target-dir>",
		Short: "Download manufacturer logos and rebuild the manifest",
		Long: `Fetch discovers manufacturers on the logo site, downloads each logo into
<target-dir>/images and merges them into <target-dir>/logos.json. Logos
already on disk with the same content are left alone, and existing manifest
entries are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			f := a.cfg.Fetch
			if cmd.Flags().Changed("base-url") {
				f.BaseURL = baseURL
			}
			if cmd.Flags().Changed("concurrency") {
				f.Concurrency = concurrency
			}

			s := scraper.New(scraper.Options{
				BaseURL:       f.BaseURL,
				TargetDir:     args[0],
				Concurrency:   f.Concurrency,
				RateInterval:  f.RateInterval.Std(),
				Retries:       f.Retries,
				UserAgent:     f.UserAgent,
				RespectRobots: f.RespectRobots,
				Logger:        a.logger,
			})

			a.printer.Info("Fetching logos from %s", f.BaseURL)
			res, err := s.Run(ctx)
			if err != nil {
				a.logger.Error("fetch failed", zap.Error(err))
				return err
			}

			a.printer.Success("%d manufacturers discovered", res.Discovered)
			a.printer.Success("%d logos downloaded, %d unchanged", len(res.Downloaded), len(res.Unchanged))
			if len(res.Missing) > 0 {
				a.printer.Warning("no logo for %d manufacturers: %s", len(res.Missing), strings.Join(res.Missing, ", "))
			}
			if res.ManifestWritten {
				a.printer.Success("wrote %s (%d entries)", res.ManifestPath, len(res.Entities))
			} else {
				a.printer.Info("%s is up to date", res.ManifestPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", scraper.DefaultBaseURL, "site to scrape")
	cmd.Flags().IntVar(&concurrency, "concurrency", 8, "parallel downloads")
	return cmd
}
