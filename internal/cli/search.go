package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"logogrip/internal/domain"
	"logogrip/internal/search"
)

type searchResult struct {
	domain.Entity
	Score float64 `json:"score"`
}

func (a *app) newSearchCommand() *cobra.Command {
	var (
		threshold float64
		scores    bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the manifest from the command line",
		Long: `Search runs the gallery matcher against the manifest and prints the
matches, best first. Several arguments are joined into one query.

Examples:
  logogrip search volks
  logogrip search land rover --scores
  logogrip search bmw --threshold 0.1 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.cfg.SearchOptions()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("threshold") {
				if threshold < 0 || threshold > 1 {
					return fmt.Errorf("--threshold must be within [0,1], got %v", threshold)
				}
				opts.Threshold = threshold
			}

			ds, err := a.loadDataset(cmd.Context())
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			results := search.NewIndex(ds.Entities, opts).Results(query)

			if asJSON {
				out := make([]searchResult, len(results))
				for i, r := range results {
					out[i] = searchResult{Entity: r.Entity, Score: r.Score}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			if len(results) == 0 {
				a.printer.Warning("no logos match %q", query)
				return nil
			}

			headers := []string{"NAME", "SLUG"}
			if scores {
				headers = append(headers, "SCORE")
			}
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				row := []string{r.Entity.Name, r.Entity.Slug}
				if scores {
					row = append(row, strconv.FormatFloat(r.Score, 'f', 3, 64))
				}
				rows = append(rows, row)
			}
			return renderTable(cmd.OutOrStdout(), headers, rows)
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", search.DefaultThreshold, "match looseness, 0 exact to 1 anything")
	cmd.Flags().BoolVar(&scores, "scores", false, "show match scores (0 is exact)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
