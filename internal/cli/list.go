package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func (a *app) newListCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every logo in the manifest",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadDataset(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(ds.Entities)
			}

			rows := make([][]string, 0, ds.Len())
			for _, e := range ds.Entities {
				rows = append(rows, []string{e.Name, e.Slug, e.Image.AssetPath()})
			}
			if err := renderTable(cmd.OutOrStdout(), []string{"NAME", "SLUG", "IMAGE"}, rows); err != nil {
				return err
			}
			a.printer.Info("%d logos in %s", ds.Len(), ds.Origin)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
