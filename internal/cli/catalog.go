package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewCatalogCmd groups catalog inspection commands.
func NewCatalogCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the assessment catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available assessments",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			banks, err := loadCatalog(cfg, logger)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tQUESTIONS\tWEIGHTS (P/T/W)\tYES/MAYBE\tTITLE")
			for _, a := range banks.List() {
				wt, th := a.EffectiveWeights(), a.EffectiveThresholds()
				fmt.Fprintf(w, "%s\t%d\t%.2f/%.2f/%.2f\t%d/%d\t%s\n",
					a.ID, len(a.Questions), wt.Psychological, wt.Technical, wt.Wiscar, th.Yes, th.Maybe, a.Title)
			}
			return w.Flush()
		},
	})
	return cmd
}
