package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/go-epiphany/internal/report"
	"github.com/pable/go-epiphany/internal/stats"
)

var popularitySide string

var popularityCmd = &cobra.Command{
	Use:   "popularity",
	Short: "Identity share of records per month",
	Args:  cobra.NoArgs,
	RunE:  runPopularity,
}

func init() {
	popularityCmd.Flags().StringVar(&popularitySide, "side", "corp", "corp or runner")
}

func runPopularity(cmd *cobra.Command, _ []string) error {
	side, err := parseSide(popularitySide)
	if err != nil {
		return err
	}
	_, res, err := loadCorpus()
	if err != nil {
		return err
	}
	rows := stats.PopularityByMonth(res.Flattened, side)
	out := cmd.OutOrStdout()
	report.PrintPopularity(out, side, rows)
	cMuted.Fprintln(out, "Faction colours:")
	report.PrintFactionLegend(out, rows)
	return nil
}
