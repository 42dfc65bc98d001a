package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-epiphany/internal/report"
	"github.com/pable/go-epiphany/internal/stats"
)

var (
	winrateSide    string
	winrateByMonth bool
)

var winrateCmd = &cobra.Command{
	Use:   "winrate",
	Short: "Identity win rates across the manifest's tournaments",
	Long: `Groups flattened records by corp or runner identity and prints wins over
games played with a 95% Wilson interval. With --by-month the rows are split
per player, event and year-month instead.`,
	Args: cobra.NoArgs,
	RunE: runWinrate,
}

func init() {
	winrateCmd.Flags().StringVar(&winrateSide, "side", "corp", "corp or runner")
	winrateCmd.Flags().BoolVar(&winrateByMonth, "by-month", false, "group by event, year-month and player")
}

func runWinrate(cmd *cobra.Command, _ []string) error {
	side, err := parseSide(winrateSide)
	if err != nil {
		return err
	}
	_, res, err := loadCorpus()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if winrateByMonth {
		report.PrintEventMonthWinRates(out, side, stats.WinRateByEventMonth(res.Flattened, side))
		return nil
	}
	report.PrintWinRates(out, side, stats.IdentityWinRate(res.Flattened, side))
	cMuted.Fprintln(out, "FLAG: OK >= 50 games, LOW >= 20, VERY_LOW below.")
	return nil
}

func parseSide(s string) (stats.Side, error) {
	switch stats.Side(s) {
	case stats.Corp, stats.Runner:
		return stats.Side(s), nil
	}
	return "", fmt.Errorf("unknown side %q (want corp or runner)", s)
}
