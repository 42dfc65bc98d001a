package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/go-epiphany/internal/report"
	"github.com/pable/go-epiphany/internal/stats"
)

var (
	matchupsMinGames int
	matchupsList     bool
)

var matchupsCmd = &cobra.Command{
	Use:   "matchups",
	Short: "Corp vs runner identity results from paired records",
	Long: `Groups paired records by (corp identity, runner identity) and prints the
corp win rate of each pairing as a matrix. Only matchups with more than
--min-games games are shown in the matrix.`,
	Args: cobra.NoArgs,
	RunE: runMatchups,
}

func init() {
	matchupsCmd.Flags().IntVar(&matchupsMinGames, "min-games", 5, "hide matchups with this many games or fewer")
	matchupsCmd.Flags().BoolVar(&matchupsList, "list", false, "print a flat list instead of a matrix")
}

func runMatchups(cmd *cobra.Command, _ []string) error {
	_, res, err := loadCorpus()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	matchups := stats.PairedWinRate(res.Paired)
	if matchupsList {
		report.PrintMatchups(out, matchups)
		return nil
	}
	report.PrintMatchupMatrix(out, stats.NewMatchupMatrix(matchups, matchupsMinGames))
	return nil
}
