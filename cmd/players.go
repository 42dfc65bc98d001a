package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-epiphany/internal/report"
	"github.com/pable/go-epiphany/internal/stats"
)

var (
	playersMatch []string
	playersTeam  bool
	playersLimit int
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Per-player results, or the games of selected players",
	Long: `Without flags, prints each player's results grouped by their corp and
runner identities, ordered by final rank.

With --match NAME (repeatable) prints the paired games of those players,
corp games first. With --team prints the games of the team configured in
the manifest:

  team:
    name: Moonshine
    members: [alice, bob]`,
	Args: cobra.NoArgs,
	RunE: runPlayers,
}

func init() {
	playersCmd.Flags().StringSliceVar(&playersMatch, "match", nil, "player name to list games for (repeatable)")
	playersCmd.Flags().BoolVar(&playersTeam, "team", false, "list games of the manifest's team")
	playersCmd.Flags().IntVar(&playersLimit, "limit", 0, "number of records to print (0 = all)")
}

func runPlayers(cmd *cobra.Command, _ []string) error {
	m, res, err := loadCorpus()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch {
	case playersTeam:
		team, ok := m.TeamFilter()
		if !ok {
			return errors.New("manifest has no team configured")
		}
		cHeader.Fprintf(out, "%s as corp\n", team.Name)
		report.PrintPairedMatches(out, stats.TeamCorpMatches(res.Paired, team), playersLimit)
		fmt.Fprintln(out)
		cHeader.Fprintf(out, "%s as runner\n", team.Name)
		report.PrintPairedMatches(out, stats.TeamRunnerMatches(res.Paired, team), playersLimit)
	case len(playersMatch) > 0:
		report.PrintPairedMatches(out, stats.PlayerMatches(res.Paired, playersMatch...), playersLimit)
	default:
		report.PrintPlayerResults(out, stats.GroupedPlayerResults(res.Flattened))
	}
	return nil
}
