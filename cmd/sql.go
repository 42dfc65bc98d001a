package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-epiphany/internal/report"
	"github.com/pable/go-epiphany/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a SQL query over the aggregated tables",
	Long: `Runs the pipeline over the manifest, loads the results into an in-memory
SQLite database and runs an arbitrary query against it. Nothing is written
to disk.

Schema overview:
  players(event, player_id, name, rank, corp_identity, corp_faction,
    corp_resolved, runner_identity, runner_faction, runner_resolved,
    tournament_name)
  flattened_matches(seq, event, date, ym, tbl, round, player_id,
    runner_score, corp_score, combined_score, intentional_draw, two_for_one,
    elimination_game, runner_win, corp_win, runner_play, corp_play, name,
    rank, corp_identity, corp_faction, runner_identity, runner_faction)
  paired_matches(seq, event, date, ym, round, tbl, corp, corp_faction,
    runner, runner_faction, corp_wins, runner_wins, corp_player, corp_rank,
    runner_player, runner_rank)

Columns of unjoined flattened records (no roster entry) are NULL.

Example:
  epiphany sql "SELECT corp, COUNT(*) FROM paired_matches GROUP BY corp"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	_, res, err := loadCorpus()
	if err != nil {
		return err
	}
	db, err := storage.Load(res)
	if err != nil {
		return err
	}
	defer db.Close()

	counts := make([]string, 0, len(storage.Tables))
	for _, table := range storage.Tables {
		n, err := db.CountRows(table)
		if err != nil {
			return err
		}
		counts = append(counts, fmt.Sprintf("%s=%d", table, n))
	}
	cMuted.Fprintf(cmd.ErrOrStderr(), "loaded %s\n", strings.Join(counts, " "))

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	report.PrintQueryResult(cmd.OutOrStdout(), cols, rows)
	return nil
}
