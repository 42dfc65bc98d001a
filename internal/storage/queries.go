package storage

import (
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/pable/go-epiphany/internal/model"
)

type playerRow struct {
	Event          string         `db:"event"`
	PlayerID       string         `db:"player_id"`
	Name           string         `db:"name"`
	Rank           int            `db:"rank"`
	CorpIdentity   string         `db:"corp_identity"`
	CorpFaction    string         `db:"corp_faction"`
	CorpResolved   int            `db:"corp_resolved"`
	RunnerIdentity string         `db:"runner_identity"`
	RunnerFaction  string         `db:"runner_faction"`
	RunnerResolved int            `db:"runner_resolved"`
	TournamentName sql.NullString `db:"tournament_name"`
}

type flattenedRow struct {
	Seq             int            `db:"seq"`
	Event           string         `db:"event"`
	Date            string         `db:"date"`
	YM              string         `db:"ym"`
	Table           int            `db:"tbl"`
	Round           int            `db:"round"`
	PlayerID        string         `db:"player_id"`
	RunnerScore     int            `db:"runner_score"`
	CorpScore       int            `db:"corp_score"`
	CombinedScore   int            `db:"combined_score"`
	IntentionalDraw int            `db:"intentional_draw"`
	TwoForOne       int            `db:"two_for_one"`
	EliminationGame int            `db:"elimination_game"`
	RunnerWin       int            `db:"runner_win"`
	CorpWin         int            `db:"corp_win"`
	RunnerPlay      int            `db:"runner_play"`
	CorpPlay        int            `db:"corp_play"`
	Name            sql.NullString `db:"name"`
	Rank            sql.NullInt64  `db:"rank"`
	CorpIdentity    sql.NullString `db:"corp_identity"`
	CorpFaction     sql.NullString `db:"corp_faction"`
	RunnerIdentity  sql.NullString `db:"runner_identity"`
	RunnerFaction   sql.NullString `db:"runner_faction"`
}

type pairedRow struct {
	Seq           int    `db:"seq"`
	Event         string `db:"event"`
	Date          string `db:"date"`
	YM            string `db:"ym"`
	Round         int    `db:"round"`
	Table         int    `db:"tbl"`
	Corp          string `db:"corp"`
	CorpFaction   string `db:"corp_faction"`
	Runner        string `db:"runner"`
	RunnerFaction string `db:"runner_faction"`
	CorpWins      int    `db:"corp_wins"`
	RunnerWins    int    `db:"runner_wins"`
	CorpPlayer    string `db:"corp_player"`
	CorpRank      int    `db:"corp_rank"`
	RunnerPlayer  string `db:"runner_player"`
	RunnerRank    int    `db:"runner_rank"`
}

const (
	insertPlayer = `
		INSERT INTO players(
			event, player_id, name, rank,
			corp_identity, corp_faction, corp_resolved,
			runner_identity, runner_faction, runner_resolved, tournament_name
		) VALUES (
			:event, :player_id, :name, :rank,
			:corp_identity, :corp_faction, :corp_resolved,
			:runner_identity, :runner_faction, :runner_resolved, :tournament_name
		)`

	insertFlattened = `
		INSERT INTO flattened_matches(
			seq, event, date, ym, tbl, round, player_id,
			runner_score, corp_score, combined_score,
			intentional_draw, two_for_one, elimination_game,
			runner_win, corp_win, runner_play, corp_play,
			name, rank, corp_identity, corp_faction, runner_identity, runner_faction
		) VALUES (
			:seq, :event, :date, :ym, :tbl, :round, :player_id,
			:runner_score, :corp_score, :combined_score,
			:intentional_draw, :two_for_one, :elimination_game,
			:runner_win, :corp_win, :runner_play, :corp_play,
			:name, :rank, :corp_identity, :corp_faction, :runner_identity, :runner_faction
		)`

	insertPaired = `
		INSERT INTO paired_matches(
			seq, event, date, ym, round, tbl,
			corp, corp_faction, runner, runner_faction,
			corp_wins, runner_wins, corp_player, corp_rank, runner_player, runner_rank
		) VALUES (
			:seq, :event, :date, :ym, :round, :tbl,
			:corp, :corp_faction, :runner, :runner_faction,
			:corp_wins, :runner_wins, :corp_player, :corp_rank, :runner_player, :runner_rank
		)`
)

// InsertPlayers inserts one event's roster in a transaction.
func (db *DB) InsertPlayers(event string, players []model.Player) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamed(insertPlayer)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		row := playerRow{
			Event:          event,
			PlayerID:       string(p.ID),
			Name:           p.Name,
			Rank:           p.Rank,
			CorpIdentity:   p.Corp.Name(),
			CorpFaction:    string(p.Corp.Faction()),
			CorpResolved:   boolInt(p.Corp.Resolved()),
			RunnerIdentity: p.Runner.Name(),
			RunnerFaction:  string(p.Runner.Faction()),
			RunnerResolved: boolInt(p.Runner.Resolved()),
		}
		if p.Claimed() {
			row.TournamentName = sql.NullString{String: *p.TournamentName, Valid: true}
		}
		if _, err := stmt.Exec(row); err != nil {
			return fmt.Errorf("insert player %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// InsertFlattened bulk-inserts flattened records in a transaction, keeping their order in seq.
func (db *DB) InsertFlattened(rows []model.FlattenedMatch) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamed(insertFlattened)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range rows {
		m := &rows[i]
		row := flattenedRow{
			Seq:             i,
			Event:           m.Event,
			Date:            m.Date.Format(time.DateOnly),
			YM:              m.YearMonth,
			Table:           m.Table,
			Round:           m.Round,
			PlayerID:        string(m.PlayerID),
			RunnerScore:     m.RunnerScore,
			CorpScore:       m.CorpScore,
			CombinedScore:   m.CombinedScore,
			IntentionalDraw: boolInt(m.IntentionalDraw),
			TwoForOne:       boolInt(m.TwoForOne),
			EliminationGame: boolInt(m.EliminationGame),
			RunnerWin:       m.RunnerWin,
			CorpWin:         m.CorpWin,
			RunnerPlay:      m.RunnerPlay,
			CorpPlay:        m.CorpPlay,
		}
		if p := m.Player; p != nil {
			row.Name = sql.NullString{String: p.Name, Valid: true}
			row.Rank = sql.NullInt64{Int64: int64(p.Rank), Valid: true}
			row.CorpIdentity = sql.NullString{String: p.Corp.Name(), Valid: true}
			row.CorpFaction = sql.NullString{String: string(p.Corp.Faction()), Valid: true}
			row.RunnerIdentity = sql.NullString{String: p.Runner.Name(), Valid: true}
			row.RunnerFaction = sql.NullString{String: string(p.Runner.Faction()), Valid: true}
		}
		if _, err := stmt.Exec(row); err != nil {
			return fmt.Errorf("insert flattened_matches row %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// InsertPaired bulk-inserts paired records in a transaction, keeping their order in seq.
func (db *DB) InsertPaired(pairs []model.PairedMatch) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamed(insertPaired)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range pairs {
		row := pairedRow{
			Seq:           i,
			Event:         p.Event,
			Date:          p.Date.Format(time.DateOnly),
			YM:            p.YearMonth,
			Round:         p.Round,
			Table:         p.Table,
			Corp:          p.Corp,
			CorpFaction:   string(p.CorpFaction),
			Runner:        p.Runner,
			RunnerFaction: string(p.RunnerFaction),
			CorpWins:      p.CorpWins,
			RunnerWins:    p.RunnerWins,
			CorpPlayer:    p.CorpPlayer,
			CorpRank:      p.CorpRank,
			RunnerPlayer:  p.RunnerPlayer,
			RunnerRank:    p.RunnerRank,
		}
		if _, err := stmt.Exec(row); err != nil {
			return fmt.Errorf("insert paired_matches row %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// CountRows returns the number of rows in one of the schema's tables.
func (db *DB) CountRows(table string) (int, error) {
	if !slices.Contains(Tables, table) {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int
	if err := db.conn.Get(&n, "SELECT COUNT(1) FROM "+table); err != nil {
		return 0, err
	}
	return n, nil
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
// NULL values are rendered as "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Queryx(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, nil, err
		}
		rec := make([]string, len(vals))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				rec[i] = "NULL"
			case []byte:
				rec[i] = string(x)
			default:
				rec[i] = fmt.Sprint(x)
			}
		}
		out = append(out, rec)
	}
	return cols, out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
