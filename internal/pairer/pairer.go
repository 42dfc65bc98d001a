// Package pairer rebuilds corp-versus-runner pairs from flattened per-player records.
package pairer

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/pable/go-epiphany/internal/model"
)

// ErrMissingPlayer is returned when a record in a pair has no roster join.
var ErrMissingPlayer = errors.New("record has no joined player")

// Result is the outcome of pairing one table of flattened records. When a pair
// fails to build, pairing stops: Pairs holds what was built before the failure,
// Abandoned is set and Err describes the failure.
type Result struct {
	Pairs     []model.PairedMatch
	Abandoned bool
	Err       error
}

type matchKey struct {
	event string
	round int
	table int
}

// Pair self-joins rows on (event, round, table) and keeps the combination
// whose left player id is strictly less than the right one, so each physical
// match is visited once whatever the row order. A left row with corp play
// yields a pair with the left player as corp; a left row with runner play
// independently yields one with the left player as runner.
func Pair(rows []model.FlattenedMatch) Result {
	byMatch := make(map[matchKey][]int)
	for i := range rows {
		k := matchKey{rows[i].Event, rows[i].Round, rows[i].Table}
		byMatch[k] = append(byMatch[k], i)
	}

	var res Result
	for i := range rows {
		left := &rows[i]
		for _, j := range byMatch[matchKey{left.Event, left.Round, left.Table}] {
			right := &rows[j]
			if !left.PlayerID.Less(right.PlayerID) {
				continue
			}
			if left.CorpPlay != 0 {
				p, err := build(left, right)
				if err != nil {
					return abandon(res, left, right, "corp", err)
				}
				res.Pairs = append(res.Pairs, p)
			}
			if left.RunnerPlay != 0 {
				p, err := build(right, left)
				if err != nil {
					return abandon(res, left, right, "runner", err)
				}
				res.Pairs = append(res.Pairs, p)
			}
		}
	}
	return res
}

func abandon(res Result, left, right *model.FlattenedMatch, side string, err error) Result {
	log.Error().
		Err(err).
		Str("event", left.Event).
		Int("round", left.Round).
		Int("table", left.Table).
		Str("left_id", string(left.PlayerID)).
		Str("right_id", string(right.PlayerID)).
		Int("left_corp_play", left.CorpPlay).
		Int("left_runner_play", left.RunnerPlay).
		Bool("left_joined", left.Joined()).
		Bool("right_joined", right.Joined()).
		Msgf("failed to create pairs for %s played left", side)
	res.Abandoned = true
	res.Err = fmt.Errorf("pair round %d table %d: %w", left.Round, left.Table, err)
	return res
}

// build assembles a pair with corp fields taken from one record and runner
// fields from the other. Both records share event, date, round and table.
func build(corp, runner *model.FlattenedMatch) (model.PairedMatch, error) {
	if corp.Player == nil {
		return model.PairedMatch{}, fmt.Errorf("corp id %s: %w", corp.PlayerID, ErrMissingPlayer)
	}
	if runner.Player == nil {
		return model.PairedMatch{}, fmt.Errorf("runner id %s: %w", runner.PlayerID, ErrMissingPlayer)
	}
	return model.PairedMatch{
		Event:         corp.Event,
		Date:          corp.Date,
		YearMonth:     corp.YearMonth,
		Round:         corp.Round,
		Table:         corp.Table,
		Corp:          corp.Player.Corp.Name(),
		CorpFaction:   corp.Player.Corp.Faction(),
		Runner:        runner.Player.Runner.Name(),
		RunnerFaction: runner.Player.Runner.Faction(),
		CorpWins:      corp.CorpWin,
		RunnerWins:    runner.RunnerWin,
		CorpPlayer:    corp.Player.Name,
		CorpRank:      corp.Player.Rank,
		RunnerPlayer:  runner.Player.Name,
		RunnerRank:    runner.Player.Rank,
	}, nil
}
