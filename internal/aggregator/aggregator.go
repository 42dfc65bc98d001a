package aggregator

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/pable/go-epiphany/internal/flatten"
	"github.com/pable/go-epiphany/internal/model"
	"github.com/pable/go-epiphany/internal/pairer"
	"github.com/pable/go-epiphany/internal/parser"
	"github.com/pable/go-epiphany/internal/roster"
)

// Source supplies raw tournament exports and name claims by file prefix.
type Source interface {
	Tournament(prefix string, source model.Source) ([]byte, error)
	Claims(prefix string) ([]parser.Claim, error)
}

// EventResult holds every intermediate table of one tournament.
type EventResult struct {
	Tournament model.Tournament
	Event      string
	Roster     *roster.Roster
	Flattened  []model.FlattenedMatch
	Pairing    pairer.Result
}

// Result is the union of all tournaments' flattened and paired tables, in
// tournament list order.
type Result struct {
	Events    []EventResult
	Flattened []model.FlattenedMatch
	Paired    []model.PairedMatch
}

// Abandoned returns the events whose pairing stopped early.
func (r *Result) Abandoned() []EventResult {
	var out []EventResult
	for _, e := range r.Events {
		if e.Pairing.Abandoned {
			out = append(out, e)
		}
	}
	return out
}

// Aggregate loads, resolves, flattens and pairs every tournament, then
// concatenates the per-tournament tables. An unsupported source tag on any
// tournament aborts the whole run before anything is loaded.
func Aggregate(src Source, cat roster.Catalog, tournaments []model.Tournament) (*Result, error) {
	if len(tournaments) == 0 {
		return nil, errors.New("no tournaments to aggregate")
	}
	for _, t := range tournaments {
		if !t.Source.Valid() {
			return nil, fmt.Errorf("%w %q for %s", flatten.ErrUnsupportedSource, t.Source, t.Prefix)
		}
	}

	res := &Result{Events: make([]EventResult, 0, len(tournaments))}
	for _, t := range tournaments {
		ev, err := Tournament(src, cat, t)
		if err != nil {
			return nil, err
		}
		res.Events = append(res.Events, *ev)
		res.Flattened = append(res.Flattened, ev.Flattened...)
		res.Paired = append(res.Paired, ev.Pairing.Pairs...)
	}
	return res, nil
}

// Tournament runs the pipeline for a single tournament.
func Tournament(src Source, cat roster.Catalog, t model.Tournament) (*EventResult, error) {
	data, err := src.Tournament(t.Prefix, t.Source)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", t.Prefix, err)
	}
	claims, err := src.Claims(t.Prefix)
	if err != nil {
		return nil, fmt.Errorf("load claims for %s: %w", t.Prefix, err)
	}
	header, err := parser.ParseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.Prefix, err)
	}

	players := roster.Resolve(cat, header.Players, claims)
	flat, err := flatten.Records(t.Source, data, players)
	if err != nil {
		return nil, fmt.Errorf("flatten %s: %w", t.Prefix, err)
	}
	pairing := pairer.Pair(flat)

	log.Debug().
		Str("tournament", t.Prefix).
		Str("source", string(t.Source)).
		Int("players", players.Len()).
		Int("records", len(flat)).
		Int("pairs", len(pairing.Pairs)).
		Bool("abandoned", pairing.Abandoned).
		Msg("processed tournament")

	return &EventResult{
		Tournament: t,
		Event:      header.Name,
		Roster:     players,
		Flattened:  flat,
		Pairing:    pairing,
	}, nil
}
