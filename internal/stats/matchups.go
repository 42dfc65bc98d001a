package stats

import (
	"sort"

	"github.com/pable/go-epiphany/internal/model"
)

// Matchup is the corp's record against one runner identity.
type Matchup struct {
	Corp     string
	Runner   string
	CorpWins int
	Games    int
}

// CorpRatio returns the corp's win ratio in this matchup.
func (m Matchup) CorpRatio() float64 { return ratio(m.CorpWins, m.Games) }

// PairedWinRate groups paired records by (corp, runner) identity.
func PairedWinRate(pairs []model.PairedMatch) []Matchup {
	type key struct{ corp, runner string }
	acc := make(map[key]*Matchup)
	for _, p := range pairs {
		k := key{p.Corp, p.Runner}
		m, ok := acc[k]
		if !ok {
			m = &Matchup{Corp: p.Corp, Runner: p.Runner}
			acc[k] = m
		}
		m.CorpWins += p.CorpWins
		m.Games++
	}

	out := make([]Matchup, 0, len(acc))
	for _, m := range acc {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Corp != out[j].Corp {
			return out[i].Corp < out[j].Corp
		}
		return out[i].Runner < out[j].Runner
	})
	return out
}

// MatchupMatrix pivots matchups into corp rows and runner columns.
type MatchupMatrix struct {
	Corps   []string
	Runners []string
	cells   map[[2]string]Matchup
}

// NewMatchupMatrix keeps matchups with more than minGames games.
func NewMatchupMatrix(matchups []Matchup, minGames int) *MatchupMatrix {
	mm := &MatchupMatrix{cells: make(map[[2]string]Matchup)}
	corps := make(map[string]bool)
	runners := make(map[string]bool)
	for _, m := range matchups {
		if m.Games <= minGames {
			continue
		}
		mm.cells[[2]string{m.Corp, m.Runner}] = m
		corps[m.Corp] = true
		runners[m.Runner] = true
	}
	mm.Corps = sortedKeys(corps)
	mm.Runners = sortedKeys(runners)
	return mm
}

// Cell returns the matchup of corp against runner, if it passed the filter.
func (mm *MatchupMatrix) Cell(corp, runner string) (Matchup, bool) {
	m, ok := mm.cells[[2]string{corp, runner}]
	return m, ok
}

// PlayerCorpMatches returns the pairs each named player played as corp, grouped by player in argument order.
func PlayerCorpMatches(pairs []model.PairedMatch, players ...string) []model.PairedMatch {
	var out []model.PairedMatch
	for _, name := range players {
		for _, p := range pairs {
			if p.CorpPlayer == name {
				out = append(out, p)
			}
		}
	}
	return out
}

// PlayerRunnerMatches returns the pairs each named player played as runner.
func PlayerRunnerMatches(pairs []model.PairedMatch, players ...string) []model.PairedMatch {
	var out []model.PairedMatch
	for _, name := range players {
		for _, p := range pairs {
			if p.RunnerPlayer == name {
				out = append(out, p)
			}
		}
	}
	return out
}

// PlayerMatches returns, for each named player, their corp games followed by their runner games.
func PlayerMatches(pairs []model.PairedMatch, players ...string) []model.PairedMatch {
	var out []model.PairedMatch
	for _, name := range players {
		out = append(out, PlayerCorpMatches(pairs, name)...)
		out = append(out, PlayerRunnerMatches(pairs, name)...)
	}
	return out
}

// Team is a named set of players.
type Team struct {
	Name    string
	Members []string
}

// Has reports whether player is a team member.
func (t Team) Has(player string) bool {
	for _, m := range t.Members {
		if m == player {
			return true
		}
	}
	return false
}

// TeamMatches returns pairs where either side is a team member.
func TeamMatches(pairs []model.PairedMatch, team Team) []model.PairedMatch {
	return filterPairs(pairs, func(p model.PairedMatch) bool {
		return team.Has(p.CorpPlayer) || team.Has(p.RunnerPlayer)
	})
}

// TeamCorpMatches returns pairs where a team member played corp.
func TeamCorpMatches(pairs []model.PairedMatch, team Team) []model.PairedMatch {
	return filterPairs(pairs, func(p model.PairedMatch) bool { return team.Has(p.CorpPlayer) })
}

// TeamRunnerMatches returns pairs where a team member played runner.
func TeamRunnerMatches(pairs []model.PairedMatch, team Team) []model.PairedMatch {
	return filterPairs(pairs, func(p model.PairedMatch) bool { return team.Has(p.RunnerPlayer) })
}

func filterPairs(pairs []model.PairedMatch, keep func(model.PairedMatch) bool) []model.PairedMatch {
	var out []model.PairedMatch
	for _, p := range pairs {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
