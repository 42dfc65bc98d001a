// Package stats computes the reporting tables over flattened and paired
// match records: win rates, popularity shares and matchup results.
//
// Every function returns rows in a deterministic order. Records without a
// roster join are left out of any grouping keyed on player or identity.
package stats

import (
	"sort"

	"github.com/pable/go-epiphany/internal/model"
)

// Side selects the corp or runner half of a record.
type Side string

const (
	Corp   Side = "corp"
	Runner Side = "runner"
)

// WinRate is one identity's wins over games played on one side.
type WinRate struct {
	Identity string
	Faction  model.Faction
	Wins     int
	Played   int
}

// Ratio returns Wins/Played, or 0 when nothing was played.
func (w WinRate) Ratio() float64 { return ratio(w.Wins, w.Played) }

// IdentityWinRate groups records by the side's identity and sums wins and
// plays. Rows are sorted by ratio, highest first.
func IdentityWinRate(rows []model.FlattenedMatch, side Side) []WinRate {
	acc := make(map[string]*WinRate)
	for i := range rows {
		m := &rows[i]
		if m.Player == nil {
			continue
		}
		ref := identityOf(m.Player, side)
		w, ok := acc[ref.Name()]
		if !ok {
			w = &WinRate{Identity: ref.Name(), Faction: ref.Faction()}
			acc[ref.Name()] = w
		}
		win, play := sideFlags(m, side)
		w.Wins += win
		w.Played += play
	}

	out := make([]WinRate, 0, len(acc))
	for _, k := range sortedKeys(acc) {
		out = append(out, *acc[k])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ratio() > out[j].Ratio() })
	return out
}

// CorpWinRate is IdentityWinRate for the corp side.
func CorpWinRate(rows []model.FlattenedMatch) []WinRate { return IdentityWinRate(rows, Corp) }

// RunnerWinRate is IdentityWinRate for the runner side.
func RunnerWinRate(rows []model.FlattenedMatch) []WinRate { return IdentityWinRate(rows, Runner) }

// EventMonthWinRate is one player's record with one identity at one event.
type EventMonthWinRate struct {
	Event     string
	YearMonth string
	PlayerID  model.PlayerID
	Name      string
	Identity  string
	Faction   model.Faction
	Wins      int
	Played    int
}

// Ratio returns Wins/Played, or 0 when nothing was played.
func (w EventMonthWinRate) Ratio() float64 { return ratio(w.Wins, w.Played) }

// WinRateByEventMonth groups records by (event, year-month, player, identity, faction).
func WinRateByEventMonth(rows []model.FlattenedMatch, side Side) []EventMonthWinRate {
	type key struct {
		event, ym string
		id        model.PlayerID
		name, ide string
		faction   model.Faction
	}
	acc := make(map[key]*EventMonthWinRate)
	var order []key
	for i := range rows {
		m := &rows[i]
		if m.Player == nil {
			continue
		}
		ref := identityOf(m.Player, side)
		k := key{m.Event, m.YearMonth, m.PlayerID, m.Player.Name, ref.Name(), ref.Faction()}
		w, ok := acc[k]
		if !ok {
			w = &EventMonthWinRate{
				Event: k.event, YearMonth: k.ym, PlayerID: k.id,
				Name: k.name, Identity: k.ide, Faction: k.faction,
			}
			acc[k] = w
			order = append(order, k)
		}
		win, play := sideFlags(m, side)
		w.Wins += win
		w.Played += play
	}

	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		switch {
		case a.event != b.event:
			return a.event < b.event
		case a.ym != b.ym:
			return a.ym < b.ym
		case a.id != b.id:
			return a.id.Less(b.id)
		case a.name != b.name:
			return a.name < b.name
		case a.ide != b.ide:
			return a.ide < b.ide
		}
		return a.faction < b.faction
	})
	out := make([]EventMonthWinRate, len(order))
	for i, k := range order {
		out[i] = *acc[k]
	}
	return out
}

// CorpWinRateByEventMonth is WinRateByEventMonth for the corp side.
func CorpWinRateByEventMonth(rows []model.FlattenedMatch) []EventMonthWinRate {
	return WinRateByEventMonth(rows, Corp)
}

// RunnerWinRateByEventMonth is WinRateByEventMonth for the runner side.
func RunnerWinRateByEventMonth(rows []model.FlattenedMatch) []EventMonthWinRate {
	return WinRateByEventMonth(rows, Runner)
}

// PlayerResult is one player's results with one corp/runner identity pairing.
type PlayerResult struct {
	Name           string
	CorpIdentity   string
	RunnerIdentity string
	Rank           float64 // mean rank across records
	CorpWins       int
	CorpPlayed     int
	RunnerWins     int
	RunnerPlayed   int
}

// CorpRatio returns corp wins over corp games.
func (p PlayerResult) CorpRatio() float64 { return ratio(p.CorpWins, p.CorpPlayed) }

// RunnerRatio returns runner wins over runner games.
func (p PlayerResult) RunnerRatio() float64 { return ratio(p.RunnerWins, p.RunnerPlayed) }

// GroupedPlayerResults groups records by (name, corp identity, runner identity),
// sorted by mean rank ascending.
func GroupedPlayerResults(rows []model.FlattenedMatch) []PlayerResult {
	type key struct{ name, corp, runner string }
	type accum struct {
		PlayerResult
		rankSum, n int
	}
	acc := make(map[key]*accum)
	for i := range rows {
		m := &rows[i]
		if m.Player == nil {
			continue
		}
		k := key{m.Player.Name, m.Player.Corp.Name(), m.Player.Runner.Name()}
		a, ok := acc[k]
		if !ok {
			a = &accum{PlayerResult: PlayerResult{Name: k.name, CorpIdentity: k.corp, RunnerIdentity: k.runner}}
			acc[k] = a
		}
		a.rankSum += m.Player.Rank
		a.n++
		a.CorpWins += m.CorpWin
		a.CorpPlayed += m.CorpPlay
		a.RunnerWins += m.RunnerWin
		a.RunnerPlayed += m.RunnerPlay
	}

	out := make([]PlayerResult, 0, len(acc))
	for _, a := range acc {
		a.Rank = float64(a.rankSum) / float64(a.n)
		out = append(out, a.PlayerResult)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.Rank != b.Rank:
			return a.Rank < b.Rank
		case a.Name != b.Name:
			return a.Name < b.Name
		case a.CorpIdentity != b.CorpIdentity:
			return a.CorpIdentity < b.CorpIdentity
		}
		return a.RunnerIdentity < b.RunnerIdentity
	})
	return out
}

// Popularity is the share of one identity among all records of a month.
type Popularity struct {
	YearMonth  string
	Identity   string
	Faction    model.Faction
	Count      int
	MonthTotal int
}

// Pct returns Count/MonthTotal.
func (p Popularity) Pct() float64 { return ratio(p.Count, p.MonthTotal) }

// PopularityByMonth counts records per (year-month, identity, faction) for one
// side and relates each count to the month total.
func PopularityByMonth(rows []model.FlattenedMatch, side Side) []Popularity {
	type key struct {
		ym, identity string
		faction      model.Faction
	}
	counts := make(map[key]int)
	totals := make(map[string]int)
	for i := range rows {
		m := &rows[i]
		if m.Player == nil {
			continue
		}
		ref := identityOf(m.Player, side)
		counts[key{m.YearMonth, ref.Name(), ref.Faction()}]++
		totals[m.YearMonth]++
	}

	out := make([]Popularity, 0, len(counts))
	for k, n := range counts {
		out = append(out, Popularity{
			YearMonth:  k.ym,
			Identity:   k.identity,
			Faction:    k.faction,
			Count:      n,
			MonthTotal: totals[k.ym],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.YearMonth != b.YearMonth:
			return a.YearMonth < b.YearMonth
		case a.Identity != b.Identity:
			return a.Identity < b.Identity
		}
		return a.Faction < b.Faction
	})
	return out
}

// CorpPopularityByMonth is PopularityByMonth for corp identities.
func CorpPopularityByMonth(rows []model.FlattenedMatch) []Popularity {
	return PopularityByMonth(rows, Corp)
}

// RunnerPopularityByMonth is PopularityByMonth for runner identities.
func RunnerPopularityByMonth(rows []model.FlattenedMatch) []Popularity {
	return PopularityByMonth(rows, Runner)
}

func identityOf(p *model.Player, side Side) model.IdentityRef {
	if side == Corp {
		return p.Corp
	}
	return p.Runner
}

func sideFlags(m *model.FlattenedMatch, side Side) (win, play int) {
	if side == Corp {
		return m.CorpWin, m.CorpPlay
	}
	return m.RunnerWin, m.RunnerPlay
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
