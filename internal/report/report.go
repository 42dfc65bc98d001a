package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-epiphany/internal/model"
	"github.com/pable/go-epiphany/internal/stats"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// EventSummary is one line of the per-tournament overview.
type EventSummary struct {
	Prefix    string
	Source    model.Source
	Event     string
	Players   int
	Records   int
	Pairs     int
	Abandoned bool
}

// PrintEventSummary prints one row per tournament with its table sizes.
// Tournaments whose pairing stopped early are marked with "!".
func PrintEventSummary(w io.Writer, events []EventSummary) {
	table := newTable(w)
	table.Header(" ", "EVENT", "SOURCE", "PLAYERS", "RECORDS", "PAIRS")
	for _, e := range events {
		marker := " "
		if e.Abandoned {
			marker = "!"
		}
		table.Append(
			marker,
			e.Event,
			string(e.Source),
			strconv.Itoa(e.Players),
			strconv.Itoa(e.Records),
			strconv.Itoa(e.Pairs),
		)
	}
	table.Render()
}

// PrintPairedMatches prints up to limit paired records (all when limit <= 0).
func PrintPairedMatches(w io.Writer, pairs []model.PairedMatch, limit int) {
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	table := newTable(w)
	table.Header("EVENT", "YM", "RND", "TBL", "CORP", "RUNNER", "CORP_W", "RUNNER_W",
		"CORP_PLAYER", "C_RANK", "RUNNER_PLAYER", "R_RANK")
	for _, p := range pairs {
		table.Append(
			p.Event,
			p.YearMonth,
			strconv.Itoa(p.Round),
			strconv.Itoa(p.Table),
			p.Corp,
			p.Runner,
			strconv.Itoa(p.CorpWins),
			strconv.Itoa(p.RunnerWins),
			p.CorpPlayer,
			strconv.Itoa(p.CorpRank),
			p.RunnerPlayer,
			strconv.Itoa(p.RunnerRank),
		)
	}
	table.Render()
}

// PrintFlattenedMatches prints up to limit flattened records (all when limit <= 0).
func PrintFlattenedMatches(w io.Writer, rows []model.FlattenedMatch, limit int) {
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	table := newTable(w)
	table.Header("RND", "TBL", "ID", "NAME", "CORP", "RUNNER", "C_SCORE", "R_SCORE",
		"C_WIN", "R_WIN", "C_PLAY", "R_PLAY", "ELIM", "IDRAW", "2F1")
	for i := range rows {
		m := &rows[i]
		name := m.Name()
		if !m.Joined() {
			name = "—"
		}
		table.Append(
			strconv.Itoa(m.Round),
			strconv.Itoa(m.Table),
			string(m.PlayerID),
			name,
			m.CorpIdentity(),
			m.RunnerIdentity(),
			strconv.Itoa(m.CorpScore),
			strconv.Itoa(m.RunnerScore),
			strconv.Itoa(m.CorpWin),
			strconv.Itoa(m.RunnerWin),
			strconv.Itoa(m.CorpPlay),
			strconv.Itoa(m.RunnerPlay),
			yesNo(m.EliminationGame),
			yesNo(m.IntentionalDraw),
			yesNo(m.TwoForOne),
		)
	}
	table.Render()
}

// PrintWinRates prints identity win rates with a 95% Wilson interval.
func PrintWinRates(w io.Writer, side stats.Side, rates []stats.WinRate) {
	table := newTable(w)
	table.Header(sideHeader(side), "FACTION", "W", "PLAYED", "WIN%", "95% CI", "FLAG")
	for _, r := range rates {
		table.Append(
			r.Identity,
			string(r.Faction),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Played),
			pct(r.Wins, r.Played),
			ci(r.Wins, r.Played),
			sampleFlag(r.Played),
		)
	}
	table.Render()
}

// PrintEventMonthWinRates prints per-player, per-event win rates.
func PrintEventMonthWinRates(w io.Writer, side stats.Side, rates []stats.EventMonthWinRate) {
	table := newTable(w)
	table.Header("EVENT", "YM", "PLAYER", sideHeader(side), "FACTION", "W", "PLAYED", "WIN%")
	for _, r := range rates {
		table.Append(
			r.Event,
			r.YearMonth,
			r.Name,
			r.Identity,
			string(r.Faction),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Played),
			pct(r.Wins, r.Played),
		)
	}
	table.Render()
}

// PrintPlayerResults prints grouped player results ordered by rank.
func PrintPlayerResults(w io.Writer, results []stats.PlayerResult) {
	table := newTable(w)
	table.Header("RANK", "PLAYER", "CORP", "RUNNER", "CORP_W", "CORP_P", "CORP%", "RUNNER_W", "RUNNER_P", "RUNNER%")
	for _, r := range results {
		table.Append(
			fmt.Sprintf("%.1f", r.Rank),
			r.Name,
			r.CorpIdentity,
			r.RunnerIdentity,
			strconv.Itoa(r.CorpWins),
			strconv.Itoa(r.CorpPlayed),
			pct(r.CorpWins, r.CorpPlayed),
			strconv.Itoa(r.RunnerWins),
			strconv.Itoa(r.RunnerPlayed),
			pct(r.RunnerWins, r.RunnerPlayed),
		)
	}
	table.Render()
}

// PrintMatchups prints the corp-vs-runner results as a flat list.
func PrintMatchups(w io.Writer, matchups []stats.Matchup) {
	table := newTable(w)
	table.Header("CORP", "RUNNER", "CORP_W", "GAMES", "CORP%", "95% CI")
	for _, m := range matchups {
		table.Append(
			m.Corp,
			m.Runner,
			strconv.Itoa(m.CorpWins),
			strconv.Itoa(m.Games),
			pct(m.CorpWins, m.Games),
			ci(m.CorpWins, m.Games),
		)
	}
	table.Render()
}

// PrintMatchupMatrix prints corp win percentages with corps as rows and
// runners as columns; each cell is "WIN% (GAMES)". Empty cells are "—".
func PrintMatchupMatrix(w io.Writer, mm *stats.MatchupMatrix) {
	if len(mm.Corps) == 0 {
		fmt.Fprintln(w, "(no matchups above the games threshold)")
		return
	}
	header := make([]any, 0, len(mm.Runners)+1)
	header = append(header, "CORP \\ RUNNER")
	for _, r := range mm.Runners {
		header = append(header, r)
	}
	table := newTable(w)
	table.Header(header...)
	for _, c := range mm.Corps {
		row := make([]any, 0, len(mm.Runners)+1)
		row = append(row, c)
		for _, r := range mm.Runners {
			cell := "—"
			if m, ok := mm.Cell(c, r); ok {
				cell = fmt.Sprintf("%s (%d)", pct(m.CorpWins, m.Games), m.Games)
			}
			row = append(row, cell)
		}
		table.Append(row...)
	}
	table.Render()
	fmt.Fprintln(w, "Cells are corp win rates; number in parentheses is games played.")
}

// PrintPopularity prints identity shares per month.
func PrintPopularity(w io.Writer, side stats.Side, rows []stats.Popularity) {
	table := newTable(w)
	table.Header("YM", sideHeader(side), "FACTION", "N", "MONTH_N", "SHARE")
	for _, p := range rows {
		table.Append(
			p.YearMonth,
			p.Identity,
			string(p.Faction),
			strconv.Itoa(p.Count),
			strconv.Itoa(p.MonthTotal),
			pct(p.Count, p.MonthTotal),
		)
	}
	table.Render()
}

// PrintIdentities prints catalog identities with their display names.
func PrintIdentities(w io.Writer, ids []model.Identity) {
	table := newTable(w)
	table.Header("TITLE", "SHORT", "FACTION")
	for _, id := range ids {
		table.Append(id.Title, id.ShortTitle, string(id.Faction))
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d identities)\n", len(ids))
}

// PrintFactionLegend prints the chart colour of each faction present in rows.
func PrintFactionLegend(w io.Writer, rows []stats.Popularity) {
	hues := model.FactionHues()
	seen := make(map[model.Faction]bool)
	var factions []string
	for _, p := range rows {
		if _, ok := hues[p.Faction]; ok && !seen[p.Faction] {
			seen[p.Faction] = true
			factions = append(factions, string(p.Faction))
		}
	}
	sort.Strings(factions)
	for _, f := range factions {
		fmt.Fprintf(w, "  %-20s %s\n", f, hues[model.Faction(f)])
	}
}

// PrintQueryResult prints the columns and rows of an ad-hoc query.
func PrintQueryResult(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := newTable(w)
	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)
	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}

func sideHeader(side stats.Side) string {
	if side == stats.Corp {
		return "CORP"
	}
	return "RUNNER"
}

func pct(num, den int) string {
	if den == 0 {
		return "—"
	}
	return fmt.Sprintf("%.0f%%", float64(num)/float64(den)*100)
}

func ci(num, den int) string {
	if den == 0 {
		return "—"
	}
	lo, hi := wilsonCI(num, den)
	return fmt.Sprintf("%.0f–%.0f%%", lo*100, hi*100)
}

func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return ""
}

func sampleFlag(n int) string {
	switch {
	case n >= 50:
		return "OK"
	case n >= 20:
		return "LOW"
	default:
		return "VERY_LOW"
	}
}

// wilsonCI computes the 95% Wilson score confidence interval for a proportion.
// Returns (lo, hi) as fractions in [0, 1].
func wilsonCI(hits, n int) (lo, hi float64) {
	if n == 0 {
		return 0, 1
	}
	z := 1.96
	p := float64(hits) / float64(n)
	nf := float64(n)
	denom := 1 + z*z/nf
	center := (p + z*z/(2*nf)) / denom
	half := z * math.Sqrt(p*(1-p)/nf+z*z/(4*nf*nf)) / denom
	return math.Max(0, center-half), math.Min(1, center+half)
}
