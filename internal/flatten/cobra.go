package flatten

import (
	"github.com/pable/go-epiphany/internal/model"
	"github.com/pable/go-epiphany/internal/parser"
)

// Cobra flattens a format A export. Byes, swiss tables with missing scores and
// swiss tables whose four scores sum to zero are skipped. Win and play flags
// are derived from each seat's role and winner fields, not from its scores,
// in elimination games.
func Cobra(t *parser.CobraTournament, roster Roster) ([]model.FlattenedMatch, error) {
	ev, err := newEvent(&t.Header)
	if err != nil {
		return nil, err
	}

	var rows []model.FlattenedMatch
	for rnd, tables := range t.Rounds {
		for _, table := range tables {
			if !keepCobraTable(table) {
				continue
			}
			for _, seat := range []parser.CobraSeat{table.Player1, table.Player2} {
				row := ev.row(table.Table, rnd+1, seat.ID.PlayerID())
				row.RunnerScore = seat.RunnerScore.Int()
				row.CorpScore = seat.CorpScore.Int()
				row.CombinedScore = seat.CombinedScore.Int()
				row.TwoForOne = table.TwoForOne
				row.IntentionalDraw = table.IntentionalDraw
				row.EliminationGame = table.EliminationGame
				row.Role = seat.Role
				row.Winner = seat.Won()
				rows = append(rows, row)
			}
		}
	}

	join(rows, roster)
	for i := range rows {
		applyCobraOutcome(&rows[i])
	}
	return rows, nil
}

func keepCobraTable(t parser.CobraTable) bool {
	p1, p2 := t.Player1, t.Player2
	if p1.ID == "" || p2.ID == "" {
		return false
	}
	if t.EliminationGame {
		return true
	}
	if !p1.RunnerScore.Valid || !p1.CorpScore.Valid || !p2.RunnerScore.Valid || !p2.CorpScore.Valid {
		return false
	}
	// zero-sum swiss tables carry no corp/runner win information
	return p1.RunnerScore.Value+p1.CorpScore.Value+p2.RunnerScore.Value+p2.CorpScore.Value != 0
}

// applyCobraOutcome sets the win and play flags of a format A row.
func applyCobraOutcome(m *model.FlattenedMatch) {
	m.CorpWin = b2i(CorpWon(m))
	m.RunnerWin = b2i(RunnerWon(m))
	m.CorpPlay = b2i(!m.EliminationGame || m.Role == "corp")
	m.RunnerPlay = b2i(!m.EliminationGame || m.Role == "runner")
}

// CorpWon reports whether a format A row is a corp win: the declared winner
// playing corp in an elimination game, or a corp score of 3 in swiss.
func CorpWon(m *model.FlattenedMatch) bool {
	if m.EliminationGame {
		return m.Role == "corp" && m.Winner
	}
	return m.CorpScore == winScore
}

// RunnerWon is the runner-side counterpart of CorpWon.
func RunnerWon(m *model.FlattenedMatch) bool {
	if m.EliminationGame {
		return m.Role == "runner" && m.Winner
	}
	return m.RunnerScore == winScore
}
