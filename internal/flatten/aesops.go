package flatten

import (
	"github.com/pable/go-epiphany/internal/model"
	"github.com/pable/go-epiphany/internal/parser"
)

// Aesops flattens a format B export into exactly one corp row and one runner
// row per played table. Elimination scores are synthesized from winner_id;
// format B reports neither intentional draws nor two-for-one results.
func Aesops(t *parser.AesopsTournament, roster Roster) ([]model.FlattenedMatch, error) {
	ev, err := newEvent(&t.Header)
	if err != nil {
		return nil, err
	}

	var rows []model.FlattenedMatch
	for rnd, tables := range t.Rounds {
		for _, table := range tables {
			if table.IsBye() {
				continue
			}
			if !table.EliminationGame && table.RunnerScore.Int()+table.CorpScore.Int() == 0 {
				continue
			}

			corp := ev.row(table.TableNumber, rnd+1, table.CorpPlayer.PlayerID())
			corp.CorpPlay = 1
			corp.EliminationGame = table.EliminationGame

			runner := ev.row(table.TableNumber, rnd+1, table.RunnerPlayer.PlayerID())
			runner.RunnerPlay = 1
			runner.EliminationGame = table.EliminationGame

			if table.EliminationGame {
				if table.WinnerID == table.CorpPlayer {
					corp.CorpWin = 1
					corp.CorpScore = winScore
					corp.CombinedScore = winScore
				}
				if table.WinnerID == table.RunnerPlayer {
					runner.RunnerWin = 1
					runner.RunnerScore = winScore
					runner.CombinedScore = winScore
				}
			} else {
				corp.CorpScore = table.CorpScore.Int()
				corp.CombinedScore = corp.CorpScore
				corp.CorpWin = b2i(corp.CorpScore == winScore)

				runner.RunnerScore = table.RunnerScore.Int()
				runner.CombinedScore = runner.RunnerScore
				runner.RunnerWin = b2i(runner.RunnerScore == winScore)
			}

			rows = append(rows, corp, runner)
		}
	}

	join(rows, roster)
	return rows, nil
}
