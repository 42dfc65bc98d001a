package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-epiphany/internal/model"
)

// mapRoster is a roster keyed by id.
type mapRoster map[model.PlayerID]*model.Player

func (r mapRoster) Lookup(id model.PlayerID) (*model.Player, bool) {
	p, ok := r[id]
	return p, ok
}

func player(id, name string) *model.Player {
	return &model.Player{
		ID:     model.PlayerID(id),
		Name:   name,
		Corp:   model.IdentityRef{Raw: name + " corp"},
		Runner: model.IdentityRef{Raw: name + " runner"},
	}
}

var cobraRoster = mapRoster{"1": player("1", "alice"), "2": player("2", "bob")}

func cobraExport(rounds string) []byte {
	return []byte(`{"name":"Test Open","date":"2023-11-19","players":[],"rounds":` + rounds + `}`)
}

func TestCobra_SwissWin(t *testing.T) {
	data := cobraExport(`[[{
		"table": 4,
		"player1": {"id": 1, "runnerScore": 0, "corpScore": 3, "combinedScore": 3},
		"player2": {"id": 2, "runnerScore": 0, "corpScore": 0, "combinedScore": 0},
		"twoForOne": false, "intentionalDraw": false, "eliminationGame": false
	}]]`)
	rows, err := Records(model.SourceCobra, data, cobraRoster)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	r1, r2 := rows[0], rows[1]
	assert.Equal(t, model.PlayerID("1"), r1.PlayerID)
	assert.Equal(t, model.PlayerID("2"), r2.PlayerID)
	assert.Equal(t, 1, r1.CorpWin)
	assert.Equal(t, 0, r2.CorpWin)
	assert.Equal(t, 0, r1.RunnerWin)
	assert.Equal(t, 0, r2.RunnerWin)

	for _, r := range rows {
		assert.Equal(t, "Test Open", r.Event)
		assert.Equal(t, "2023-11", r.YearMonth)
		assert.Equal(t, 4, r.Table)
		assert.Equal(t, 1, r.Round)
		assert.Equal(t, 1, r.CorpPlay, "swiss rows carry both play signals")
		assert.Equal(t, 1, r.RunnerPlay)
		assert.True(t, r.Joined())
	}
	assert.Equal(t, "alice", r1.Name())
}

func TestCobra_SkippedTables(t *testing.T) {
	data := cobraExport(`[[
		{"table": 1, "player1": {"id": 1, "runnerScore": 3, "corpScore": 3}, "player2": {"id": null}, "eliminationGame": false},
		{"table": 2, "player1": {"id": 1, "runnerScore": null, "corpScore": 3}, "player2": {"id": 2, "runnerScore": 0, "corpScore": 0}, "eliminationGame": false},
		{"table": 3, "player1": {"id": 1, "corpScore": 3}, "player2": {"id": 2, "runnerScore": 0, "corpScore": 0}, "eliminationGame": false},
		{"table": 4, "player1": {"id": 1, "runnerScore": 0, "corpScore": 0}, "player2": {"id": 2, "runnerScore": 0, "corpScore": 0}, "eliminationGame": false, "intentionalDraw": true}
	]]`)
	rows, err := Records(model.SourceCobra, data, cobraRoster)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCobra_Elimination(t *testing.T) {
	data := cobraExport(`[[], [{
		"table": 1,
		"player1": {"id": 1, "role": "runner", "winner": true, "runnerScore": null, "corpScore": null},
		"player2": {"id": 2, "role": "corp", "winner": false, "runnerScore": null, "corpScore": null},
		"eliminationGame": true
	}]]`)
	rows, err := Records(model.SourceCobra, data, cobraRoster)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	runner, corp := rows[0], rows[1]
	assert.Equal(t, 2, runner.Round)
	assert.Equal(t, 1, runner.RunnerWin)
	assert.Equal(t, 0, runner.CorpWin)
	assert.Equal(t, 1, runner.RunnerPlay)
	assert.Equal(t, 0, runner.CorpPlay)

	assert.Equal(t, 0, corp.CorpWin)
	assert.Equal(t, 0, corp.RunnerWin)
	assert.Equal(t, 1, corp.CorpPlay)
	assert.Equal(t, 0, corp.RunnerPlay)
	assert.Equal(t, 0, corp.CorpScore)
}

func TestCobra_EliminationIgnoresScores(t *testing.T) {
	data := cobraExport(`[[{
		"table": 1,
		"player1": {"id": 1, "role": "corp", "winner": false, "runnerScore": 0, "corpScore": 3},
		"player2": {"id": 2, "role": "runner", "winner": true, "runnerScore": 3, "corpScore": 0},
		"eliminationGame": true
	}]]`)
	rows, err := Records(model.SourceCobra, data, cobraRoster)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].CorpWin, "winner flag, not score, decides elimination games")
	assert.Equal(t, 1, rows[1].RunnerWin)
}

func TestCobra_UnjoinedRow(t *testing.T) {
	data := cobraExport(`[[{
		"table": 1,
		"player1": {"id": 1, "runnerScore": 3, "corpScore": 0},
		"player2": {"id": 7, "runnerScore": 0, "corpScore": 3},
		"eliminationGame": false
	}]]`)
	rows, err := Records(model.SourceCobra, data, cobraRoster)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Joined())
	assert.False(t, rows[1].Joined())
	assert.Equal(t, "", rows[1].Name())
	assert.Equal(t, 1, rows[1].CorpWin)
}

func TestCobra_WinFlagsNeverBothSet(t *testing.T) {
	data := cobraExport(`[[
		{"table": 1, "player1": {"id": 1, "runnerScore": 3, "corpScore": 0}, "player2": {"id": 2, "runnerScore": 0, "corpScore": 3}, "eliminationGame": false},
		{"table": 2, "player1": {"id": 1, "runnerScore": 1, "corpScore": 0}, "player2": {"id": 2, "runnerScore": 1, "corpScore": 0}, "eliminationGame": false}
	]]`)
	rows, err := Records(model.SourceCobra, data, cobraRoster)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	for _, r := range rows {
		assert.False(t, r.CorpWin == 1 && r.RunnerWin == 1, "table %d id %s", r.Table, r.PlayerID)
	}
}

var aesopsRoster = mapRoster{"Alice": player("Alice", "Alice"), "Bob": player("Bob", "Bob")}

func aesopsExport(rounds string) []byte {
	return []byte(`{"name":"Euros","date":"2023-07-01","players":[],"rounds":` + rounds + `}`)
}

func TestAesops_EliminationRunnerWins(t *testing.T) {
	data := aesopsExport(`[[{"tableNumber": 1, "corpPlayer": "Alice", "runnerPlayer": "Bob", "eliminationGame": true, "winner_id": "Bob"}]]`)
	rows, err := Records(model.SourceAesops, data, aesopsRoster)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	corp, runner := rows[0], rows[1]
	assert.Equal(t, model.PlayerID("Alice"), corp.PlayerID)
	assert.Equal(t, 0, corp.CorpWin)
	assert.Equal(t, 0, corp.CorpScore)
	assert.Equal(t, 1, corp.CorpPlay)
	assert.Equal(t, 0, corp.RunnerPlay)

	assert.Equal(t, model.PlayerID("Bob"), runner.PlayerID)
	assert.Equal(t, 1, runner.RunnerWin)
	assert.Equal(t, 3, runner.RunnerScore)
	assert.Equal(t, 3, runner.CombinedScore)
	assert.Equal(t, 0, runner.CorpPlay)
	assert.Equal(t, 1, runner.RunnerPlay)

	for _, r := range rows {
		assert.True(t, r.EliminationGame)
		assert.False(t, r.IntentionalDraw)
		assert.False(t, r.TwoForOne)
	}
}

func TestAesops_Swiss(t *testing.T) {
	data := aesopsExport(`[[
		{"tableNumber": 1, "corpPlayer": "Alice", "runnerPlayer": "Bob", "corpScore": 3, "runnerScore": 1},
		{"tableNumber": 2, "corpPlayer": "Carol", "runnerPlayer": "(BYE)", "corpScore": 3, "runnerScore": 0},
		{"tableNumber": 3, "corpPlayer": "Dan", "runnerPlayer": "Eve", "corpScore": 0, "runnerScore": 0}
	]]`)
	rows, err := Records(model.SourceAesops, data, aesopsRoster)
	require.NoError(t, err)
	require.Len(t, rows, 2, "bye and zero-sum tables are skipped")

	corp, runner := rows[0], rows[1]
	assert.Equal(t, 3, corp.CorpScore)
	assert.Equal(t, 3, corp.CombinedScore)
	assert.Equal(t, 1, corp.CorpWin)
	assert.Equal(t, 1, runner.RunnerScore)
	assert.Equal(t, 1, runner.CombinedScore)
	assert.Equal(t, 0, runner.RunnerWin)
}

func TestRecords_UnsupportedSource(t *testing.T) {
	_, err := Records(model.Source("challonge"), cobraExport(`[]`), cobraRoster)
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}

func TestRecords_BadDate(t *testing.T) {
	data := []byte(`{"name":"x","date":"soon","rounds":[]}`)
	_, err := Records(model.SourceCobra, data, cobraRoster)
	assert.Error(t, err)
}
