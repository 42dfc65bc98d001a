package pairer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-epiphany/internal/model"
)

func player(id, name string, rank int) *model.Player {
	return &model.Player{
		ID:     model.PlayerID(id),
		Name:   name,
		Rank:   rank,
		Corp:   model.IdentityRef{Raw: name + "-corp"},
		Runner: model.IdentityRef{Raw: name + "-runner"},
	}
}

func row(id string, round, table int, p *model.Player) model.FlattenedMatch {
	return model.FlattenedMatch{
		Event:     "Test Open",
		YearMonth: "2023-11",
		Round:     round,
		Table:     table,
		PlayerID:  model.PlayerID(id),
		Player:    p,
	}
}

// swissTable builds the two format A rows of a swiss table where id1 won on corp.
func swissTable(round, table int, id1, id2 string, p1, p2 *model.Player) []model.FlattenedMatch {
	a := row(id1, round, table, p1)
	a.CorpScore, a.CorpWin, a.CorpPlay, a.RunnerPlay = 3, 1, 1, 1
	b := row(id2, round, table, p2)
	b.CorpPlay, b.RunnerPlay = 1, 1
	return []model.FlattenedMatch{a, b}
}

func TestPair_SwissTable(t *testing.T) {
	alice, bob := player("1", "alice", 1), player("2", "bob", 2)
	res := Pair(swissTable(1, 1, "1", "2", alice, bob))
	require.NoError(t, res.Err)
	assert.False(t, res.Abandoned)
	require.Len(t, res.Pairs, 2, "both play signals of the lower id are emitted")

	var aliceCorp []model.PairedMatch
	for _, p := range res.Pairs {
		if p.CorpPlayer == "alice" {
			aliceCorp = append(aliceCorp, p)
		}
	}
	require.Len(t, aliceCorp, 1)
	assert.Equal(t, 1, aliceCorp[0].CorpWins)
	assert.Equal(t, "alice-corp", aliceCorp[0].Corp)
	assert.Equal(t, "bob-runner", aliceCorp[0].Runner)
	assert.Equal(t, "bob", aliceCorp[0].RunnerPlayer)
	assert.Equal(t, 2, aliceCorp[0].RunnerRank)

	reversed := res.Pairs[1]
	assert.Equal(t, "bob", reversed.CorpPlayer)
	assert.Equal(t, "alice", reversed.RunnerPlayer)
	assert.Equal(t, 0, reversed.CorpWins)
}

func TestPair_SingleDirection(t *testing.T) {
	alice, bob := player("Alice", "Alice", 1), player("Bob", "Bob", 2)

	corp := row("Alice", 5, 1, alice)
	corp.CorpPlay = 1
	runner := row("Bob", 5, 1, bob)
	runner.RunnerPlay, runner.RunnerWin = 1, 1

	res := Pair([]model.FlattenedMatch{corp, runner})
	require.Len(t, res.Pairs, 1)
	p := res.Pairs[0]
	assert.Equal(t, "Alice", p.CorpPlayer)
	assert.Equal(t, "Bob", p.RunnerPlayer)
	assert.Equal(t, 1, p.RunnerWins)
	assert.Equal(t, 5, p.Round)

	// the lower id on the runner side yields the same pair
	zed := player("Zed", "Zed", 3)
	corp2 := row("Zed", 5, 2, zed)
	corp2.CorpPlay = 1
	runner2 := row("Bob", 5, 2, bob)
	runner2.RunnerPlay = 1

	res = Pair([]model.FlattenedMatch{corp2, runner2})
	require.Len(t, res.Pairs, 1)
	assert.Equal(t, "Zed", res.Pairs[0].CorpPlayer)
	assert.Equal(t, "Bob", res.Pairs[0].RunnerPlayer)
}

func TestPair_OrderIndependent(t *testing.T) {
	alice, bob := player("1", "alice", 1), player("2", "bob", 2)
	rows := swissTable(1, 1, "1", "2", alice, bob)
	reversed := []model.FlattenedMatch{rows[1], rows[0]}

	assert.Equal(t, Pair(rows).Pairs, Pair(reversed).Pairs)
}

func TestPair_NumericIDOrder(t *testing.T) {
	p9, p10 := player("9", "nine", 1), player("10", "ten", 2)
	a := row("10", 1, 1, p10)
	a.CorpPlay = 1
	a.Role = "corp"
	b := row("9", 1, 1, p9)
	b.RunnerPlay = 1

	res := Pair([]model.FlattenedMatch{a, b})
	require.Len(t, res.Pairs, 1)
	assert.Equal(t, "ten", res.Pairs[0].CorpPlayer, "9 < 10 numerically, so the runner row is left")
}

func TestPair_KeysOnEventRoundTable(t *testing.T) {
	alice, bob := player("1", "alice", 1), player("2", "bob", 2)
	var rows []model.FlattenedMatch
	rows = append(rows, swissTable(1, 1, "1", "2", alice, bob)...)
	rows = append(rows, swissTable(2, 1, "1", "2", alice, bob)...)
	other := swissTable(1, 1, "1", "2", alice, bob)
	for i := range other {
		other[i].Event = "Other Open"
	}
	rows = append(rows, other...)

	res := Pair(rows)
	assert.Len(t, res.Pairs, 6)
}

func TestPair_AbandonsOnMissingPlayer(t *testing.T) {
	alice, bob := player("1", "alice", 1), player("2", "bob", 2)
	var rows []model.FlattenedMatch
	rows = append(rows, swissTable(1, 1, "1", "2", alice, bob)...)
	rows = append(rows, swissTable(1, 2, "3", "4", nil, player("4", "dan", 4))...)
	rows = append(rows, swissTable(2, 1, "1", "2", alice, bob)...)

	res := Pair(rows)
	assert.True(t, res.Abandoned)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, ErrMissingPlayer)
	assert.Len(t, res.Pairs, 2, "pairs built before the failure are kept")
	for _, p := range res.Pairs {
		assert.Equal(t, 1, p.Round)
		assert.Equal(t, 1, p.Table)
	}
}

func TestPair_Empty(t *testing.T) {
	res := Pair(nil)
	assert.Empty(t, res.Pairs)
	assert.False(t, res.Abandoned)
	assert.NoError(t, res.Err)
}
