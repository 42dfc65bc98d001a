package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-epiphany/internal/model"
)

const cardsJSON = `{"data":[
	{"type_code":"identity","title":"Jinteki: Personal Evolution","faction_code":"jinteki"},
	{"type_code":"identity","title":"Esâ Afontov: Eco-Insurrectionist","faction_code":"anarch"},
	{"type_code":"identity","title":"Az McCaffrey: Mechanical Prodigy","faction_code":"criminal"},
	{"type_code":"identity","title":"Jinteki: Personal Evolution","faction_code":"jinteki"},
	{"type_code":"agenda","title":"Hostile Takeover","faction_code":"weyland-consortium"},
	{"type_code":"identity","title":"Weyland Consortium: Built to Last","faction_code":"weyland-consortium"}
]}`

func TestShortTitle(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Jinteki: Personal Evolution", "Personal Evolution"},
		{"Haas-Bioroid: Engineering the Future", "Engineering the Future"},
		{"NBN: Making News", "Making News"},
		{"Weyland Consortium: Built to Last", "Built to Last"},
		{"Az McCaffrey: Mechanical Prodigy", "Az McCaffrey"},
		{"René \"Loup\" Arcemont: Party Animal", "René \"Loup\" Arcemont"},
	}
	for _, c := range cases {
		got, err := ShortTitle(c.title)
		require.NoError(t, err, c.title)
		assert.Equal(t, c.want, got, c.title)
	}
}

func TestShortTitle_Malformed(t *testing.T) {
	_, err := ShortTitle("The Collective")
	assert.ErrorIs(t, err, ErrMalformedTitle)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "esa afontov: eco-insurrectionist", Normalize("Esâ Afontov: Eco-Insurrectionist"))
	assert.Equal(t, "rene", Normalize("René"))
	assert.Equal(t, "nbn: making news", Normalize("NBN: Making News"))
	assert.Equal(t, `nathaniel "gnat" hall: one-of-a-kind`, Normalize("Nathaniel “Gnat” Hall: One-of-a-Kind"))
	assert.Equal(t, "soren", Normalize("Søren"))
	assert.Equal(t, "aether", Normalize("Æther"))
}

func TestLookup_FoldsPunctuationAndLetters(t *testing.T) {
	data := `{"data":[
		{"type_code":"identity","title":"Nathaniel “Gnat” Hall: One-of-a-Kind","faction_code":"shaper"},
		{"type_code":"identity","title":"Søren Aether: Test Runner","faction_code":"anarch"}
	]}`
	cat, err := Build([]byte(data))
	require.NoError(t, err)

	gnat, ok := cat.Lookup(`Nathaniel "Gnat" Hall: One-of-a-Kind`)
	require.True(t, ok)
	assert.Equal(t, "Nathaniel “Gnat” Hall", gnat.ShortTitle)

	_, ok = cat.Lookup("Soren Aether: Test Runner")
	assert.True(t, ok)
}

func TestBuild(t *testing.T) {
	cat, err := Build([]byte(cardsJSON))
	require.NoError(t, err)

	// the duplicate Personal Evolution and the agenda are dropped
	assert.Equal(t, 4, cat.Len())

	ids := cat.Identities()
	titles := make([]string, len(ids))
	for i, id := range ids {
		titles[i] = id.Title
	}
	assert.Equal(t, []string{
		"Az McCaffrey: Mechanical Prodigy",
		"Esâ Afontov: Eco-Insurrectionist",
		"Jinteki: Personal Evolution",
		"Weyland Consortium: Built to Last",
	}, titles)

	pe, ok := cat.Lookup("JINTEKI: Personal Evolution")
	require.True(t, ok)
	assert.Equal(t, "Personal Evolution", pe.ShortTitle)
	assert.Equal(t, model.FactionJinteki, pe.Faction)

	esa, ok := cat.Lookup("Esa Afontov: Eco-Insurrectionist")
	require.True(t, ok, "lookup ignores accents")
	assert.Equal(t, "Esâ Afontov", esa.ShortTitle)

	_, ok = cat.Lookup("Hostile Takeover")
	assert.False(t, ok)
}

func TestBuild_MalformedTitleIsFatal(t *testing.T) {
	data := `{"data":[
		{"type_code":"identity","title":"Jinteki: Personal Evolution","faction_code":"jinteki"},
		{"type_code":"identity","title":"No Colon Here","faction_code":"shaper"}
	]}`
	cat, err := Build([]byte(data))
	assert.ErrorIs(t, err, ErrMalformedTitle)
	assert.Nil(t, cat)
}

func TestBuild_DuplicateNormalizedTitleKeepsFirst(t *testing.T) {
	data := `{"data":[
		{"type_code":"identity","title":"Rene: Party Animal","faction_code":"criminal"},
		{"type_code":"identity","title":"René: Party Animal","faction_code":"criminal"}
	]}`
	cat, err := Build([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())
	id, ok := cat.Lookup("rene: party animal")
	require.True(t, ok)
	assert.Equal(t, "Rene: Party Animal", id.Title)
}

func TestBuild_InvalidInput(t *testing.T) {
	_, err := Build([]byte(`{not json`))
	assert.Error(t, err)

	_, err = Build([]byte(`{"cards":[]}`))
	assert.Error(t, err)
}
