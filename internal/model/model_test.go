package model

import "testing"

func TestPlayerIDLess(t *testing.T) {
	cases := []struct {
		a, b PlayerID
		want bool
	}{
		{"1", "2", true},
		{"2", "1", false},
		{"9", "10", true},
		{"10", "9", false},
		{"Alice", "Bob", true},
		{"Bob", "Alice", false},
		{"10", "Alice", true},
		{"1", "1", false},
	}
	for _, c := range cases {
		if got := c.a.Less(c.b); got != c.want {
			t.Errorf("%q.Less(%q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestIdentityRef(t *testing.T) {
	unresolved := IdentityRef{Raw: "Homebrew: Corp"}
	if unresolved.Resolved() {
		t.Fatal("expected unresolved")
	}
	if unresolved.Name() != "Homebrew: Corp" || unresolved.Faction() != FactionUnknown {
		t.Errorf("unresolved = %q/%q", unresolved.Name(), unresolved.Faction())
	}

	ref := IdentityRef{Raw: "NBN: Making News", Entry: &Identity{ShortTitle: "Making News", Faction: FactionNBN}}
	if ref.Name() != "Making News" || ref.Faction() != FactionNBN {
		t.Errorf("resolved = %q/%q", ref.Name(), ref.Faction())
	}
}

func TestFlattenedMatchUnjoined(t *testing.T) {
	m := FlattenedMatch{PlayerID: "3"}
	if m.Joined() || m.Name() != "" || m.CorpIdentity() != "" || m.RunnerIdentity() != "" {
		t.Errorf("unjoined record exposes player fields: %+v", m)
	}
}

func TestSourceValid(t *testing.T) {
	if !SourceCobra.Valid() || !SourceAesops.Valid() || Source("abr").Valid() {
		t.Error("unexpected Source.Valid result")
	}
}
