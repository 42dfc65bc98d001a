package model

import (
	"strconv"
	"strings"
	"time"
)

// Source identifies which tournament software exported a results file.
type Source string

const (
	SourceCobra  Source = "cobra"  // format A: cobr.ai exports
	SourceAesops Source = "aesops" // format B: Aesops Law exports
)

// Valid reports whether s is one of the two supported formats.
func (s Source) Valid() bool {
	return s == SourceCobra || s == SourceAesops
}

// Faction is the faction code an identity belongs to, as found in the card catalog.
type Faction string

const (
	FactionHaasBioroid Faction = "haas-bioroid"
	FactionJinteki     Faction = "jinteki"
	FactionNBN         Faction = "nbn"
	FactionWeyland     Faction = "weyland-consortium"
	FactionAnarch      Faction = "anarch"
	FactionCriminal    Faction = "criminal"
	FactionShaper      Faction = "shaper"
	FactionAdam        Faction = "adam"
	FactionUnknown     Faction = "Unknown"
)

// Unknown is the placeholder used for missing identity names and unresolved factions.
const Unknown = "Unknown"

// FactionHues maps factions to the colour names used in charts and legends.
func FactionHues() map[Faction]string {
	return map[Faction]string{
		FactionShaper:      "limegreen",
		FactionCriminal:    "royalblue",
		FactionAnarch:      "orangered",
		FactionAdam:        "gold",
		FactionJinteki:     "crimson",
		FactionNBN:         "darkorange",
		FactionHaasBioroid: "blueviolet",
		FactionWeyland:     "darkgreen",
	}
}

// ---- Identity catalog ----

// Identity is one identity card from the catalog.
type Identity struct {
	Title      string  // full card title, e.g. "Jinteki: Personal Evolution"
	Faction    Faction // catalog faction_code
	Normalized string  // accent-stripped, lower-cased Title; catalog key
	ShortTitle string  // display name, e.g. "Personal Evolution"
}

// IdentityRef is a player's chosen identity after the catalog lookup.
// Entry is nil when the name did not match any catalog identity; in that case
// the raw name is kept and the faction is Unknown.
type IdentityRef struct {
	Raw   string
	Entry *Identity
}

// Resolved reports whether the identity matched the catalog.
func (r IdentityRef) Resolved() bool { return r.Entry != nil }

// Name returns the short display name, or the raw name when unresolved.
func (r IdentityRef) Name() string {
	if r.Entry != nil {
		return r.Entry.ShortTitle
	}
	return r.Raw
}

// Faction returns the catalog faction, or FactionUnknown when unresolved.
func (r IdentityRef) Faction() Faction {
	if r.Entry != nil {
		return r.Entry.Faction
	}
	return FactionUnknown
}

// ---- Players ----

// PlayerID is a tournament-local player identifier. Format A uses integers,
// format B uses the player's display name.
type PlayerID string

// Less orders ids numerically when both are integers and lexicographically otherwise.
func (id PlayerID) Less(other PlayerID) bool {
	a, errA := strconv.ParseInt(string(id), 10, 64)
	b, errB := strconv.ParseInt(string(other), 10, 64)
	if errA == nil && errB == nil {
		return a < b
	}
	return strings.Compare(string(id), string(other)) < 0
}

// IsZero reports whether the id is absent (a bye seat).
func (id PlayerID) IsZero() bool { return id == "" }

// Player is one resolved roster row for a tournament.
type Player struct {
	ID     PlayerID
	Name   string // canonical name when a claim matched, else the tournament-local name
	Rank   int
	Corp   IdentityRef
	Runner IdentityRef

	// TournamentName holds the tournament-local name when a name claim replaced it.
	TournamentName *string
}

// Claimed reports whether the display name came from a name claim.
func (p *Player) Claimed() bool { return p.TournamentName != nil }

// ---- Match records ----

// FlattenedMatch is one player's record of one match.
type FlattenedMatch struct {
	Event     string
	Date      time.Time
	YearMonth string // "2006-01"
	Table     int
	Round     int // 1-indexed
	PlayerID  PlayerID

	RunnerScore   int
	CorpScore     int
	CombinedScore int

	IntentionalDraw bool
	TwoForOne       bool
	EliminationGame bool

	RunnerWin  int
	CorpWin    int
	RunnerPlay int
	CorpPlay   int

	// Seat fields carried from format A sources; empty for format B.
	Role   string
	Winner bool

	// Player is the roster row joined on PlayerID; nil when the id is not on the roster.
	Player *Player
}

// Joined reports whether the roster join found the player.
func (m *FlattenedMatch) Joined() bool { return m.Player != nil }

// Name returns the joined player name, or "" when unjoined.
func (m *FlattenedMatch) Name() string {
	if m.Player == nil {
		return ""
	}
	return m.Player.Name
}

// CorpIdentity returns the joined corp identity display name, or "" when unjoined.
func (m *FlattenedMatch) CorpIdentity() string {
	if m.Player == nil {
		return ""
	}
	return m.Player.Corp.Name()
}

// RunnerIdentity returns the joined runner identity display name, or "" when unjoined.
func (m *FlattenedMatch) RunnerIdentity() string {
	if m.Player == nil {
		return ""
	}
	return m.Player.Runner.Name()
}

// PairedMatch is one corp-versus-runner game reconstructed from two flattened records.
type PairedMatch struct {
	Event     string
	Date      time.Time
	YearMonth string
	Round     int
	Table     int

	Corp          string // corp identity display name
	CorpFaction   Faction
	Runner        string // runner identity display name
	RunnerFaction Faction

	CorpWins   int
	RunnerWins int

	CorpPlayer   string
	CorpRank     int
	RunnerPlayer string
	RunnerRank   int
}

// Tournament describes one entry in an aggregate run.
type Tournament struct {
	Prefix string // file prefix under the data directory, e.g. "2024-01-06-online-new-years-co"
	Source Source
}
