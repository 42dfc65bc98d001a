// Package roster resolves a tournament's raw player list against the identity
// catalog and the name-claims mapping.
package roster

import (
	"github.com/rs/zerolog/log"

	"github.com/pable/go-epiphany/internal/model"
	"github.com/pable/go-epiphany/internal/parser"
)

// mojibake maps identity names known to arrive mis-decoded to the intended title.
var mojibake = map[string]string{
	"EsÃ¢ Afontov: Eco-Insurrectionist":   "Esâ Afontov: Eco-Insurrectionist",
	"TÄ�o Salonga: Telepresence Magician": "René \"Loup\" Arcemont: Party Animal",
}

// Catalog is the lookup the resolver needs from the identity catalog.
type Catalog interface {
	Lookup(name string) (model.Identity, bool)
}

// Roster is the resolved player table of one tournament, in input order.
type Roster struct {
	players []model.Player
	byID    map[model.PlayerID]int
}

// Resolve builds a Roster. Null identity names become "Unknown"; names that
// do not match the catalog keep their raw spelling with an Unknown faction.
// When claims map a player's tournament-local name, the canonical name replaces it.
func Resolve(cat Catalog, players []parser.RawPlayer, claims []parser.Claim) *Roster {
	canonical := make(map[string]string, len(claims))
	for _, c := range claims {
		if _, ok := canonical[c.ImportName]; !ok {
			canonical[c.ImportName] = c.UserName
		}
	}

	r := &Roster{
		players: make([]model.Player, 0, len(players)),
		byID:    make(map[model.PlayerID]int, len(players)),
	}
	for _, rp := range players {
		p := model.Player{
			ID:     rp.ID.PlayerID(),
			Name:   rp.Name,
			Rank:   rp.Rank.Int(),
			Corp:   resolveIdentity(cat, rp.CorpIdentity),
			Runner: resolveIdentity(cat, rp.RunnerIdentity),
		}
		if name, ok := canonical[rp.Name]; ok {
			local := rp.Name
			p.TournamentName = &local
			p.Name = name
		}
		if !p.Corp.Resolved() || !p.Runner.Resolved() {
			log.Debug().
				Str("player", p.Name).
				Str("corp", p.Corp.Raw).
				Str("runner", p.Runner.Raw).
				Msg("unresolved identity")
		}
		if _, dup := r.byID[p.ID]; !dup {
			r.byID[p.ID] = len(r.players)
		}
		r.players = append(r.players, p)
	}
	return r
}

func resolveIdentity(cat Catalog, name *string) model.IdentityRef {
	// only a null name is filled; an empty string is kept as given
	raw := model.Unknown
	if name != nil {
		raw = *name
	}
	if fixed, ok := mojibake[raw]; ok {
		raw = fixed
	}
	if id, ok := cat.Lookup(raw); ok {
		return model.IdentityRef{Raw: raw, Entry: &id}
	}
	return model.IdentityRef{Raw: raw}
}

// Lookup returns the first roster row with the given id.
func (r *Roster) Lookup(id model.PlayerID) (*model.Player, bool) {
	i, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return &r.players[i], true
}

// Players returns the roster rows in input order.
func (r *Roster) Players() []model.Player {
	return r.players
}

// Len returns the number of roster rows.
func (r *Roster) Len() int { return len(r.players) }
