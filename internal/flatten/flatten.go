// Package flatten turns one tournament's round/table structure into one
// record per player per match. Format-specific quirks (score encoding, bye
// and draw detection) are isolated in Cobra and Aesops.
package flatten

import (
	"errors"
	"fmt"
	"time"

	"github.com/pable/go-epiphany/internal/model"
	"github.com/pable/go-epiphany/internal/parser"
)

// ErrUnsupportedSource is returned for a format tag other than cobra or aesops.
var ErrUnsupportedSource = errors.New("unsupported source")

// Roster is the player lookup rows are joined against.
type Roster interface {
	Lookup(id model.PlayerID) (*model.Player, bool)
}

// winScore is the swiss score awarded for a won game.
const winScore = 3

// Records decodes data as the given source format and flattens it.
func Records(source model.Source, data []byte, roster Roster) ([]model.FlattenedMatch, error) {
	switch source {
	case model.SourceCobra:
		t, err := parser.ParseCobra(data)
		if err != nil {
			return nil, err
		}
		return Cobra(t, roster)
	case model.SourceAesops:
		t, err := parser.ParseAesops(data)
		if err != nil {
			return nil, err
		}
		return Aesops(t, roster)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedSource, source)
	}
}

// event carries the per-tournament fields stamped on every row.
type event struct {
	name      string
	date      time.Time
	yearMonth string
}

func newEvent(h *parser.Header) (event, error) {
	date, err := h.ParsedDate()
	if err != nil {
		return event{}, err
	}
	return event{name: h.Name, date: date, yearMonth: date.Format("2006-01")}, nil
}

func (e event) row(table, round int, id model.PlayerID) model.FlattenedMatch {
	return model.FlattenedMatch{
		Event:     e.name,
		Date:      e.date,
		YearMonth: e.yearMonth,
		Table:     table,
		Round:     round,
		PlayerID:  id,
	}
}

func join(rows []model.FlattenedMatch, roster Roster) {
	for i := range rows {
		if p, ok := roster.Lookup(rows[i].PlayerID); ok {
			rows[i].Player = p
		}
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
