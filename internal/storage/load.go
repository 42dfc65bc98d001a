package storage

import (
	"fmt"

	"github.com/pable/go-epiphany/internal/aggregator"
)

// Load opens an in-memory database holding the rosters, flattened records and
// paired records of an aggregate run.
func Load(res *aggregator.Result) (*DB, error) {
	db, err := OpenMemory()
	if err != nil {
		return nil, err
	}
	for _, ev := range res.Events {
		if err := db.InsertPlayers(ev.Event, ev.Roster.Players()); err != nil {
			db.Close()
			return nil, fmt.Errorf("load players for %s: %w", ev.Tournament.Prefix, err)
		}
	}
	if err := db.InsertFlattened(res.Flattened); err != nil {
		db.Close()
		return nil, fmt.Errorf("load flattened matches: %w", err)
	}
	if err := db.InsertPaired(res.Paired); err != nil {
		db.Close()
		return nil, fmt.Errorf("load paired matches: %w", err)
	}
	return db, nil
}
