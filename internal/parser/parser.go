// Package parser decodes tournament exports, name-claims files, and card
// catalogs into raw Go structures. It does no reconciliation of its own.
package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/pable/go-epiphany/internal/model"
)

// ErrBadDate is returned when a tournament date cannot be parsed.
var ErrBadDate = errors.New("unparseable tournament date")

// dateLayouts are tried in order when parsing a tournament's "date" field.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.000Z",
}

// OptInt is a JSON integer that may be null, missing, or encoded as a string.
type OptInt struct {
	Value int
	Valid bool
}

// UnmarshalJSON accepts numbers, numeric strings, and null.
func (o *OptInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*o = OptInt{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*o = OptInt{}
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("integer field: %w", err)
		}
		*o = OptInt{Value: n, Valid: true}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("integer field: %w", err)
	}
	*o = OptInt{Value: int(f), Valid: true}
	return nil
}

// Int returns the value, or 0 when null.
func (o OptInt) Int() int { return o.Value }

// ID is a player id that may be a JSON number, a string, or null.
type ID model.PlayerID

// UnmarshalJSON accepts numbers, strings, and null (decoded as the empty id).
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("player id: %w", err)
		}
		*id = ID(n.String())
	}
	return nil
}

// PlayerID converts to the model type.
func (id ID) PlayerID() model.PlayerID { return model.PlayerID(id) }

// ---- Shared tournament header ----

// RawPlayer is one entry of a tournament's "players" array.
type RawPlayer struct {
	ID             ID      `json:"id"`
	Name           string  `json:"name"`
	Rank           OptInt  `json:"rank"`
	CorpIdentity   *string `json:"corpIdentity"`
	RunnerIdentity *string `json:"runnerIdentity"`
}

// Header holds the fields both export formats share.
type Header struct {
	Name    string      `json:"name"`
	Date    string      `json:"date"`
	Players []RawPlayer `json:"players"`
}

// ParsedDate parses Date with the supported layouts.
func (h *Header) ParsedDate() (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, h.Date); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, h.Date)
}

// ---- Format A (cobra) ----

// CobraSeat is one player's embedded record at a format A table.
type CobraSeat struct {
	ID            ID     `json:"id"`
	Role          string `json:"role"`
	Winner        *bool  `json:"winner"`
	RunnerScore   OptInt `json:"runnerScore"`
	CorpScore     OptInt `json:"corpScore"`
	CombinedScore OptInt `json:"combinedScore"`
}

// Won reports the seat's winner flag, treating null as false.
func (s CobraSeat) Won() bool { return s.Winner != nil && *s.Winner }

// CobraTable is one table of a format A round.
type CobraTable struct {
	Table           int       `json:"table"`
	Player1         CobraSeat `json:"player1"`
	Player2         CobraSeat `json:"player2"`
	TwoForOne       bool      `json:"twoForOne"`
	IntentionalDraw bool      `json:"intentionalDraw"`
	EliminationGame bool      `json:"eliminationGame"`
}

// CobraTournament is a decoded format A export.
type CobraTournament struct {
	Header
	Rounds [][]CobraTable `json:"rounds"`
}

// ParseCobra decodes a format A export.
func ParseCobra(data []byte) (*CobraTournament, error) {
	var t CobraTournament
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode cobra export: %w", err)
	}
	return &t, nil
}

// ---- Format B (aesops) ----

// ByeMarker is the player name format B uses for an empty seat.
const ByeMarker = "(BYE)"

// AesopsTable is one table of a format B round.
type AesopsTable struct {
	TableNumber     int    `json:"tableNumber"`
	CorpPlayer      ID     `json:"corpPlayer"`
	RunnerPlayer    ID     `json:"runnerPlayer"`
	CorpScore       OptInt `json:"corpScore"`
	RunnerScore     OptInt `json:"runnerScore"`
	EliminationGame bool   `json:"eliminationGame"`
	WinnerID        ID     `json:"winner_id"`
}

// IsBye reports whether either seat holds the bye marker.
func (t AesopsTable) IsBye() bool {
	return t.CorpPlayer == ByeMarker || t.RunnerPlayer == ByeMarker
}

// AesopsTournament is a decoded format B export.
type AesopsTournament struct {
	Header
	Rounds [][]AesopsTable `json:"rounds"`
}

// ParseAesops decodes a format B export.
func ParseAesops(data []byte) (*AesopsTournament, error) {
	var t AesopsTournament
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode aesops export: %w", err)
	}
	return &t, nil
}

// ParseHeader decodes only the shared header of either format.
func ParseHeader(data []byte) (*Header, error) {
	var h Header
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("decode tournament header: %w", err)
	}
	return &h, nil
}

// ---- Name claims ----

// Claim maps a tournament-local player name to a canonical name.
type Claim struct {
	ImportName string `json:"user_import_name"`
	UserName   string `json:"user_name"`
}

// ParseClaims decodes a name-claims file. An empty document yields no claims.
func ParseClaims(data []byte) ([]Claim, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var claims []Claim
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, fmt.Errorf("decode claims: %w", err)
	}
	return claims, nil
}
