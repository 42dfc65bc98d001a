// Package catalog builds the identity lookup table from a card catalog.
package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pable/go-epiphany/internal/model"
)

// ErrMalformedTitle is returned when an identity title is not of the form "X: Y".
var ErrMalformedTitle = errors.New("malformed identity title")

// corpPrefixes are the title prefixes that name a corporation rather than the identity.
var corpPrefixes = map[string]bool{
	"Haas-Bioroid":       true,
	"Jinteki":            true,
	"NBN":                true,
	"Weyland Consortium": true,
}

var titlePattern = regexp.MustCompile(`^(.+): (.+)`)

// identityQuery selects identity cards from the catalog's data array.
const identityQuery = `data.#(type_code=="identity")#`

// Catalog maps normalized identity titles to identities.
type Catalog struct {
	byName  map[string]model.Identity
	entries []model.Identity
}

// Normalize folds a title to lower-case ASCII: combining marks are dropped,
// then the remaining runes are transliterated ("Søren “Gnat”" becomes
// `soren "gnat"`).
func Normalize(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, title)
	if err != nil {
		s = title
	}
	return strings.ToLower(unidecode.Unidecode(s))
}

// ShortTitle derives the display name of an identity title.
// "Jinteki: Personal Evolution" yields "Personal Evolution";
// "Az McCaffrey: Mechanical Prodigy" yields "Az McCaffrey".
func ShortTitle(title string) (string, error) {
	m := titlePattern.FindStringSubmatch(title)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedTitle, title)
	}
	if corpPrefixes[m[1]] {
		return m[2], nil
	}
	return m[1], nil
}

// Build constructs a Catalog from the raw card catalog JSON. Any malformed
// identity title aborts the build.
func Build(data []byte) (*Catalog, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("card catalog: invalid JSON")
	}
	if !gjson.GetBytes(data, "data").IsArray() {
		return nil, errors.New("card catalog: missing data array")
	}

	type key struct {
		title   string
		faction string
	}
	seen := make(map[key]bool)
	var keys []key
	gjson.GetBytes(data, identityQuery).ForEach(func(_, card gjson.Result) bool {
		k := key{card.Get("title").String(), card.Get("faction_code").String()}
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
		return true
	})
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].title != keys[j].title {
			return keys[i].title < keys[j].title
		}
		return keys[i].faction < keys[j].faction
	})

	c := &Catalog{byName: make(map[string]model.Identity, len(keys))}
	for _, k := range keys {
		short, err := ShortTitle(k.title)
		if err != nil {
			return nil, err
		}
		id := model.Identity{
			Title:      k.title,
			Faction:    model.Faction(k.faction),
			Normalized: Normalize(k.title),
			ShortTitle: short,
		}
		if prev, dup := c.byName[id.Normalized]; dup {
			log.Warn().Str("title", id.Title).Str("kept", prev.Title).Msg("duplicate normalized identity title")
			continue
		}
		c.byName[id.Normalized] = id
		c.entries = append(c.entries, id)
	}
	return c, nil
}

// Lookup finds the identity whose normalized title equals Normalize(name).
func (c *Catalog) Lookup(name string) (model.Identity, bool) {
	id, ok := c.byName[Normalize(name)]
	return id, ok
}

// Identities returns all catalog entries ordered by (title, faction).
func (c *Catalog) Identities() []model.Identity {
	out := make([]model.Identity, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of identities.
func (c *Catalog) Len() int { return len(c.entries) }
