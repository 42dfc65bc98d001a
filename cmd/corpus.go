package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"

	"github.com/pable/go-epiphany/internal/aggregator"
	"github.com/pable/go-epiphany/internal/catalog"
	"github.com/pable/go-epiphany/internal/config"
	"github.com/pable/go-epiphany/internal/model"
	"github.com/pable/go-epiphany/internal/parser"
	"github.com/pable/go-epiphany/internal/report"
)

var (
	cHeader = color.New(color.FgCyan, color.Bold)
	cWarn   = color.New(color.FgYellow)
	cMuted  = color.New(color.Faint)
)

// loadCatalog builds the identity catalog from the configured cards file.
func loadCatalog() (*catalog.Catalog, error) {
	data, err := parser.ReadFile(settings.Cards)
	if err != nil {
		return nil, fmt.Errorf("read card catalog: %w", err)
	}
	cat, err := catalog.Build(data)
	if err != nil {
		return nil, fmt.Errorf("build identity catalog: %w", err)
	}
	log.Debug().Str("cards", settings.Cards).Int("identities", cat.Len()).Msg("built identity catalog")
	return cat, nil
}

// runPipeline aggregates the given tournaments from dir.
func runPipeline(dir string, tournaments []model.Tournament) (*aggregator.Result, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	res, err := aggregator.Aggregate(parser.DirSource{Dir: dir}, cat, tournaments)
	if err != nil {
		return nil, err
	}
	warnAbandoned(res)
	return res, nil
}

// loadManifest reads the configured manifest.
func loadManifest() (*config.Manifest, error) {
	return config.ReadManifest(settings.Manifest)
}

// loadCorpus runs the pipeline over every tournament in the manifest.
func loadCorpus() (*config.Manifest, *aggregator.Result, error) {
	m, err := loadManifest()
	if err != nil {
		return nil, nil, err
	}
	res, err := runPipeline(settings.DataDir, m.TournamentList())
	if err != nil {
		return nil, nil, err
	}
	return m, res, nil
}

func warnAbandoned(res *aggregator.Result) {
	for _, ev := range res.Abandoned() {
		cWarn.Fprintf(os.Stderr, "warning: pairing stopped early for %s (%d pairs kept): %v\n",
			ev.Tournament.Prefix, len(ev.Pairing.Pairs), ev.Pairing.Err)
	}
}

func eventSummaries(res *aggregator.Result) []report.EventSummary {
	out := make([]report.EventSummary, len(res.Events))
	for i, ev := range res.Events {
		out[i] = report.EventSummary{
			Prefix:    ev.Tournament.Prefix,
			Source:    ev.Tournament.Source,
			Event:     ev.Event,
			Players:   ev.Roster.Len(),
			Records:   len(ev.Flattened),
			Pairs:     len(ev.Pairing.Pairs),
			Abandoned: ev.Pairing.Abandoned,
		}
	}
	return out
}
