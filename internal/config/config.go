// Package config holds runtime settings and the tournament manifest.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pable/go-epiphany/internal/model"
	"github.com/pable/go-epiphany/internal/stats"
)

// Settings are resolved from flags, EPIPHANY_* environment variables and an
// optional epiphany.yaml, in that order of precedence.
type Settings struct {
	DataDir  string `mapstructure:"data_dir"`
	Cards    string `mapstructure:"cards"`
	Manifest string `mapstructure:"manifest"`
	LogLevel string `mapstructure:"log_level"`
}

// Defaults applied before any other source.
var Defaults = Settings{
	DataDir:  "data",
	Cards:    filepath.Join("data", "cards", "cards.json"),
	Manifest: "tournaments.yaml",
	LogLevel: "info",
}

// NewViper returns a viper instance with defaults, env binding and config file lookup set up.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("data_dir", Defaults.DataDir)
	v.SetDefault("cards", Defaults.Cards)
	v.SetDefault("manifest", Defaults.Manifest)
	v.SetDefault("log_level", Defaults.LogLevel)

	v.SetConfigName("epiphany")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("EPIPHANY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file and decodes the settings.
func Load(v *viper.Viper) (Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}

// ---- Manifest ----

// Manifest lists the tournaments of an aggregate run.
type Manifest struct {
	Tournaments []ManifestEntry `yaml:"tournaments"`
	Team        *TeamConfig     `yaml:"team,omitempty"`
}

// ManifestEntry names one tournament's file prefix and source format.
type ManifestEntry struct {
	Prefix string `yaml:"prefix"`
	Source string `yaml:"source"`
}

// TeamConfig names a group of players to filter matches by.
type TeamConfig struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
}

// ReadManifest decodes a manifest file, rejecting unknown fields.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes manifest YAML. Source tags are not validated here;
// the aggregator rejects unsupported ones.
func ParseManifest(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	for i, t := range m.Tournaments {
		if t.Prefix == "" {
			return nil, fmt.Errorf("manifest entry %d: missing prefix", i)
		}
	}
	return &m, nil
}

// TournamentList converts manifest entries to pipeline descriptors.
func (m *Manifest) TournamentList() []model.Tournament {
	out := make([]model.Tournament, len(m.Tournaments))
	for i, t := range m.Tournaments {
		out[i] = model.Tournament{Prefix: t.Prefix, Source: model.Source(t.Source)}
	}
	return out
}

// TeamFilter returns the configured team, if any.
func (m *Manifest) TeamFilter() (stats.Team, bool) {
	if m.Team == nil || len(m.Team.Members) == 0 {
		return stats.Team{}, false
	}
	return stats.Team{Name: m.Team.Name, Members: m.Team.Members}, true
}
