package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pable/go-epiphany/internal/config"
)

var (
	v        = config.NewViper()
	settings config.Settings
)

var rootCmd = &cobra.Command{
	Use:   "epiphany",
	Short: "Tournament results analysis tool",
	Long: `Ingest cobr.ai and Aesops Law tournament exports, reconcile players and
identities, and report win rates, identity popularity and matchups.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("data-dir", config.Defaults.DataDir, "directory holding <prefix>-<source>.json files")
	pf.String("cards", config.Defaults.Cards, "path to the card catalog JSON")
	pf.String("manifest", config.Defaults.Manifest, "YAML list of tournaments to aggregate")
	pf.String("log-level", config.Defaults.LogLevel, "log level (debug, info, warn, error)")

	_ = v.BindPFlag("data_dir", pf.Lookup("data-dir"))
	_ = v.BindPFlag("cards", pf.Lookup("cards"))
	_ = v.BindPFlag("manifest", pf.Lookup("manifest"))
	_ = v.BindPFlag("log_level", pf.Lookup("log-level"))

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(winrateCmd)
	rootCmd.AddCommand(matchupsCmd)
	rootCmd.AddCommand(popularityCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(identitiesCmd)
}

func setup(_ *cobra.Command, _ []string) error {
	s, err := config.Load(v)
	if err != nil {
		return err
	}
	settings = s

	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	return nil
}
