package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pable/go-epiphany/internal/model"
	"github.com/pable/go-epiphany/internal/report"
)

var identitiesFaction string

var identitiesCmd = &cobra.Command{
	Use:   "identities",
	Short: "List the identities of the card catalog",
	Long: `Builds the identity catalog from the configured cards file and lists every
identity with the short name used in reports. Use it to check how a player's
identity name will resolve.

Example:
  epiphany identities --faction jinteki`,
	Args: cobra.NoArgs,
	RunE: runIdentities,
}

func init() {
	identitiesCmd.Flags().StringVar(&identitiesFaction, "faction", "", "only list identities of this faction code")
}

func runIdentities(cmd *cobra.Command, _ []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	ids := cat.Identities()
	if identitiesFaction != "" {
		kept := ids[:0]
		for _, id := range ids {
			if id.Faction == model.Faction(identitiesFaction) {
				kept = append(kept, id)
			}
		}
		ids = kept
	}
	log.Debug().Int("catalog", cat.Len()).Int("listed", len(ids)).Msg("identities")
	report.PrintIdentities(cmd.OutOrStdout(), ids)
	return nil
}
