package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-epiphany/internal/cobrai"
	"github.com/pable/go-epiphany/internal/model"
	"github.com/pable/go-epiphany/internal/parser"
)

var (
	fetchPrefix  string
	fetchZstd    bool
	fetchBaseURL string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <tournament-id>",
	Short: "Download a cobr.ai tournament export into the data directory",
	Long: `Downloads the JSON export of a cobr.ai tournament and stores it as
<data-dir>/<prefix>-cobra.json (or .json.zst with --zstd), ready to be
listed in the manifest.

Example:
  epiphany fetch 2411 --prefix worlds2023 --zstd`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchPrefix, "prefix", "", "file prefix (default: the tournament id)")
	fetchCmd.Flags().BoolVar(&fetchZstd, "zstd", false, "store the export zstd-compressed")
	fetchCmd.Flags().StringVar(&fetchBaseURL, "base-url", cobrai.DefaultBaseURL, "cobr.ai base URL")
}

func runFetch(cmd *cobra.Command, args []string) error {
	id := args[0]
	prefix := fetchPrefix
	if prefix == "" {
		prefix = id
	}

	client := cobrai.NewClient(fetchBaseURL)
	data, err := client.Tournament(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("fetch tournament %s: %w", id, err)
	}
	header, err := parser.ParseHeader(data)
	if err != nil {
		return fmt.Errorf("tournament %s: %w", id, err)
	}

	if err := os.MkdirAll(settings.DataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.json", prefix, model.SourceCobra)
	if fetchZstd {
		name += ".zst"
	}
	path := filepath.Join(settings.DataDir, name)
	if err := parser.WriteFile(path, data); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %q, %d players, %d bytes\n",
		path, header.Name, len(header.Players), len(data))
	return nil
}
