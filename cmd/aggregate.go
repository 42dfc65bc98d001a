package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-epiphany/internal/report"
	"github.com/pable/go-epiphany/internal/stats"
)

var (
	aggregateFlat  bool
	aggregateLimit int
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Run the pipeline over every tournament in the manifest",
	Long: `Loads each tournament listed in the manifest from the data directory,
resolves rosters against the identity catalog, flattens and pairs the
matches, and prints a per-tournament summary, overall identity win rates and
the first paired records.

Example manifest:
  tournaments:
    - prefix: worlds2023
      source: cobra
    - prefix: euros2023
      source: aesops`,
	Args: cobra.NoArgs,
	RunE: runAggregate,
}

func init() {
	aggregateCmd.Flags().BoolVar(&aggregateFlat, "flattened", false, "print flattened records instead of paired records")
	aggregateCmd.Flags().IntVar(&aggregateLimit, "limit", 20, "number of records to print (0 = all)")
}

func runAggregate(cmd *cobra.Command, _ []string) error {
	_, res, err := loadCorpus()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	cHeader.Fprintln(out, "Tournaments")
	report.PrintEventSummary(out, eventSummaries(res))
	fmt.Fprintln(out)

	cHeader.Fprintln(out, "Corp win rates")
	report.PrintWinRates(out, stats.Corp, stats.CorpWinRate(res.Flattened))
	fmt.Fprintln(out)
	cHeader.Fprintln(out, "Runner win rates")
	report.PrintWinRates(out, stats.Runner, stats.RunnerWinRate(res.Flattened))
	fmt.Fprintln(out)

	if aggregateFlat {
		cHeader.Fprintf(out, "Flattened records (%d)\n", len(res.Flattened))
		report.PrintFlattenedMatches(out, res.Flattened, aggregateLimit)
		return nil
	}
	cHeader.Fprintf(out, "Paired records (%d)\n", len(res.Paired))
	report.PrintPairedMatches(out, res.Paired, aggregateLimit)
	return nil
}
