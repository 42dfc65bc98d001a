package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-epiphany/internal/model"
	"github.com/pable/go-epiphany/internal/parser"
	"github.com/pable/go-epiphany/internal/report"
)

var validateLimit int

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Run the pipeline on one tournament file and print its first pairs",
	Long: `Infers the tournament prefix and source format from a file named
<prefix>-<source>.json (source is "cobra" or "aesops"), runs the whole
pipeline on it and prints the first paired records.

A claims file <prefix>-abr.json next to it is used when present.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().IntVar(&validateLimit, "limit", 5, "number of paired records to print (0 = all)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir, prefix, tag, ok := parser.ParseFilename(args[0])
	if !ok {
		return fmt.Errorf("cannot infer <prefix>-<source> from %q", args[0])
	}
	t := model.Tournament{Prefix: prefix, Source: model.Source(tag)}

	res, err := runPipeline(dir, []model.Tournament{t})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report.PrintEventSummary(out, eventSummaries(res))
	fmt.Fprintln(out)
	report.PrintPairedMatches(out, res.Paired, validateLimit)
	if len(res.Abandoned()) > 0 {
		cWarn.Fprintln(os.Stderr, "pairing incomplete: some records have no roster entry")
	}
	return nil
}
