package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/convreg/semconv-resolver/pkg/logging"
)

var (
	checkSources []string
	checkStrict  bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate one or more semantic convention registries without printing them",
	Long: `check runs the same VDir->SpecLoader->Resolver pipeline as resolve, but
discards the resolved registry and reports only diagnostics. It exits
nonzero when resolution produced any error-severity diagnostic.

Examples:
  semconv-resolve check --registry ./my-semconv
  semconv-resolve check --registry ./my-semconv --strict`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(checkSources) == 0 {
			return fmt.Errorf("at least one --registry source is required")
		}

		logger, flush, err := logging.New(verbose)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer flush()
		ctx := logging.Into(context.Background(), logger)

		_, diags, err := runPipeline(ctx, pipelineOptions{
			Sources: checkSources,
			Strict:  checkStrict,
			NoCache: true,
		})
		printDiagnostics(diags)
		if err != nil {
			return err
		}

		return printResult(checkSummary{
			OK:       true,
			Errors:   len(diags.Errors()),
			Warnings: len(diags.Warnings()),
		}, func() {
			fmt.Printf("ok: %d warnings, 0 errors\n", len(diags.Warnings()))
		})
	},
}

type checkSummary struct {
	OK       bool `json:"ok" yaml:"ok"`
	Errors   int  `json:"errors" yaml:"errors"`
	Warnings int  `json:"warnings" yaml:"warnings"`
}

func init() {
	checkCmd.Flags().StringArrayVarP(&checkSources, "registry", "r", nil, "A VDir source to validate (repeatable)")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Promote non-fatal validation warnings to errors")

	rootCmd.AddCommand(checkCmd)
}
