package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/convreg/semconv-resolver/pkg/logging"
)

var (
	resolveSources     []string
	resolveRegistryURL string
	resolveStrict      bool
	resolveNoCache     bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve one or more semantic convention registries",
	Long: `resolve fetches every --registry source, loads its semantic convention
YAML, and runs the four-stage resolution pipeline (extends, ref, include,
any_of) to produce a single denormalized registry.

Multiple --registry flags are fetched concurrently and merged before
resolution runs.

Examples:
  semconv-resolve resolve --registry ./my-semconv
  semconv-resolve resolve --registry ./core --registry ./extra -o json
  semconv-resolve resolve --registry https://github.com/open-telemetry/semantic-conventions.git@v1.27.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(resolveSources) == 0 {
			return fmt.Errorf("at least one --registry source is required")
		}

		logger, flush, err := logging.New(verbose)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer flush()
		ctx := logging.Into(context.Background(), logger)

		registry, warnings, err := runPipeline(ctx, pipelineOptions{
			RegistryURL: resolveRegistryURL,
			Sources:     resolveSources,
			Strict:      resolveStrict,
			NoCache:     resolveNoCache,
		})
		printDiagnostics(warnings)
		if err != nil {
			return err
		}

		return printResult(registry, func() {
			w := newTabWriter()
			fmt.Fprintln(w, "GROUP\tTYPE\tATTRIBUTES")
			fmt.Fprintln(w, "-----\t----\t----------")
			for _, g := range registry.Groups {
				fmt.Fprintf(w, "%s\t%s\t%d\n", g.ID, g.Type, len(g.Attributes))
			}
			w.Flush()
			fmt.Fprintf(os.Stdout, "\n%d groups, %d catalog attributes\n", len(registry.Groups), len(registry.Catalog))
		})
	},
}

func init() {
	resolveCmd.Flags().StringArrayVarP(&resolveSources, "registry", "r", nil, "A VDir source to resolve (repeatable)")
	resolveCmd.Flags().StringVar(&resolveRegistryURL, "registry-url", "", "URL to tag the resolved registry with")
	resolveCmd.Flags().BoolVar(&resolveStrict, "strict", false, "Promote non-fatal validation warnings to errors")
	resolveCmd.Flags().BoolVar(&resolveNoCache, "no-cache", false, "Bypass the resolved-registry cache")

	rootCmd.AddCommand(resolveCmd)
}
