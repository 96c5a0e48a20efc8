package main

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	verengine "github.com/convreg/semconv-resolver/pkg/version"
)

var (
	versionsFile   string
	versionsSignal string
	versionsMetric bool
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Query the VersionEngine's rename history",
}

var versionsChangesForCmd = &cobra.Command{
	Use:   "changes-for <version> <old-name>",
	Short: "Resolve an old attribute or metric name forward to a given version",
	Long: `changes-for loads a versions.yaml file and composes every rename
declared at or before <version>, then resolves <old-name> through the full
chain of renames — not just the first hop — to the name it has at
<version>.

Examples:
  semconv-resolve versions changes-for 1.10.0 http.method --file versions.yaml
  semconv-resolve versions changes-for 2.0.0 process.runtime.jvm.memory.usage --file versions.yaml --metric`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionsFile == "" {
			return fmt.Errorf("--file is required")
		}

		target, err := semver.NewVersion(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		oldName := args[1]

		v, err := verengine.Load(versionsFile)
		if err != nil {
			return err
		}

		changes := v.ChangesFor(target)

		var newName string
		if versionsMetric {
			newName = changes.GetMetricName(oldName)
		} else {
			switch versionsSignal {
			case "resource":
				newName = changes.ResourceAttributeChanges().GetAttributeName(oldName)
			case "log":
				newName = changes.LogAttributeChanges().GetAttributeName(oldName)
			case "span":
				newName = changes.SpanAttributeChanges().GetAttributeName(oldName)
			default:
				return fmt.Errorf("unknown --signal %q, expected resource, log, or span", versionsSignal)
			}
		}

		return printResult(changesForResult{
			Version: target.String(),
			OldName: oldName,
			NewName: newName,
		}, func() {
			fmt.Println(newName)
		})
	},
}

type changesForResult struct {
	Version string `json:"version" yaml:"version"`
	OldName string `json:"old_name" yaml:"old_name"`
	NewName string `json:"new_name" yaml:"new_name"`
}

func init() {
	versionsChangesForCmd.Flags().StringVar(&versionsFile, "file", "", "Path to the versions.yaml file")
	versionsChangesForCmd.Flags().StringVar(&versionsSignal, "signal", "span", "Attribute signal to query: resource, log, span")
	versionsChangesForCmd.Flags().BoolVar(&versionsMetric, "metric", false, "Treat <old-name> as a metric name instead of an attribute name")

	versionsCmd.AddCommand(versionsChangesForCmd)
	rootCmd.AddCommand(versionsCmd)
}
