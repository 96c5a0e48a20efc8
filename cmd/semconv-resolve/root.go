package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/convreg/semconv-resolver/pkg/config"
)

var cacheDir string
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "semconv-resolve",
	Short: "Resolve OpenTelemetry semantic convention registries",
	Long: `semconv-resolve loads semantic convention YAML from a local folder,
archive, git repository, or OCI artifact, resolves extends/ref/include/
any_of across every group, and prints the denormalized registry.

Environment Variables:
  SEMCONV_CACHE_DIR  Override the vdir fetch cache directory`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cacheDir != "" {
			config.SetCacheDirOverride(cacheDir)
		}
	},
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "Override the vdir fetch cache directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.Version = version
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
