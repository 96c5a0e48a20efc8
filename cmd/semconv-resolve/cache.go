package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/convreg/semconv-resolver/pkg/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local vdir fetch cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached resolved registry and fetched source",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dir := cfg.GetCacheDir()

		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("clearing cache at %s: %w", dir, err)
		}

		return printResult(cacheClearResult{Dir: dir, Status: "cleared"}, func() {
			fmt.Printf("Cache at %s cleared.\n", dir)
		})
	},
}

type cacheClearResult struct {
	Dir    string `json:"dir" yaml:"dir"`
	Status string `json:"status" yaml:"status"`
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
