package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "probmodels",
	Short: "probmodels draws area and tree models of multi-stage random experiments",
	Long: `probmodels turns finite, multi-stage random experiments into the area and
tree diagrams used in introductory probability, as TikZ or Mermaid markup.

Experiments come from the built-in course catalog, from a directory of YAML/JSON
definition files (--dir) or from Redis (--redis).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", "", "Directory containing experiment definition files (overrides PROBMODELS_DIR)")
	rootCmd.PersistentFlags().String("redis", "", "Redis address to load experiments from (overrides PROBMODELS_REDIS_ADDR)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
