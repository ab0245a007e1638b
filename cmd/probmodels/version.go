package main

import (
	"fmt"

	probmodels "github.com/b5strbal/probability-models"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of probmodels",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "probmodels version %s\n", probmodels.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
