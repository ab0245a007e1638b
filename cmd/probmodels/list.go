package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available experiments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, closeStore, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx := cmd.Context()
		names, err := eng.List(ctx)
		if err != nil {
			return err
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		out := cmd.OutOrStdout()
		for _, name := range names {
			if !verbose {
				fmt.Fprintln(out, name)
				continue
			}
			desc, err := eng.Describe(ctx, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-20s %s\n", name, desc)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolP("verbose", "v", false, "Show descriptions")
}
