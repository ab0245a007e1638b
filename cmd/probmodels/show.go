package main

import (
	"fmt"

	"github.com/b5strbal/probability-models/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show every outcome of an experiment with its probability",
	Long:  `Prints a table of outcomes. On a terminal the table is rendered; otherwise the markdown is printed as is.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, logger, closeStore, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		md, err := eng.Summary(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !isTerminal(out) {
			fmt.Fprint(out, md)
			return nil
		}

		render, err := tui.NewRenderer()
		if err != nil {
			logger.Debug("falling back to plain markdown", "error", err)
			fmt.Fprint(out, md)
			return nil
		}
		rendered, err := render(md)
		if err != nil {
			return fmt.Errorf("failed to render summary: %w", err)
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
