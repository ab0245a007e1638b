package main

import (
	"fmt"

	"github.com/b5strbal/probability-models/pkg/markup"
	"github.com/spf13/cobra"
)

var areaCmd = &cobra.Command{
	Use:   "area <name>",
	Short: "Print the TikZ area model of an experiment",
	Long: `Prints a tikzpicture of the unit square split into one band per first-stage
happening and one cell per follow-up. Only one- and two-stage experiments fit.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, closeStore, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		columns, _ := cmd.Flags().GetBool("columns")
		scale, _ := cmd.Flags().GetFloat64("scale")

		out, err := eng.AreaModel(cmd.Context(), args[0], markup.WithColumnLabels(columns), markup.WithScale(scale))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(areaCmd)
	areaCmd.Flags().Bool("columns", false, "Write each cell's conditional probability above it")
	areaCmd.Flags().Float64("scale", markup.DefaultAreaOptions().Scale, "Side of the square in centimetres")
}
