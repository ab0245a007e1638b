package main

import (
	"fmt"

	"github.com/b5strbal/probability-models/internal/dto"
	"github.com/b5strbal/probability-models/pkg/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var expandCmd = &cobra.Command{
	Use:   "expand <choices>",
	Short: "Expand equally likely choices into repeated picks",
	Long: `Treats each character of <choices> as one equally likely choice and prints the
happenings of picking --repeats times. Use --yaml to print a definition file
that can be edited and loaded with --dir.`,
	Example: `  probmodels expand QQDN --repeats 2
  probmodels expand HT --repeats 3 --replace --yaml > coins.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repeats, _ := cmd.Flags().GetInt("repeats")
		replacing, _ := cmd.Flags().GetBool("replace")
		asYAML, _ := cmd.Flags().GetBool("yaml")

		exp, err := domain.Picking(domain.Labels(args[0]), repeats, replacing)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asYAML {
			data, err := yaml.Marshal(dto.FromExperiment("", "", exp))
			if err != nil {
				return fmt.Errorf("failed to encode definition: %w", err)
			}
			_, err = out.Write(data)
			return err
		}

		for _, leaf := range exp.Leaves() {
			fmt.Fprintf(out, "%-12s %s\n", leaf.Outcome(), leaf.Cumulative)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)
	expandCmd.Flags().IntP("repeats", "n", 1, "Number of picks")
	expandCmd.Flags().Bool("replace", false, "Put each pick back before the next")
	expandCmd.Flags().Bool("yaml", false, "Print a YAML definition instead of the outcomes")
}
