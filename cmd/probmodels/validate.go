package main

import (
	"errors"
	"fmt"

	"github.com/b5strbal/probability-models/pkg/adapters/file"
	"github.com/b5strbal/probability-models/pkg/domain"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file...>",
	Short: "Check experiment definition files",
	Long: `Loads each YAML or JSON definition and checks that every set of follow-ups
has non-negative probabilities summing to exactly 1. Every problem is reported.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0

		for _, path := range args {
			if err := validateFile(path); err != nil {
				failed++
				fmt.Fprintf(out, "FAIL %s\n", path)
				if violations := domain.Violations(err); len(violations) > 0 {
					for _, v := range violations {
						fmt.Fprintf(out, "  - %s\n", v)
					}
				} else {
					fmt.Fprintf(out, "  - %v\n", err)
				}
				continue
			}
			fmt.Fprintf(out, "ok   %s\n", path)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d definitions are invalid", failed, len(args))
		}
		return nil
	},
}

func validateFile(path string) error {
	def, err := file.LoadFile(path)
	if err != nil {
		return err
	}
	exp, err := def.Experiment()
	if err != nil {
		return err
	}
	if len(exp.Happenings()) == 0 {
		return errors.New("definition has no happenings")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
