package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/b5strbal/probability-models/internal/dto"
	"github.com/b5strbal/probability-models/pkg/adapters/file"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save <file...>",
	Short: "Store experiment definition files in Redis",
	Long: `Loads each YAML or JSON definition, checks it, and stores it in the Redis
instance given by --redis or PROBMODELS_REDIS_ADDR under its name. Nothing is
written unless every file is valid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := settings(cmd)
		if err != nil {
			return err
		}
		if cfg.RedisAddr == "" {
			return errors.New("save needs --redis or PROBMODELS_REDIS_ADDR")
		}

		defs := make([]dto.Definition, 0, len(args))
		seen := make(map[string]string, len(args))
		for _, path := range args {
			def, err := file.LoadFile(path)
			if err != nil {
				return err
			}
			if _, err := def.Experiment(); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if prev, dup := seen[def.Name]; dup {
				return fmt.Errorf("%s and %s both define %q", prev, path, def.Name)
			}
			seen[def.Name] = path
			defs = append(defs, def)
		}

		store, closeStore := openRedis(cfg, logger)
		defer closeStore()

		for _, def := range defs {
			data, err := json.Marshal(def)
			if err != nil {
				return fmt.Errorf("failed to marshal %q: %w", def.Name, err)
			}
			if err := store.SaveDefinition(cmd.Context(), def.Name, data); err != nil {
				return err
			}
			logger.Debug("saved experiment", "experiment", def.Name, "file", seen[def.Name])
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", def.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
}
