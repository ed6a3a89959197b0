package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/topograph/internal/config"
	"github.com/elektrokombinacija/topograph/internal/ui"
)

func configCmd() *cobra.Command {
	var initFile bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if initFile {
				path := configPath
				if path == "" {
					path = config.Path()
				}
				if err := config.Save(config.Default(), path); err != nil {
					return fail(cmd, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", ui.StatusIcon(true), path)
				return nil
			}

			cfg, err := loadConfig()
			if err != nil {
				return fail(cmd, err)
			}
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
		},
	}
	cmd.Flags().BoolVar(&initFile, "init", false, "write the default configuration to the config file")
	return cmd
}
