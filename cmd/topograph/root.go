package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/topograph/internal/config"
	"github.com/elektrokombinacija/topograph/internal/logging"
	"github.com/elektrokombinacija/topograph/internal/ui"
)

var version = "0.3.0"

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "topograph",
	Short:         "Interactive topology graph editor",
	Long:          ui.Brand.Sprint("topograph") + ": drag, connect and inspect topology graphs",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("topograph {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.Path()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(
		editCmd(),
		checkCmd(),
		routeCmd(),
		configCmd(),
	)
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log)
}

// fail prints err in red and returns it so cobra exits non-zero.
func fail(cmd *cobra.Command, err error) error {
	ui.Bad.Fprintf(cmd.ErrOrStderr(), "topograph: %v\n", err)
	return err
}
