package main

import (
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/topograph/internal/topology"
	"github.com/elektrokombinacija/topograph/internal/vis"
)

func editCmd() *cobra.Command {
	var (
		readOnly bool
		noWatch  bool
	)
	cmd := &cobra.Command{
		Use:   "edit <file>",
		Short: "Open a topology document in the editor window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fail(cmd, err)
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return fail(cmd, err)
			}

			store, err := topology.Open(args[0], logger)
			if err != nil {
				return fail(cmd, err)
			}
			application, err := vis.NewApp(vis.Options{
				Config:   cfg,
				Store:    store,
				ReadOnly: readOnly,
				Watch:    !noWatch,
				Logger:   logger,
			})
			if err != nil {
				return fail(cmd, err)
			}

			go func() {
				window := new(app.Window)
				window.Option(
					app.Title("topograph: "+args[0]),
					app.Size(unit.Dp(1400), unit.Dp(900)),
				)
				if err := application.Run(window); err != nil {
					logger.Fatal("editor exited", zap.Error(err))
				}
				_ = logger.Sync()
				os.Exit(0)
			}()
			app.Main()
			return nil
		},
	}
	cmd.Flags().BoolVar(&readOnly, "readonly", false, "disable dragging and connecting")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the document when it changes on disk")
	return cmd
}
