package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/topograph/internal/core"
	"github.com/elektrokombinacija/topograph/internal/topology"
	"github.com/elektrokombinacija/topograph/internal/ui"
	"github.com/elektrokombinacija/topograph/internal/vis"
	"github.com/elektrokombinacija/topograph/internal/vis/route"
)

func routeCmd() *cobra.Command {
	var (
		markers int
		phase   float64
	)
	cmd := &cobra.Command{
		Use:   "route <file> [edge-id...]",
		Short: "Print the bezier route of each edge",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fail(cmd, err)
			}
			doc, err := topology.Load(args[0])
			if err != nil {
				return fail(cmd, err)
			}

			want := make(map[core.EdgeID]bool, len(args)-1)
			for _, id := range args[1:] {
				want[core.EdgeID(id)] = true
			}

			geom := vis.Geometry(cfg)
			headers := []string{"EDGE", "PATH", "MIDPOINT"}
			if markers > 0 {
				headers = append(headers, "MARKERS")
			}
			var rows [][]string
			for _, e := range doc.Graph().Resolve() {
				if len(want) > 0 && !want[e.Edge.ID] {
					continue
				}
				r := route.EdgeRoute(e, geom)
				row := []string{string(e.Edge.ID), r.Path.String(), r.Midpoint.String()}
				if markers > 0 {
					var pts []string
					for _, p := range route.FlowMarkers(r.Path, markers, phase) {
						pts = append(pts, fmt.Sprintf("(%.1f,%.1f)", p.X, p.Y))
					}
					row = append(row, strings.Join(pts, " "))
				}
				rows = append(rows, row)
			}

			if len(rows) == 0 {
				ui.Warn.Fprintln(cmd.OutOrStdout(), "no routable edges")
				return nil
			}
			ui.Table(cmd.OutOrStdout(), headers, rows)
			return nil
		},
	}
	cmd.Flags().IntVar(&markers, "markers", 0, "also print this many flow marker positions")
	cmd.Flags().Float64Var(&phase, "phase", 0, "flow marker phase in [0,1)")
	return cmd
}
