package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/topograph/internal/topology"
	"github.com/elektrokombinacija/topograph/internal/ui"
)

var errIssues = errors.New("document has issues")

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a topology document",
		Long:  "Reports invalid fields, duplicate ids, dangling edges and self loops.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			doc, err := topology.Load(args[0])
			if err != nil {
				fmt.Fprintf(out, "%s %s\n", ui.StatusIcon(false), args[0])
				return fail(cmd, err)
			}

			issues := doc.Issues()
			fmt.Fprintf(out, "%s %s  %s\n",
				ui.StatusIcon(len(issues) == 0),
				args[0],
				ui.Subtle.Sprintf("%d nodes, %d edges", len(doc.Nodes), len(doc.Edges)),
			)
			if len(issues) == 0 {
				return nil
			}

			rows := make([][]string, 0, len(issues))
			for _, issue := range issues {
				rows = append(rows, []string{string(issue.Edge), issue.Err.Error()})
			}
			ui.Table(out, []string{"EDGE", "PROBLEM"}, rows)
			return fail(cmd, fmt.Errorf("%w: %d", errIssues, len(issues)))
		},
	}
}
