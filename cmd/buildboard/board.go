package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"buildboard-api/internal/service"
	"buildboard-api/pkg/uid"
)

func newBoardCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Print the ranked board and the build room capacity",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			view := a.board.Board()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), view)
			}
			return printBoard(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the board as JSON")
	return cmd
}

func printBoard(out io.Writer, view service.BoardView) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	for _, col := range view.Columns {
		fmt.Fprintf(tw, "%s (%d)\n", col.Label, len(col.Requests))
		for _, r := range col.Requests {
			flags := ""
			if r.MissingStock {
				flags += " [missing stock]"
			}
			if r.LateDelivery {
				flags += " [late delivery]"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s%s\n",
				uid.Short(r.ID), r.RequesterRole, r.ProjectDueDate, r.ProjectName, r.ItemName, flags)
		}
	}
	fmt.Fprintf(tw, "\nRequests: %d\nCapacity: %d/%d (%d%%, %s)\n",
		view.Total, view.Capacity.Ready, view.Capacity.Capacity, view.Capacity.Percent, view.Capacity.Tier)

	return tw.Flush()
}
