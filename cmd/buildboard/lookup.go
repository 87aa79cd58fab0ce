package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <article-number>",
		Short: "Look an article number up in the item catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			item, err := a.board.LookupItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("article number %s not found", args[0])
			}
			return writeJSON(cmd.OutOrStdout(), item)
		},
	}
	return cmd
}
