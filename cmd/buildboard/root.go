package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "buildboard",
		Short:        "Build request board for the recovery build room",
		SilenceUsage: true,
	}
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newLookupCmd())
	cmd.AddCommand(newBoardCmd())
	return cmd
}
