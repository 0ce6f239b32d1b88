package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// createInspectCmd creates the inspect subcommand.
func createInspectCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [location]",
		Short: "Print the section layout of an index file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, cleanup, err := openReader(ctx, flags, args[0])
			if err != nil {
				return err
			}
			defer cleanup()

			version, err := r.ReadVersion(ctx)
			if err != nil {
				return err
			}

			layout, err := r.Layout(ctx)
			if err != nil {
				return err
			}

			count, err := r.PartitionCount(ctx)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "location:     %s\n", args[0])
			fmt.Fprintf(w, "file length:  %d bytes\n", layout.FileLength)
			fmt.Fprintf(w, "version:      %d\n", version)
			fmt.Fprintf(w, "nodes:        [%d, %d)  %d bytes\n",
				layout.NodesIndex, layout.RowIDListIndex, layout.RowIDListIndex-layout.NodesIndex)
			fmt.Fprintf(w, "row-id list:  [%d, %d)  %d bytes  %d partition(s)\n",
				layout.RowIDListIndex, layout.FooterIndex, layout.RowIDListLength, count)
			fmt.Fprintf(w, "footer:       [%d, %d)  %d bytes\n",
				layout.FooterIndex, layout.FooterIndex+layout.FooterLength, layout.FooterLength)

			return nil
		},
	}

	return cmd
}
