package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

// createFooterCmd creates the footer subcommand.
func createFooterCmd(flags *rootFlags) *cobra.Command {
	var hexDump bool

	cmd := &cobra.Command{
		Use:   "footer [location]",
		Short: "Print the footer section of an index file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, cleanup, err := openReader(ctx, flags, args[0])
			if err != nil {
				return err
			}
			defer cleanup()

			span, err := r.ReadFooter(ctx)
			if err != nil {
				return err
			}

			if hexDump {
				fmt.Fprint(cmd.OutOrStdout(), hex.Dump(span.Bytes()))

				return nil
			}

			_, err = cmd.OutOrStdout().Write(span.Bytes())

			return err
		},
	}

	cmd.Flags().BoolVar(&hexDump, "hex", false, "Hex dump instead of raw bytes.")

	return cmd
}
