package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/idxgo"
	"github.com/hupe1980/idxgo/rowid"
)

// createVerifyCmd creates the verify subcommand.
func createVerifyCmd(flags *rootFlags) *cobra.Command {
	var deep bool

	cmd := &cobra.Command{
		Use:   "verify [location]",
		Short: "Check that an index file is well formed",
		Long: `Check that an index file is well formed.

Verifies the format version, the section layout recorded in the trailer and
that the footer is readable. With --deep every row-id partition is read and
decoded as well.`,
		Args: cobra.ExactArgs(1),
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

			if err := idxgo.CheckVersion(version); err != nil {
				return err
			}

			layout, err := r.Layout(ctx)
			if err != nil {
				return err
			}

			if _, err := r.ReadFooter(ctx); err != nil {
				return fmt.Errorf("footer: %w", err)
			}

			count, err := r.PartitionCount(ctx)
			if err != nil {
				return err
			}

			if deep {
				for part := range count {
					span, err := r.ReadRowIDListPartition(ctx, part)
					if err != nil {
						return fmt.Errorf("partition %d: %w", part, err)
					}

					if _, err := rowid.Decode(span.Bytes()); err != nil {
						return fmt.Errorf("partition %d: %w", part, err)
					}
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (version %d, %d bytes, %d partition(s))\n",
				args[0], version, layout.FileLength, count)

			return nil
		},
	}

	cmd.Flags().BoolVar(&deep, "deep", false, "Also read and decode every row-id partition.")

	return cmd
}
