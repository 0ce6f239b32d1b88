package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/idxgo/rowid"
)

// createRowIDsCmd creates the rowids subcommand.
func createRowIDsCmd(flags *rootFlags) *cobra.Command {
	var (
		part      int
		all       bool
		countOnly bool
	)

	cmd := &cobra.Command{
		Use:   "rowids [location]",
		Short: "Print the row ids stored in an index file",
		Long: `Print the row ids stored in an index file, one per line.

By default only the partition selected with --part is printed. With --all
every partition is printed in order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, cleanup, err := openReader(ctx, flags, args[0])
			if err != nil {
				return err
			}
			defer cleanup()

			count, err := r.PartitionCount(ctx)
			if err != nil {
				return err
			}

			parts := []int{part}
			if all {
				parts = parts[:0]
				for p := range count {
					parts = append(parts, p)
				}
			}

			if err := r.Prefetch(ctx, parts...); err != nil {
				return err
			}

			if countOnly {
				set := rowid.NewSet()
				for _, p := range parts {
					span, err := r.ReadRowIDListPartition(ctx, p)
					if err != nil {
						return err
					}

					if err := set.AddPartition(span.Bytes()); err != nil {
						return err
					}
				}

				fmt.Fprintln(cmd.OutOrStdout(), set.Cardinality())

				return nil
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			defer w.Flush()

			for _, p := range parts {
				span, err := r.ReadRowIDListPartition(ctx, p)
				if err != nil {
					return err
				}

				ids, err := rowid.Decode(span.Bytes())
				if err != nil {
					return err
				}

				for _, id := range ids {
					fmt.Fprintln(w, id)
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&part, "part", "p", 0, "Partition to print.")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Print every partition.")
	cmd.Flags().BoolVar(&countOnly, "count", false, "Print only the number of distinct row ids.")

	return cmd
}
