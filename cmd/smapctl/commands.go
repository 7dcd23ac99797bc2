package main

import (
	"fmt"
	"strconv"

	"github.com/ZanzyTHEbar/slicemap/smap/table"

	"github.com/spf13/cobra"
)

func newSliceCmd(a *app) *cobra.Command {
	var file, on string
	cmd := &cobra.Command{
		Use:   "slice KEY...",
		Short: "Print the rows that share each key",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, keys []string) error {
			o, err := parseOn(on)
			if err != nil {
				return err
			}
			tbl, err := a.load(file)
			if err != nil {
				return err
			}

			var results [][]table.Pair[string, float64]
			if o == table.AOuter {
				results, err = tbl.SliceManyOnA(cmd.Context(), keys, a.cfg.Batch.MaxWorkers)
			} else {
				results, err = tbl.SliceManyOnB(cmd.Context(), keys, a.cfg.Batch.MaxWorkers)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, key := range keys {
				fmt.Fprintf(out, "[%s]\n", key)
				for _, p := range results[i] {
					fmt.Fprintf(out, "%s\t%s\n", p.Key, formatValue(p.Value))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV dataset")
	cmd.Flags().StringVar(&on, "on", "a", "key to slice on (a or b)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newSumCmd(a *app) *cobra.Command {
	var file, on string
	cmd := &cobra.Command{
		Use:   "sum KEY",
		Short: "Print the sum of the values that share a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := parseOn(on)
			if err != nil {
				return err
			}
			tbl, err := a.load(file)
			if err != nil {
				return err
			}

			var total float64
			if o == table.AOuter {
				total = table.SumOnA(tbl, args[0])
			} else {
				total = table.SumOnB(tbl, args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatValue(total))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV dataset")
	cmd.Flags().StringVar(&on, "on", "a", "key to sum on (a or b)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print entry and key counts of a dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl, err := a.load(file)
			if err != nil {
				return err
			}
			if errs := tbl.Validate(); len(errs) > 0 {
				return fmt.Errorf("table layout invalid: %v", errs[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "entries\t%d\n", tbl.Len())
			fmt.Fprintf(out, "keys_a\t%d\n", len(tbl.KeysA()))
			fmt.Fprintf(out, "keys_b\t%d\n", len(tbl.KeysB()))
			fmt.Fprintf(out, "orientation\t%s\n", tbl.Orientation())
			fmt.Fprintf(out, "total\t%s\n", formatValue(table.Sum(tbl)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV dataset")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
