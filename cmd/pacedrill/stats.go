package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <item>...",
		Short: "Show the practice state of the given items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printStats(args)
		},
	}
}

func (a *app) printStats(items []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tBAND\tRECALL\tAUTO\tEWMA MS\tSAMPLES")

	for _, id := range items {
		band, err := a.selector.DisplayBand(id)
		if err != nil {
			return err
		}
		st, err := a.selector.Stats(id)
		if err != nil {
			return err
		}
		if st == nil {
			fmt.Fprintf(w, "%s\t%s\t-\t-\t-\t0\n", id, band)
			continue
		}

		recall := "-"
		if r, ok, err := a.selector.Recall(id); err != nil {
			return err
		} else if ok {
			recall = fmt.Sprintf("%.2f", r)
		}
		auto := "-"
		if v, ok, err := a.selector.Automaticity(id); err != nil {
			return err
		} else if ok {
			auto = fmt.Sprintf("%.2f", v)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\t%d\n",
			id, band, recall, auto, st.Ewma, st.SampleCount)
	}
	return w.Flush()
}
