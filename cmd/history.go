package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/govscope/govscope/pkg/ranking"
	"github.com/govscope/govscope/pkg/store"
)

var historyCmd = &cobra.Command{
	Use:   "history <tld>",
	Short: "Show one site's score history across all audited months",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := store.New(dataDir(cmd))

		series := ranking.History(st.LoadAllSummaries(), args[0])
		if series == nil {
			fmt.Printf("No history for %q.\n", args[0])
			return nil
		}

		fmt.Printf("%s (%s)\n\n", series.Name, series.TLD)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "MONTH\tPERF\tA11Y\tBEST\tSEO\t")
		// The four series are month-aligned, so one index walks them all.
		for i, p := range series.Performance {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t\n",
				p.Month, p.Value,
				series.Accessibility[i].Value,
				series.BestPractices[i].Value,
				series.SEO[i].Value)
		}
		w.Flush()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
