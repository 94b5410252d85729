package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/govscope/govscope/pkg/ranking"
	"github.com/govscope/govscope/pkg/store"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank all sites of a month by one metric, with deltas vs the previous month",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := store.New(dataDir(cmd))

		month, _ := cmd.Flags().GetString("month")
		manifest := st.LoadManifest()
		if month == "" {
			latest := manifest.Latest()
			if latest == nil {
				fmt.Println("No reports yet. Run 'govscope audit' first.")
				return nil
			}
			month = latest.Month
		}

		metricName, _ := cmd.Flags().GetString("metric")
		metric := ranking.Metric(metricName)
		if !metric.Valid() {
			return fmt.Errorf("unknown metric %q (want performance, accessibility, best-practices or seo)", metricName)
		}

		current := st.LoadSummary(month)
		previous := st.LoadSummary(manifest.PreviousMonth(month))

		table := ranking.Rank(current, previous, metric)
		if len(table.Entries) == 0 {
			fmt.Printf("No reports for %s.\n", month)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintf(w, "RANK\tSITE\t%s\tCHANGE\t\n", metric)
		for _, e := range table.Entries {
			change := "new"
			if e.Delta != nil {
				change = fmt.Sprintf("%+d", *e.Delta)
			}
			fmt.Fprintf(w, "%d\t%s (%s)\t%d\t%s\t\n", e.Rank, e.Name, e.TLD, e.Score, change)
		}
		w.Flush()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)
	rankCmd.Flags().String("month", "", "Month key (YYYY-MM, default: latest)")
	rankCmd.Flags().StringP("metric", "m", "performance", "Metric to rank by")
}
