package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/govscope/govscope/pkg/ranking"
	"github.com/govscope/govscope/pkg/store"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print per-metric averages across all sites of a month.",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := store.New(dataDir(cmd))

		month, _ := cmd.Flags().GetString("month")
		if month == "" {
			latest := st.LoadManifest().Latest()
			if latest == nil {
				fmt.Println("No reports yet. Run 'govscope audit' first.")
				return nil
			}
			month = latest.Month
		}

		summary := st.LoadSummary(month)
		if summary == nil || len(summary.Reports) == 0 {
			fmt.Printf("No reports for %s.\n", month)
			return nil
		}

		scores, err := ranking.Aggregate(summary)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "MONTH\tSITES\tPERF\tA11Y\tBEST\tSEO\t")
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t\n", month, len(summary.Reports),
			scores.Performance, scores.Accessibility, scores.BestPractices, scores.SEO)
		w.Flush()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().String("month", "", "Month key (YYYY-MM, default: latest)")
}
