package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/govscope/govscope/pkg/journal"
)

var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Show recent score changes between audit runs (default 50)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath := filepath.Join(dataDir(cmd), "journal.sqlite")
		if _, err := os.Stat(dbPath); err != nil {
			return fmt.Errorf("journal not found: %s", dbPath)
		}
		db, err := journal.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		changes, err := db.ListRecentChanges(context.Background(), limit)
		if err != nil {
			return err
		}
		for _, c := range changes {
			ts := c.OccurredAt.Format("2006-01-02 15:04:05")
			fmt.Printf("%s  %s  %-4s  %-14s  %d -> %d\n", ts, c.Month, c.TLD, c.Category, c.OldScore, c.NewScore)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(changesCmd)
	changesCmd.Flags().Int("limit", 50, "Number of recent changes to show")
}
