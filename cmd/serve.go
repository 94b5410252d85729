package cmd

import (
	"github.com/spf13/cobra"

	"github.com/govscope/govscope/internal/server"
	"github.com/govscope/govscope/pkg/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the persisted reports over a read-only JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		listenAddr, _ := cmd.Flags().GetString("listen")
		return server.New(store.New(dataDir(cmd))).Start(listenAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", ":8080", "HTTP listen address")
}
