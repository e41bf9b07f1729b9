package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fadna/oms/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the read-only dashboard over HTTP",
	Long: `Start a small HTTP server exposing the dashboard stats, the daily
agent/product matrix and the pending edit-request count, for a wall
display or monitoring probe. Requests proxy through the stored session;
the server never mutates anything.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, client, _, err := loadSession()
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Serve.Addr
	}

	srv := server.NewServer(client)
	fmt.Printf("🚀 Dashboard server listening on %s\n", addr)
	if err := srv.Start(addr); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
