package cmd

import (
	"github.com/spf13/cobra"
)

var (
	flagServer string
	flagDB     string
)

var rootCmd = &cobra.Command{
	Use:   "chobo",
	Short: "Double-entry bookkeeping ledger",
	Long:  "A double-entry bookkeeping ledger backed by SQLite: journal validation, running-balance account views, and breakdown reports by account, group and classification.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "http://localhost:8787", "Server address")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (overrides CHOBO_DB)")
}

func Execute() error {
	return rootCmd.Execute()
}
