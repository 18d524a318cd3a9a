package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okubo/chobo/internal/config"
	"github.com/okubo/chobo/internal/ledger"
	"github.com/okubo/chobo/internal/store"
)

var initNendo string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database and register a fiscal year",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if flagDB != "" {
			cfg.DBPath = flagDB
		}
		nendo := initNendo
		if nendo == "" {
			nendo = cfg.CurrentNendo
		}
		if !ledger.ValidNendo(nendo) {
			return fmt.Errorf("fiscal year %q is not a 4-digit number", nendo)
		}

		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.UpsertFiscalYear(context.Background(), ledger.FiscalYear{Nendo: nendo}); err != nil {
			return err
		}

		start, end := ledger.NendoRange(nendo)
		fmt.Printf("Initialized %s\n", cfg.DBPath)
		fmt.Printf("Fiscal year %s: %s - %s\n", nendo,
			start.Format("2006-01-02"), end.Format("2006-01-02"))
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initNendo, "nendo", "", "Fiscal year to register (defaults to the current one)")
	rootCmd.AddCommand(initCmd)
}
