package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okubo/chobo/internal/client"
	"github.com/okubo/chobo/internal/config"
	"github.com/okubo/chobo/internal/ledger"
)

var (
	ledNendo string
	ledMonth string
	ledPage  int
	ledSize  int
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger <account-code>",
	Short: "Show the running-balance view of an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		nendo := ledNendo
		if nendo == "" {
			nendo = config.Load().CurrentNendo
		}

		result, err := c.Ledger(context.Background(), args[0],
			ledger.LedgerFilter{Nendo: nendo, Month: ledMonth},
			ledger.Page{Number: ledPage, Size: ledSize})
		if err != nil {
			return err
		}

		fmt.Printf("%-10s %-6s %-24s %12s %12s  %s\n", "DATE", "CODE", "COUNTERPART", "AMOUNT", "BALANCE", "NOTE")
		for _, row := range result.Rows {
			fmt.Printf("%-10s %-6s %-24s %12d %12d  %s\n",
				row.Date, row.CounterpartCode, row.CounterpartName, row.Amount, row.Balance, row.Note)
		}
		fmt.Printf("\n%d rows (page %d, %d total)\n", len(result.Rows), result.Page, result.Total)
		return nil
	},
}

func init() {
	ledgerCmd.Flags().StringVar(&ledNendo, "nendo", "", "Fiscal year (defaults to the current one)")
	ledgerCmd.Flags().StringVar(&ledMonth, "month", "", "Calendar month filter, 01-12")
	ledgerCmd.Flags().IntVar(&ledPage, "page", 1, "Page number")
	ledgerCmd.Flags().IntVar(&ledSize, "size", 25, "Page size")
	rootCmd.AddCommand(ledgerCmd)
}
