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
	bdNendo       string
	bdClass       string
	bdGranularity string
	bdSide        string
	bdTimeUnit    string
)

var breakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Show a breakdown report for one classification",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		nendo := bdNendo
		if nendo == "" {
			nendo = config.Load().CurrentNendo
		}

		result, err := c.Breakdown(context.Background(), []ledger.BreakdownRequest{{
			Nendo:              nendo,
			ClassificationCode: bdClass,
			Granularity:        ledger.Granularity(bdGranularity),
			Side:               ledger.BreakdownSide(bdSide),
			TimeUnit:           ledger.TimeUnit(bdTimeUnit),
		}})
		if err != nil {
			return err
		}

		for _, m := range result.Monthly {
			fmt.Printf("Monthly breakdown: %s / %s / %s / %s\n",
				m.Request.Nendo, m.Request.ClassificationCode, m.Request.Granularity, m.Request.Side)
			for _, s := range m.Series {
				fmt.Printf("  %-6s %-24s", s.Code, s.Name)
				for _, mv := range s.Months {
					fmt.Printf("  %s:%d", mv.Month, mv.Value)
				}
				fmt.Println()
			}
		}
		for _, a := range result.Annual {
			fmt.Printf("Annual breakdown: %s / %s / %s / %s\n",
				a.Request.Nendo, a.Request.ClassificationCode, a.Request.Granularity, a.Request.Side)
			for _, t := range a.Totals {
				fmt.Printf("  %-6s %-24s %12d\n", t.Code, t.Name, t.Value)
			}
		}
		return nil
	},
}

func init() {
	breakdownCmd.Flags().StringVar(&bdNendo, "nendo", "", "Fiscal year (defaults to the current one)")
	breakdownCmd.Flags().StringVar(&bdClass, "class", "", "Account classification code")
	breakdownCmd.Flags().StringVar(&bdGranularity, "granularity", "account", "Rollup level: account, group, classification")
	breakdownCmd.Flags().StringVar(&bdSide, "side", "net", "Side: karikata, kasikata, net")
	breakdownCmd.Flags().StringVar(&bdTimeUnit, "time-unit", "annual", "Time unit: month, annual")
	rootCmd.AddCommand(breakdownCmd)
}
