package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okubo/chobo/internal/client"
	"github.com/okubo/chobo/internal/config"
	"github.com/okubo/chobo/internal/ledger"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Manage journal entries",
}

var (
	jrnNendo  string
	jrnDate   string
	jrnDebit  string
	jrnCredit string
	jrnAmount int64
	jrnNote   string
)

var journalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a two-sided journal entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		nendo := jrnNendo
		if nendo == "" {
			nendo = config.Load().CurrentNendo
		}

		entry, err := c.CreateJournal(context.Background(), ledger.JournalCreate{
			Nendo:         nendo,
			Date:          jrnDate,
			DebitAccount:  jrnDebit,
			DebitAmount:   jrnAmount,
			CreditAccount: jrnCredit,
			CreditAmount:  jrnAmount,
			Note:          jrnNote,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Journal entry created: %s\n", entry.ID)
		fmt.Printf("  %s  DR %-4s  CR %-4s  %d\n", entry.Date, entry.DebitAccount, entry.CreditAccount, entry.DebitAmount)
		return nil
	},
}

var (
	updNote    string
	updChecked bool
	updDelete  bool
)

var journalUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a journal entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		patch := ledger.JournalPatch{}
		if cmd.Flags().Changed("note") {
			patch.Note = &updNote
		}
		if cmd.Flags().Changed("checked") {
			patch.Checked = &updChecked
		}
		if cmd.Flags().Changed("delete") {
			patch.Deleted = &updDelete
		}

		entry, err := c.UpdateJournal(context.Background(), args[0], patch)
		if err != nil {
			return err
		}

		fmt.Printf("Journal entry updated: %s (updated_at %s)\n", entry.ID, entry.UpdatedAt.Format("2006-01-02 15:04:05"))
		return nil
	},
}

func init() {
	journalAddCmd.Flags().StringVar(&jrnNendo, "nendo", "", "Fiscal year (defaults to the current one)")
	journalAddCmd.Flags().StringVar(&jrnDate, "date", "", "Transaction date, YYYYMMDD")
	journalAddCmd.Flags().StringVar(&jrnDebit, "debit", "", "Debit account code")
	journalAddCmd.Flags().StringVar(&jrnCredit, "credit", "", "Credit account code")
	journalAddCmd.Flags().Int64Var(&jrnAmount, "amount", 0, "Amount in yen")
	journalAddCmd.Flags().StringVar(&jrnNote, "note", "", "Free-text note")

	journalUpdateCmd.Flags().StringVar(&updNote, "note", "", "New note")
	journalUpdateCmd.Flags().BoolVar(&updChecked, "checked", false, "Checked flag")
	journalUpdateCmd.Flags().BoolVar(&updDelete, "delete", false, "Soft-delete flag")

	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalUpdateCmd)
	rootCmd.AddCommand(journalCmd)
}
