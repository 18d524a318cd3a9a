package ledger

import (
	"context"
	"fmt"
)

// LedgerRow is one journal entry viewed from the perspective of a single
// home account: the counterpart code, the amount signed relative to the
// home account's natural side, and the running balance after this entry.
// Derived on every query, never stored.
type LedgerRow struct {
	JournalID       string `json:"journal_id"`
	Date            string `json:"date"`
	CounterpartCode string `json:"counterpart_code"`
	CounterpartName string `json:"counterpart_name"`
	Amount          int64  `json:"amount"`
	Balance         int64  `json:"balance"`
	Note            string `json:"note"`
	Checked         bool   `json:"checked"`
}

// Projector builds the chronological running-balance view of one account.
type Projector struct {
	Accounts AccountDirectory
	Entries  JournalRepository
}

// Project fetches every qualifying entry touching accountCode ascending by
// (date, id), walks the full list accumulating the running balance, then
// reverses and returns the requested page newest-first. Pagination happens
// strictly after the walk so balances reflect all prior entries in the
// filtered set, never just the current page.
func (p *Projector) Project(ctx context.Context, accountCode string, f LedgerFilter, page Page) ([]LedgerRow, error) {
	if accountCode == "" {
		return nil, ErrEmptyAccountCode
	}
	home, err := p.Accounts.Account(ctx, accountCode)
	if err != nil {
		return nil, err
	}

	f.AccountCode = accountCode
	entries, err := p.Entries.SearchLedger(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search ledger: %w", err)
	}

	names := map[string]string{}
	rows := make([]LedgerRow, 0, len(entries))
	var balance int64
	for _, e := range entries {
		onDebit := e.DebitAccount == accountCode
		amount := e.DebitAmount
		counterpart := e.CreditAccount
		if !onDebit {
			amount = e.CreditAmount
			counterpart = e.DebitAccount
		}
		// Natural-increase side: debit for L-natured classifications,
		// credit for R-natured ones.
		if onDebit != (home.Classification.Side == SideDebit) {
			amount = -amount
		}
		balance += amount

		name, ok := names[counterpart]
		if !ok {
			if acct, err := p.Accounts.Account(ctx, counterpart); err == nil {
				name = acct.Name
			}
			names[counterpart] = name
		}

		rows = append(rows, LedgerRow{
			JournalID:       e.ID,
			Date:            e.Date,
			CounterpartCode: counterpart,
			CounterpartName: name,
			Amount:          amount,
			Balance:         balance,
			Note:            e.Note,
			Checked:         e.Checked,
		})
	}

	// Newest first.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	page = page.Clamp()
	start := (page.Number - 1) * page.Size
	if start >= len(rows) {
		return []LedgerRow{}, nil
	}
	end := start + page.Size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], nil
}
