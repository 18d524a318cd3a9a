package ledger

import (
	"context"
	"time"
)

// JournalEntry is the atomic unit of the ledger: one balanced double-entry
// posting. Amounts are int64 yen. Deleted rows are kept but excluded from
// every read path; nothing in this package deletes physically.
type JournalEntry struct {
	ID            string    `json:"id"`
	Nendo         string    `json:"nendo"`
	Date          string    `json:"date"`
	DebitAccount  string    `json:"debit_account"`
	DebitAmount   int64     `json:"debit_amount"`
	CreditAccount string    `json:"credit_account"`
	CreditAmount  int64     `json:"credit_amount"`
	Note          string    `json:"note"`
	Checked       bool      `json:"checked"`
	Deleted       bool      `json:"deleted,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// JournalCreate is the two-sided creation request: every field is required.
type JournalCreate struct {
	Nendo         string `json:"nendo"`
	Date          string `json:"date"`
	DebitAccount  string `json:"debit_account"`
	DebitAmount   int64  `json:"debit_amount"`
	CreditAccount string `json:"credit_account"`
	CreditAmount  int64  `json:"credit_amount"`
	Note          string `json:"note"`
	Checked       bool   `json:"checked"`
}

// SinglePosting is the one-sided creation request: a posting against one
// account with an implicit counter-account supplied by configuration.
// Exactly one of DebitAmount/CreditAmount must be present.
type SinglePosting struct {
	Nendo        string `json:"nendo"`
	Date         string `json:"date"`
	Account      string `json:"account"`
	DebitAmount  *int64 `json:"debit_amount"`
	CreditAmount *int64 `json:"credit_amount"`
	Note         string `json:"note"`
}

// JournalPatch is a partial update: nil fields are left untouched.
type JournalPatch struct {
	Nendo         *string `json:"nendo"`
	Date          *string `json:"date"`
	DebitAccount  *string `json:"debit_account"`
	DebitAmount   *int64  `json:"debit_amount"`
	CreditAccount *string `json:"credit_account"`
	CreditAmount  *int64  `json:"credit_amount"`
	Note          *string `json:"note"`
	Checked       *bool   `json:"checked"`
	Deleted       *bool   `json:"deleted"`
}

// Empty reports whether the patch touches no field at all. An empty patch is
// still a valid update: it advances updated_at and nothing else.
func (p JournalPatch) Empty() bool {
	return p.Nendo == nil && p.Date == nil &&
		p.DebitAccount == nil && p.DebitAmount == nil &&
		p.CreditAccount == nil && p.CreditAmount == nil &&
		p.Note == nil && p.Checked == nil && p.Deleted == nil
}

// LedgerFilter narrows the set of journal rows considered by the ledger
// projection and by list/count queries. AccountCode matches rows where the
// account appears on either side.
type LedgerFilter struct {
	AccountCode string
	Nendo       string
	Month       string // "01".."12", matches substr(date,5,2)
	Note        string // substring match
	Checked     *bool
}

// Page selects a slice of an already-ordered result set.
type Page struct {
	Number int
	Size   int
}

// DefaultPageSize is used when a page size of zero or less is requested.
const DefaultPageSize = 25

// Clamp normalizes out-of-range page parameters instead of rejecting them.
func (p Page) Clamp() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	return p
}

// JournalRepository is the durable store of journal rows. Implementations
// must return SearchLedger results ascending by (date, id) and must advance
// updated_at on every update, including field-less ones.
type JournalRepository interface {
	CreateJournal(ctx context.Context, e *JournalEntry) error
	UpdateJournal(ctx context.Context, id string, patch JournalPatch) (*JournalEntry, error)
	SearchLedger(ctx context.Context, f LedgerFilter) ([]JournalEntry, error)
	CountJournal(ctx context.Context, f LedgerFilter) (int, error)
}
