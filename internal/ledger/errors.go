package ledger

import "errors"

var (
	ErrAccountNotFound        = errors.New("account not found")
	ErrClassificationNotFound = errors.New("account classification not found")
	ErrJournalNotFound        = errors.New("journal entry not found")
	ErrFiscalYearNotFound     = errors.New("fiscal year not found")
	ErrInvalidDate            = errors.New("invalid date")
	ErrInvalidGranularity     = errors.New("invalid breakdown granularity")
	ErrInvalidBreakdownSide   = errors.New("invalid breakdown side")
	ErrInvalidTimeUnit        = errors.New("invalid breakdown time unit")
	ErrEmptyAccountCode       = errors.New("account code is required")
)
