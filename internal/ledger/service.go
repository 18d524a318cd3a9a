package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// LedgerPage is one page of the running-balance view plus the size of the
// full filtered set, for the caller's pager.
type LedgerPage struct {
	Rows  []LedgerRow `json:"rows"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
}

// Service wires the validator, projector and aggregator to a repository and
// directory, and exposes the four call contracts consumed by the API layer.
// CounterAccount is the implicit counter-account code used by single
// postings; it comes from configuration, never from a global.
type Service struct {
	Repo           JournalRepository
	Accounts       AccountDirectory
	Sums           BreakdownSource
	CounterAccount string

	validator  Validator
	projector  Projector
	aggregator Aggregator
}

// NewService creates a Service over a repository, directory and breakdown
// source. counterAccount is the account code credited or debited opposite a
// single posting.
func NewService(repo JournalRepository, dir AccountDirectory, sums BreakdownSource, counterAccount string) *Service {
	return &Service{
		Repo:           repo,
		Accounts:       dir,
		Sums:           sums,
		CounterAccount: counterAccount,
		validator:      Validator{Accounts: dir},
		projector:      Projector{Accounts: dir, Entries: repo},
		aggregator:     Aggregator{Accounts: dir, Sums: sums},
	}
}

// CreateJournal validates a two-sided request and persists it. Violations
// are returned as data with a nil entry; an error is an infrastructure
// fault. Callers needing atomicity across validate+insert run this inside
// the store's write transaction boundary.
func (s *Service) CreateJournal(ctx context.Context, req JournalCreate) (*JournalEntry, []Violation, error) {
	vs, err := s.validator.ValidateCreate(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	if len(vs) > 0 {
		return nil, vs, nil
	}

	e := &JournalEntry{
		ID:            uuid.Must(uuid.NewV7()).String(),
		Nendo:         req.Nendo,
		Date:          req.Date,
		DebitAccount:  req.DebitAccount,
		DebitAmount:   req.DebitAmount,
		CreditAccount: req.CreditAccount,
		CreditAmount:  req.CreditAmount,
		Note:          req.Note,
		Checked:       req.Checked,
	}
	if err := s.Repo.CreateJournal(ctx, e); err != nil {
		return nil, nil, fmt.Errorf("create journal: %w", err)
	}
	return e, nil, nil
}

// CreateSinglePosting validates a one-sided request and persists it as a
// balanced entry against the configured counter-account. A supplied debit
// amount debits the named account and credits the counter-account; a
// supplied credit amount does the reverse.
func (s *Service) CreateSinglePosting(ctx context.Context, req SinglePosting) (*JournalEntry, []Violation, error) {
	vs, err := s.validator.ValidateSinglePosting(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	if len(vs) > 0 {
		return nil, vs, nil
	}

	e := &JournalEntry{
		ID:    uuid.Must(uuid.NewV7()).String(),
		Nendo: req.Nendo,
		Date:  req.Date,
		Note:  req.Note,
	}
	if req.DebitAmount != nil {
		e.DebitAccount = req.Account
		e.CreditAccount = s.CounterAccount
		e.DebitAmount = *req.DebitAmount
		e.CreditAmount = *req.DebitAmount
	} else {
		e.DebitAccount = s.CounterAccount
		e.CreditAccount = req.Account
		e.DebitAmount = *req.CreditAmount
		e.CreditAmount = *req.CreditAmount
	}
	if err := s.Repo.CreateJournal(ctx, e); err != nil {
		return nil, nil, fmt.Errorf("create journal: %w", err)
	}
	return e, nil, nil
}

// UpdateJournal validates the supplied fields and applies a partial update.
// An empty patch is a valid no-op that still advances updated_at.
func (s *Service) UpdateJournal(ctx context.Context, id string, patch JournalPatch) (*JournalEntry, []Violation, error) {
	vs, err := s.validator.ValidateUpdate(ctx, patch)
	if err != nil {
		return nil, nil, err
	}
	if len(vs) > 0 {
		return nil, vs, nil
	}

	e, err := s.Repo.UpdateJournal(ctx, id, patch)
	if err != nil {
		return nil, nil, err
	}
	return e, nil, nil
}

// ProjectLedger returns one page of the running-balance view of an account
// together with the total number of rows in the filtered set.
func (s *Service) ProjectLedger(ctx context.Context, accountCode string, f LedgerFilter, page Page) (*LedgerPage, error) {
	rows, err := s.projector.Project(ctx, accountCode, f, page)
	if err != nil {
		return nil, err
	}
	f.AccountCode = accountCode
	total, err := s.Repo.CountJournal(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("count journal: %w", err)
	}
	page = page.Clamp()
	return &LedgerPage{Rows: rows, Total: total, Page: page.Number, Size: page.Size}, nil
}

// AggregateBreakdown processes a batch of breakdown requests all-or-nothing.
func (s *Service) AggregateBreakdown(ctx context.Context, requests []BreakdownRequest) (*BreakdownResult, error) {
	return s.aggregator.Aggregate(ctx, requests)
}
