package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/okubo/chobo/internal/ledger"
)

// Account implements ledger.AccountDirectory. The classification is joined
// in so callers get the orientation in one round trip.
func (s *Store) Account(ctx context.Context, code string) (*ledger.Account, error) {
	var a ledger.Account
	var side string
	err := s.reader.QueryRowContext(ctx,
		`SELECT a.code, a.name, a.group_code, c.code, c.name, c.side
		FROM accounts a
		JOIN account_groups g ON g.code = a.group_code
		JOIN account_classifications c ON c.code = g.classification_code
		WHERE a.code = ?`, code,
	).Scan(&a.Code, &a.Name, &a.GroupCode, &a.Classification.Code, &a.Classification.Name, &side)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	a.Classification.Side = ledger.Side(side)
	return &a, nil
}

// Classification implements ledger.AccountDirectory.
func (s *Store) Classification(ctx context.Context, code string) (*ledger.AccountClassification, error) {
	var c ledger.AccountClassification
	var side string
	err := s.reader.QueryRowContext(ctx,
		`SELECT code, name, side FROM account_classifications WHERE code = ?`, code,
	).Scan(&c.Code, &c.Name, &side)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrClassificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get classification: %w", err)
	}
	c.Side = ledger.Side(side)
	return &c, nil
}

// ListAccounts returns the full chart ordered by code.
func (s *Store) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT a.code, a.name, a.group_code, c.code, c.name, c.side
		FROM accounts a
		JOIN account_groups g ON g.code = a.group_code
		JOIN account_classifications c ON c.code = g.classification_code
		ORDER BY a.code`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []ledger.Account
	for rows.Next() {
		var a ledger.Account
		var side string
		if err := rows.Scan(&a.Code, &a.Name, &a.GroupCode, &a.Classification.Code, &a.Classification.Name, &side); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.Classification.Side = ledger.Side(side)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
