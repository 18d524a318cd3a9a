package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/okubo/chobo/internal/ledger"
)

// UpsertFiscalYear registers a fiscal year or updates its locked flag.
func (s *Store) UpsertFiscalYear(ctx context.Context, fy ledger.FiscalYear) error {
	_, err := s.writer.ExecContext(ctx,
		`INSERT INTO fiscal_years (nendo, fixed) VALUES (?, ?)
		ON CONFLICT(nendo) DO UPDATE SET fixed = excluded.fixed`,
		fy.Nendo, boolToInt(fy.Fixed),
	)
	if err != nil {
		return fmt.Errorf("upsert fiscal year: %w", err)
	}
	return nil
}

// GetFiscalYear fetches one fiscal year row by nendo.
func (s *Store) GetFiscalYear(ctx context.Context, nendo string) (*ledger.FiscalYear, error) {
	var fy ledger.FiscalYear
	var fixed int
	var createdAt string
	err := s.reader.QueryRowContext(ctx,
		`SELECT nendo, fixed, created_at FROM fiscal_years WHERE nendo = ?`, nendo,
	).Scan(&fy.Nendo, &fixed, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrFiscalYearNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get fiscal year: %w", err)
	}
	fy.Fixed = fixed == 1
	fy.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &fy, nil
}

// ListFiscalYears returns all registered fiscal years, newest first.
func (s *Store) ListFiscalYears(ctx context.Context) ([]ledger.FiscalYear, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT nendo, fixed, created_at FROM fiscal_years ORDER BY nendo DESC`)
	if err != nil {
		return nil, fmt.Errorf("list fiscal years: %w", err)
	}
	defer rows.Close()

	var years []ledger.FiscalYear
	for rows.Next() {
		var fy ledger.FiscalYear
		var fixed int
		var createdAt string
		if err := rows.Scan(&fy.Nendo, &fixed, &createdAt); err != nil {
			return nil, fmt.Errorf("scan fiscal year: %w", err)
		}
		fy.Fixed = fixed == 1
		fy.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		years = append(years, fy)
	}
	return years, rows.Err()
}
