package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/okubo/chobo/internal/ledger"
)

// CreateJournal inserts a validated journal entry. The insert runs on the
// single writer connection inside its own transaction, so two concurrent
// creations serialize at the store boundary.
func (s *Store) CreateJournal(ctx context.Context, e *ledger.JournalEntry) error {
	if e.ID == "" {
		e.ID = uuid.Must(uuid.NewV7()).String()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO journal (id, nendo, date, debit_account, debit_amount, credit_account, credit_amount, note, checked, deleted, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		e.ID, e.Nendo, e.Date,
		e.DebitAccount, e.DebitAmount, e.CreditAccount, e.CreditAmount,
		e.Note, boolToInt(e.Checked),
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert journal: %w", err)
	}

	return tx.Commit()
}

// UpdateJournal applies a partial update: only supplied fields change and
// updated_at always advances, even for a field-less patch. Returns the row
// as persisted after the update.
func (s *Store) UpdateJournal(ctx context.Context, id string, patch ledger.JournalPatch) (*ledger.JournalEntry, error) {
	now := time.Now().UTC()

	set := "updated_at = ?"
	args := []any{now.Format(time.RFC3339Nano)}
	add := func(col string, val any) {
		set += ", " + col + " = ?"
		args = append(args, val)
	}

	if patch.Nendo != nil {
		add("nendo", *patch.Nendo)
	}
	if patch.Date != nil {
		add("date", *patch.Date)
	}
	if patch.DebitAccount != nil {
		add("debit_account", *patch.DebitAccount)
	}
	if patch.DebitAmount != nil {
		add("debit_amount", *patch.DebitAmount)
	}
	if patch.CreditAccount != nil {
		add("credit_account", *patch.CreditAccount)
	}
	if patch.CreditAmount != nil {
		add("credit_amount", *patch.CreditAmount)
	}
	if patch.Note != nil {
		add("note", *patch.Note)
	}
	if patch.Checked != nil {
		add("checked", boolToInt(*patch.Checked))
	}
	if patch.Deleted != nil {
		add("deleted", boolToInt(*patch.Deleted))
	}
	args = append(args, id)

	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE journal SET `+set+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("update journal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, ledger.ErrJournalNotFound
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return s.GetJournal(ctx, id)
}

// GetJournal fetches one entry by id, including soft-deleted rows.
func (s *Store) GetJournal(ctx context.Context, id string) (*ledger.JournalEntry, error) {
	row := s.reader.QueryRowContext(ctx,
		`SELECT id, nendo, date, debit_account, debit_amount, credit_account, credit_amount, note, checked, deleted, created_at, updated_at
		FROM journal WHERE id = ?`, id)

	e, err := scanJournal(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrJournalNotFound
	}
	return e, err
}

// SearchLedger returns non-deleted entries matching the filter ascending by
// (date, id). Ids are time-ordered uuids, so the secondary sort is insertion
// order within a day.
func (s *Store) SearchLedger(ctx context.Context, f ledger.LedgerFilter) ([]ledger.JournalEntry, error) {
	query, args := journalWhere(f)
	query = `SELECT id, nendo, date, debit_account, debit_amount, credit_account, credit_amount, note, checked, deleted, created_at, updated_at
		FROM journal` + query + ` ORDER BY date, id`

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search ledger: %w", err)
	}
	defer rows.Close()

	var entries []ledger.JournalEntry
	for rows.Next() {
		e, err := scanJournal(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// CountJournal counts the rows SearchLedger would return for the filter.
func (s *Store) CountJournal(ctx context.Context, f ledger.LedgerFilter) (int, error) {
	query, args := journalWhere(f)
	var count int
	err := s.reader.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal`+query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count journal: %w", err)
	}
	return count, nil
}

func journalWhere(f ledger.LedgerFilter) (string, []any) {
	query := ` WHERE deleted = 0`
	args := []any{}

	if f.AccountCode != "" {
		query += ` AND (debit_account = ? OR credit_account = ?)`
		args = append(args, f.AccountCode, f.AccountCode)
	}
	if f.Nendo != "" {
		query += ` AND nendo = ?`
		args = append(args, f.Nendo)
	}
	if f.Month != "" {
		query += ` AND substr(date, 5, 2) = ?`
		args = append(args, f.Month)
	}
	if f.Note != "" {
		query += ` AND note LIKE ?`
		args = append(args, "%"+f.Note+"%")
	}
	if f.Checked != nil {
		query += ` AND checked = ?`
		args = append(args, boolToInt(*f.Checked))
	}
	return query, args
}

func scanJournal(scan func(...any) error) (*ledger.JournalEntry, error) {
	var e ledger.JournalEntry
	var checked, deleted int
	var createdAt, updatedAt string
	if err := scan(&e.ID, &e.Nendo, &e.Date,
		&e.DebitAccount, &e.DebitAmount, &e.CreditAccount, &e.CreditAmount,
		&e.Note, &checked, &deleted, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	e.Checked = checked == 1
	e.Deleted = deleted == 1
	e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &e, nil
}
