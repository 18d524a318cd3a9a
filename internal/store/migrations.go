package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/okubo/chobo/internal/ledger"
)

func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		if err := migrateV1(ctx, tx); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return tx.Commit()
}

func migrateV1(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		// Reference tables: classification -> group -> account
		`CREATE TABLE IF NOT EXISTS account_classifications (
			code       TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			side       TEXT NOT NULL CHECK (side IN ('L','R')),
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,

		`CREATE TABLE IF NOT EXISTS account_groups (
			code                TEXT PRIMARY KEY,
			name                TEXT NOT NULL,
			classification_code TEXT NOT NULL REFERENCES account_classifications(code),
			created_at          TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_groups_classification ON account_groups(classification_code)`,

		`CREATE TABLE IF NOT EXISTS accounts (
			code       TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			group_code TEXT NOT NULL REFERENCES account_groups(code),
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_group ON accounts(group_code)`,

		`CREATE TABLE IF NOT EXISTS fiscal_years (
			nendo      TEXT PRIMARY KEY,
			fixed      INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,

		// Journal table
		`CREATE TABLE IF NOT EXISTS journal (
			id             TEXT PRIMARY KEY,
			nendo          TEXT NOT NULL,
			date           TEXT NOT NULL,
			debit_account  TEXT NOT NULL REFERENCES accounts(code),
			debit_amount   INTEGER NOT NULL,
			credit_account TEXT NOT NULL REFERENCES accounts(code),
			credit_amount  INTEGER NOT NULL,
			note           TEXT NOT NULL DEFAULT '',
			checked        INTEGER NOT NULL DEFAULT 0,
			deleted        INTEGER NOT NULL DEFAULT 0,
			created_at     TEXT NOT NULL,
			updated_at     TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_nendo_date ON journal(nendo, date)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_debit ON journal(debit_account)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_credit ON journal(credit_account)`,

		// Trigger: unbalanced or self-referencing rows never reach disk,
		// whatever path tries to insert them.
		`CREATE TRIGGER IF NOT EXISTS trg_journal_balanced
		BEFORE INSERT ON journal
		WHEN NEW.debit_amount != NEW.credit_amount
		BEGIN
			SELECT RAISE(ABORT, 'journal entry does not balance');
		END`,

		`CREATE TRIGGER IF NOT EXISTS trg_journal_distinct_accounts
		BEFORE INSERT ON journal
		WHEN NEW.debit_account = NEW.credit_account
		BEGIN
			SELECT RAISE(ABORT, 'debit and credit accounts must differ');
		END`,

		`INSERT INTO schema_version (version) VALUES (1)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:60], err)
		}
	}

	// Seed the default chart of accounts
	for _, c := range ledger.DefaultClassifications {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO account_classifications (code, name, side) VALUES (?, ?, ?)`,
			c.Code, c.Name, string(c.Side),
		); err != nil {
			return fmt.Errorf("seed classification %s: %w", c.Code, err)
		}
	}
	for _, g := range ledger.DefaultGroups {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO account_groups (code, name, classification_code) VALUES (?, ?, ?)`,
			g.Code, g.Name, g.ClassificationCode,
		); err != nil {
			return fmt.Errorf("seed group %s: %w", g.Code, err)
		}
	}
	for _, a := range ledger.DefaultAccounts {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO accounts (code, name, group_code) VALUES (?, ?, ?)`,
			a.Code, a.Name, a.GroupCode,
		); err != nil {
			return fmt.Errorf("seed account %s: %w", a.Code, err)
		}
	}

	return nil
}
