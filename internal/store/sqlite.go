package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/minibooks-dev/minibooks/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    user_id        TEXT NOT NULL,
    code           TEXT NOT NULL,
    name           TEXT NOT NULL,
    type           TEXT NOT NULL,
    normal_balance TEXT NOT NULL,
    balance        TEXT NOT NULL,
    description    TEXT NOT NULL DEFAULT '',
    is_active      INTEGER NOT NULL DEFAULT 1,
    created_at     TEXT NOT NULL,
    updated_at     TEXT NOT NULL,
    PRIMARY KEY (user_id, code)
);

CREATE TABLE IF NOT EXISTS journal_entries (
    id                 TEXT PRIMARY KEY,
    user_id            TEXT NOT NULL,
    transaction_date   TEXT NOT NULL,
    reference          TEXT NOT NULL DEFAULT '',
    description        TEXT NOT NULL,
    status             TEXT NOT NULL,
    predicted_category TEXT NOT NULL DEFAULT '',
    confidence         TEXT NOT NULL DEFAULT '0',
    actual_category    TEXT NOT NULL DEFAULT '',
    created_at         TEXT NOT NULL,
    updated_at         TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS journal_lines (
    entry_id     TEXT NOT NULL REFERENCES journal_entries(id) ON DELETE CASCADE,
    seq          INTEGER NOT NULL,
    account_code TEXT NOT NULL,
    debit        TEXT NOT NULL,
    credit       TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (entry_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_entries_user ON journal_entries(user_id, status);
`

// SQLite is a Store backed by a single SQLite file. Decimals are stored as
// strings so no precision is lost crossing the driver boundary.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// withTx runs fn in a transaction.
func (s *SQLite) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// GetAccount returns the account for (userID, code), or ErrNotFound.
func (s *SQLite) GetAccount(ctx context.Context, userID, code string) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, code, name, type, normal_balance, balance, description, is_active, created_at, updated_at
		FROM accounts WHERE user_id = ? AND code = ?`, userID, code)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s/%s: %w", userID, code, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading account %s/%s: %w", userID, code, err)
	}
	return a, nil
}

// SaveAccount upserts an account keyed by (user_id, code).
func (s *SQLite) SaveAccount(ctx context.Context, a *model.Account) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (user_id, code, name, type, normal_balance, balance, description, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, code) DO UPDATE SET
		  name = excluded.name,
		  type = excluded.type,
		  normal_balance = excluded.normal_balance,
		  balance = excluded.balance,
		  description = excluded.description,
		  is_active = excluded.is_active,
		  updated_at = excluded.updated_at`,
		a.UserID, a.Code, a.Name, string(a.Type), string(a.NormalBalance),
		a.Balance.String(), a.Description, boolInt(a.IsActive), now, now)
	if err != nil {
		return fmt.Errorf("saving account %s/%s: %w", a.UserID, a.Code, err)
	}
	return nil
}

// FindAccounts returns the user's accounts matching the filter, ordered by code.
func (s *SQLite) FindAccounts(ctx context.Context, userID string, f AccountFilter) ([]model.Account, error) {
	q := `SELECT user_id, code, name, type, normal_balance, balance, description, is_active, created_at, updated_at
		FROM accounts WHERE user_id = ?`
	args := []any{userID}
	if f.Type != "" {
		q += ` AND type = ?`
		args = append(args, string(f.Type))
	}
	if f.ActiveOnly {
		q += ` AND is_active = 1`
	}
	q += ` ORDER BY code`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var out []model.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// CreateJournalEntry inserts an entry with its lines in one transaction.
func (s *SQLite) CreateJournalEntry(ctx context.Context, e *model.JournalEntry) error {
	now := time.Now().UTC().Format(time.RFC3339)
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO journal_entries (id, user_id, transaction_date, reference, description, status,
				predicted_category, confidence, actual_category, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.UserID, e.TransactionDate.UTC().Format(time.RFC3339), e.Reference, e.Description,
			string(e.Status), e.PredictedCategory, e.Confidence.String(), e.ActualCategory, now, now)
		if err != nil {
			return fmt.Errorf("inserting journal entry %s: %w", e.ID, err)
		}
		return insertLines(ctx, tx, e)
	})
}

// GetJournalEntry returns the entry with its lines, or ErrNotFound.
func (s *SQLite) GetJournalEntry(ctx context.Context, id string) (*model.JournalEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, transaction_date, reference, description, status,
			predicted_category, confidence, actual_category, created_at, updated_at
		FROM journal_entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("journal entry %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading journal entry %s: %w", id, err)
	}
	if err := s.loadLines(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// SaveJournalEntry replaces the entry row and rewrites its lines.
func (s *SQLite) SaveJournalEntry(ctx context.Context, e *model.JournalEntry) error {
	now := time.Now().UTC().Format(time.RFC3339)
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE journal_entries SET transaction_date = ?, reference = ?, description = ?, status = ?,
				predicted_category = ?, confidence = ?, actual_category = ?, updated_at = ?
			WHERE id = ?`,
			e.TransactionDate.UTC().Format(time.RFC3339), e.Reference, e.Description, string(e.Status),
			e.PredictedCategory, e.Confidence.String(), e.ActualCategory, now, e.ID)
		if err != nil {
			return fmt.Errorf("updating journal entry %s: %w", e.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("journal entry %s: %w", e.ID, ErrNotFound)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM journal_lines WHERE entry_id = ?`, e.ID); err != nil {
			return fmt.Errorf("clearing lines for %s: %w", e.ID, err)
		}
		return insertLines(ctx, tx, e)
	})
}

// FindJournalEntries returns the user's entries matching the filter, newest first.
func (s *SQLite) FindJournalEntries(ctx context.Context, userID string, f EntryFilter) ([]model.JournalEntry, error) {
	q := `SELECT id, user_id, transaction_date, reference, description, status,
			predicted_category, confidence, actual_category, created_at, updated_at
		FROM journal_entries WHERE user_id = ?`
	args := []any{userID}
	if f.Status != "" {
		q += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if f.Reference != "" {
		q += ` AND reference = ?`
		args = append(args, f.Reference)
	}
	q += ` ORDER BY transaction_date DESC, id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal entries: %w", err)
	}
	defer rows.Close()

	var out []model.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := s.loadLines(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func insertLines(ctx context.Context, tx *sql.Tx, e *model.JournalEntry) error {
	for i, l := range e.Lines {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO journal_lines (entry_id, seq, account_code, debit, credit, description)
			VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, i, l.AccountCode, l.Debit.String(), l.Credit.String(), l.Description)
		if err != nil {
			return fmt.Errorf("inserting line %d of %s: %w", i, e.ID, err)
		}
	}
	return nil
}

func (s *SQLite) loadLines(ctx context.Context, e *model.JournalEntry) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT account_code, debit, credit, description
		FROM journal_lines WHERE entry_id = ? ORDER BY seq`, e.ID)
	if err != nil {
		return fmt.Errorf("querying lines for %s: %w", e.ID, err)
	}
	defer rows.Close()

	e.Lines = nil
	for rows.Next() {
		var l model.Line
		var debit, credit string
		if err := rows.Scan(&l.AccountCode, &debit, &credit, &l.Description); err != nil {
			return fmt.Errorf("scanning line for %s: %w", e.ID, err)
		}
		if l.Debit, err = decimal.NewFromString(debit); err != nil {
			return fmt.Errorf("parsing debit %q: %w", debit, err)
		}
		if l.Credit, err = decimal.NewFromString(credit); err != nil {
			return fmt.Errorf("parsing credit %q: %w", credit, err)
		}
		e.Lines = append(e.Lines, l)
	}
	return rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*model.Account, error) {
	var a model.Account
	var typ, normal, balance, created, updated string
	var active int
	err := row.Scan(&a.UserID, &a.Code, &a.Name, &typ, &normal, &balance, &a.Description, &active, &created, &updated)
	if err != nil {
		return nil, err
	}
	a.Type = model.AccountType(typ)
	a.NormalBalance = model.NormalBalance(normal)
	a.IsActive = active != 0
	if a.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("parsing balance %q: %w", balance, err)
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, created)
	a.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &a, nil
}

func scanEntry(row scanner) (*model.JournalEntry, error) {
	var e model.JournalEntry
	var date, status, confidence, created, updated string
	err := row.Scan(&e.ID, &e.UserID, &date, &e.Reference, &e.Description, &status,
		&e.PredictedCategory, &confidence, &e.ActualCategory, &created, &updated)
	if err != nil {
		return nil, err
	}
	e.Status = model.EntryStatus(status)
	if e.TransactionDate, err = time.Parse(time.RFC3339, date); err != nil {
		return nil, fmt.Errorf("parsing transaction date %q: %w", date, err)
	}
	if e.Confidence, err = decimal.NewFromString(confidence); err != nil {
		return nil, fmt.Errorf("parsing confidence %q: %w", confidence, err)
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, created)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &e, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
