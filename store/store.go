// Package store persists fund ledgers in a local sqlite database.
//
// Each transaction row keeps its canonical JSON line alongside indexed fund
// and date columns, so the database stays queryable while the single source
// of truth for decoding remains the ledger codec.
package store

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fundsight/fundsight"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	fund   TEXT NOT NULL,
	date   TEXT NOT NULL,
	kind   TEXT NOT NULL,
	record TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_fund_date ON transactions(fund, date);
`

// Store is a sqlite-backed transaction store. It is safe to keep open for the
// lifetime of the process; Close releases the underlying database handle.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the sqlite database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open store %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot initialize store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// SaveLedger replaces the stored transaction set for the ledger's fund with
// the ledger's current content, atomically.
func (s *Store) SaveLedger(l *fundsight.Ledger) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("cannot begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM transactions WHERE fund = ?`, l.Fund()); err != nil {
		return fmt.Errorf("cannot clear fund %q: %w", l.Fund(), err)
	}
	stmt, err := tx.Prepare(`INSERT INTO transactions (fund, date, kind, record) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for record := range l.All() {
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("cannot marshal %s transaction: %w", record.What(), err)
		}
		if _, err := stmt.Exec(l.Fund(), record.When().String(), string(record.What()), string(data)); err != nil {
			return fmt.Errorf("cannot insert transaction: %w", err)
		}
	}
	return tx.Commit()
}

// LoadLedger reads back the fund's transactions in chronological order. A
// fund with no stored transactions yields an empty ledger, not an error.
func (s *Store) LoadLedger(fund string) (*fundsight.Ledger, error) {
	rows, err := s.db.Query(`SELECT record FROM transactions WHERE fund = ? ORDER BY date, id`, fund)
	if err != nil {
		return nil, fmt.Errorf("cannot load fund %q: %w", fund, err)
	}
	defer rows.Close()

	// Stored records are canonical JSON lines: reassemble the JSONL stream
	// and let the ledger codec do the typed decoding.
	var buf bytes.Buffer
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("cannot scan transaction: %w", err)
		}
		buf.WriteString(record)
		buf.WriteByte('\n')
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cannot load fund %q: %w", fund, err)
	}
	return fundsight.DecodeLedger(fund, &buf)
}

// ListFunds returns the identifiers of all funds with stored transactions,
// sorted alphabetically.
func (s *Store) ListFunds() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT fund FROM transactions ORDER BY fund`)
	if err != nil {
		return nil, fmt.Errorf("cannot list funds: %w", err)
	}
	defer rows.Close()

	var funds []string
	for rows.Next() {
		var fund string
		if err := rows.Scan(&fund); err != nil {
			return nil, fmt.Errorf("cannot scan fund: %w", err)
		}
		funds = append(funds, fund)
	}
	return funds, rows.Err()
}

// DeleteFund removes all stored transactions for the fund and reports how
// many rows were removed.
func (s *Store) DeleteFund(fund string) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM transactions WHERE fund = ?`, fund)
	if err != nil {
		return 0, fmt.Errorf("cannot delete fund %q: %w", fund, err)
	}
	return res.RowsAffected()
}
