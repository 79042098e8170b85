// Package sqlitestore provides a SQLite-backed expense repository.
//
// Importing it registers the "sqlite" storage backend, so a data location
// like "sqlite:expenses.db" selects it.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gigurra/expense-tracker/internal"
	applog "github.com/gigurra/expense-tracker/internal/log"

	_ "modernc.org/sqlite"
)

// Store persists expenses in a SQLite database.
type Store struct {
	db     *sql.DB
	path   string
	logger *applog.Logger
}

// Open opens (creating if needed) the database at path and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	path = filepath.Clean(path)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(path); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{
		db:     db,
		path:   path,
		logger: applog.Default().WithComponent(applog.ComponentStorage).With(applog.FieldBackend, "sqlite"),
	}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load implements internal.Repository
func (s *Store) Load(ctx context.Context) ([]internal.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, nome, valor, vencimento, tipo, paga, data_pagamento
		   FROM expenses
		  ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var records []internal.Record
	for rows.Next() {
		var (
			r        internal.Record
			valor    string
			paga     int64
			paidDate sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Name, &valor, &r.DueDate, &r.Kind, &paga, &paidDate); err != nil {
			return nil, &internal.CorruptDataError{Source: s.path, Err: fmt.Errorf("scan expense: %w", err)}
		}
		r.Amount = json.Number(valor)
		r.Paid = paga != 0
		if paidDate.Valid {
			v := paidDate.String
			r.PaidDate = &v
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	expenses, err := internal.FromRecords(s.path, records)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "Loaded expenses", applog.FieldOperation, applog.OpLoad, applog.FieldCount, len(expenses), applog.FieldPath, s.path)
	return expenses, nil
}

// Save implements internal.Repository. The table is replaced inside a single
// transaction.
func (s *Store) Save(ctx context.Context, expenses []internal.Expense) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (id, position, nome, valor, vencimento, tipo, paga, data_pagamento)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range expenses {
		r := internal.ToRecord(e)
		var id any
		if r.ID != 0 {
			id = r.ID
		}
		var paidDate any
		if r.PaidDate != nil {
			paidDate = *r.PaidDate
		}
		paga := 0
		if r.Paid {
			paga = 1
		}
		if _, err = stmt.ExecContext(ctx, id, i, r.Name, r.Amount.String(), r.DueDate, r.Kind, paga, paidDate); err != nil {
			return fmt.Errorf("insert expense %q: %w", r.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.DebugContext(ctx, "Saved expenses", applog.FieldOperation, applog.OpSave, applog.FieldCount, len(expenses), applog.FieldPath, s.path)
	return nil
}

func init() {
	internal.RegisterBackend("sqlite", internal.BackendFunc(func(path string) (internal.Repository, error) {
		s, err := Open(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}))
}
