// Package sqlstore implements repository.EntryRepository over database/sql.
//
// Backends differ only in SQL text and in how a freshly inserted id is read
// back; both are described by a Dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"annals/internal/domain"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect holds the backend-specific SQL for the entries table.
// Queries take positional arguments in the order documented on each field.
type Dialect struct {
	// Insert takes (name, details). When InsertReturnsID is set it must
	// return the new id as a single row; otherwise LastInsertId is used.
	Insert          string
	InsertReturnsID bool

	// Get takes (id) and selects (id, name, details)
	Get string
	// List selects (id, name, details) ordered by id
	List string
	// Count selects a single integer
	Count string
	// Update takes (name, details, id)
	Update string
	// Delete takes (id)
	Delete string
}

// Store is a database/sql backed entry repository
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New creates a store over an open database whose schema is already migrated
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB exposes the underlying pool
func (s *Store) DB() *sql.DB {
	return s.db
}

// Create inserts a new entry and returns it with its assigned id
func (s *Store) Create(ctx context.Context, in domain.EntryInput) (*domain.Entry, error) {
	id, err := s.insert(ctx, s.db, in)
	if err != nil {
		return nil, domain.WrapStorage(err, "create")
	}
	return in.Apply(id), nil
}

// CreateMany inserts all inputs inside one transaction
func (s *Store) CreateMany(ctx context.Context, ins []domain.EntryInput) ([]domain.Entry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, domain.WrapStorage(err, "create_many")
	}
	defer tx.Rollback()

	created := make([]domain.Entry, 0, len(ins))
	for i, in := range ins {
		id, err := s.insert(ctx, tx, in)
		if err != nil {
			return nil, domain.WrapStorage(fmt.Errorf("entry %d: %w", i, err), "create_many")
		}
		created = append(created, *in.Apply(id))
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.WrapStorage(err, "create_many")
	}
	return created, nil
}

func (s *Store) insert(ctx context.Context, db DBTX, in domain.EntryInput) (int64, error) {
	details := string(in.Details)

	if s.dialect.InsertReturnsID {
		var id int64
		if err := db.QueryRowContext(ctx, s.dialect.Insert, in.Name, details).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to insert entry: %w", err)
		}
		return id, nil
	}

	res, err := db.ExecContext(ctx, s.dialect.Insert, in.Name, details)
	if err != nil {
		return 0, fmt.Errorf("failed to insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

// Get retrieves a single entry by id
func (s *Store) Get(ctx context.Context, id int64) (*domain.Entry, error) {
	var row entryRow
	err := s.db.QueryRowContext(ctx, s.dialect.Get, id).Scan(row.scanArgs()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEntryNotFound(id)
	}
	if err != nil {
		return nil, domain.WrapStorage(fmt.Errorf("failed to query entry: %w", err), "get")
	}
	return row.toDomain(), nil
}

// List returns every entry in ascending id order
func (s *Store) List(ctx context.Context) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.List)
	if err != nil {
		return nil, domain.WrapStorage(fmt.Errorf("failed to query entries: %w", err), "list")
	}
	defer rows.Close()

	entries := make([]domain.Entry, 0)
	for rows.Next() {
		var row entryRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, domain.WrapStorage(fmt.Errorf("failed to scan entry: %w", err), "list")
		}
		entries = append(entries, *row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapStorage(fmt.Errorf("error iterating entries: %w", err), "list")
	}
	return entries, nil
}

// Count returns the number of stored entries
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, s.dialect.Count).Scan(&n); err != nil {
		return 0, domain.WrapStorage(fmt.Errorf("failed to count entries: %w", err), "count")
	}
	return n, nil
}

// Update replaces the name and details of an existing entry
func (s *Store) Update(ctx context.Context, id int64, in domain.EntryInput) (*domain.Entry, error) {
	res, err := s.db.ExecContext(ctx, s.dialect.Update, in.Name, string(in.Details), id)
	if err != nil {
		return nil, domain.WrapStorage(fmt.Errorf("failed to update entry: %w", err), "update")
	}
	if err := expectOneRow(res, id); err != nil {
		return nil, err
	}
	return in.Apply(id), nil
}

// Delete removes an entry
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.dialect.Delete, id)
	if err != nil {
		return domain.WrapStorage(fmt.Errorf("failed to delete entry: %w", err), "delete")
	}
	return expectOneRow(res, id)
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	return domain.WrapStorage(s.db.PingContext(ctx), "ping")
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func expectOneRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return domain.WrapStorage(fmt.Errorf("rows affected error: %w", err), "rows_affected")
	}
	if n == 0 {
		return domain.ErrEntryNotFound(id)
	}
	return nil
}
