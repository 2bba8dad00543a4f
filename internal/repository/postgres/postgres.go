// Package postgres provides the PostgreSQL-backed entry repository, using the
// pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"annals/internal/migrations"
	"annals/internal/repository/sqlstore"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// details travels as text so the json column stores exactly what was sent.
var dialect = sqlstore.Dialect{
	Insert:          `INSERT INTO entries (name, details) VALUES ($1, $2::text::json) RETURNING id`,
	InsertReturnsID: true,
	Get:             `SELECT id, name, details::text FROM entries WHERE id = $1`,
	List:            `SELECT id, name, details::text FROM entries ORDER BY id`,
	Count:           `SELECT COUNT(*) FROM entries`,
	Update:          `UPDATE entries SET name = $1, details = $2::text::json WHERE id = $3`,
	Delete:          `DELETE FROM entries WHERE id = $1`,
}

// Repository implements repository.EntryRepository on PostgreSQL
type Repository struct {
	*sqlstore.Store
}

// New connects to the database at dsn and migrates its schema
func New(ctx context.Context, dsn string) (*Repository, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	sqlstore.ConfigurePool(db)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrations.Up(ctx, db, migrations.Postgres); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return NewWithDB(db), nil
}

// NewWithDB wraps an already migrated database
func NewWithDB(db *sql.DB) *Repository {
	return &Repository{Store: sqlstore.New(db, dialect)}
}
