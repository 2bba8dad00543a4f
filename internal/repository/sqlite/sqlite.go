// Package sqlite provides the SQLite-backed entry repository.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"annals/internal/migrations"
	"annals/internal/repository/sqlstore"

	_ "modernc.org/sqlite"
)

const memoryPath = ":memory:"

var dialect = sqlstore.Dialect{
	Insert: `INSERT INTO entries (name, details) VALUES (?, ?)`,
	Get:    `SELECT id, name, details FROM entries WHERE id = ?`,
	List:   `SELECT id, name, details FROM entries ORDER BY id`,
	Count:  `SELECT COUNT(*) FROM entries`,
	Update: `UPDATE entries SET name = ?, details = ? WHERE id = ?`,
	Delete: `DELETE FROM entries WHERE id = ?`,
}

// Repository implements repository.EntryRepository using SQLite
type Repository struct {
	*sqlstore.Store
}

// New opens (creating if needed) the SQLite database at dbPath and migrates it
func New(ctx context.Context, dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	if dbPath == memoryPath || strings.Contains(dbPath, "mode=memory") {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := migrations.Up(ctx, db, migrations.SQLite); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{Store: sqlstore.New(db, dialect)}, nil
}

func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
}
