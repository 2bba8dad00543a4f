// Package migrations embeds the per-dialect schema for annals and applies it
// with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

// Dialect names a supported database backend
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
)

//go:embed sqlite/*.sql postgres/*.sql mysql/*.sql
var FS embed.FS

// goose keeps its base FS and dialect in package globals.
var mu sync.Mutex

func (d Dialect) gooseDialect() (string, error) {
	switch d {
	case SQLite:
		return "sqlite3", nil
	case Postgres:
		return "postgres", nil
	case MySQL:
		return "mysql", nil
	}
	return "", fmt.Errorf("unsupported dialect %q", d)
}

func prepare(d Dialect) error {
	name, err := d.gooseDialect()
	if err != nil {
		return err
	}
	goose.SetBaseFS(FS)
	goose.SetLogger(gooseLogger{})
	return goose.SetDialect(name)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Up applies all pending migrations for the dialect
func Up(ctx context.Context, db *sql.DB, d Dialect) error {
	mu.Lock()
	defer mu.Unlock()

	if err := prepare(d); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, string(d)); err != nil {
		return fmt.Errorf("apply %s migrations: %w", d, err)
	}
	return nil
}

// Version returns the schema version currently recorded in db
func Version(ctx context.Context, db *sql.DB, d Dialect) (int64, error) {
	mu.Lock()
	defer mu.Unlock()

	if err := prepare(d); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db)
}

// gooseLogger routes goose output through zerolog
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	log.Debug().Str("component", "goose").Msgf(format, v...)
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	log.Fatal().Str("component", "goose").Msgf(format, v...)
}
