package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/urfave/cli/v2"

	"annals/internal/config"
	"annals/internal/migrations"
	"annals/internal/repository"
	"annals/internal/repository/mysql"
	"annals/internal/repository/postgres"
	"annals/internal/repository/sqlite"
)

// store is an entry repository backed by a migrated *sql.DB
type store interface {
	repository.EntryRepository
	DB() *sql.DB
}

func databaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db-driver",
			Usage:   "database driver ([sqlite, postgres, mysql])",
			EnvVars: []string{"ANNALS_DB_DRIVER"},
		},
		&cli.StringFlag{
			Name:    "db-path",
			Usage:   "SQLite database path",
			EnvVars: []string{"ANNALS_DB_PATH"},
		},
		&cli.StringFlag{
			Name:    "database-url",
			Usage:   "PostgreSQL or MySQL connection string",
			EnvVars: []string{"DATABASE_URL"},
		},
	}
}

func applyDatabaseFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("db-driver") {
		cfg.Database.Driver = c.String("db-driver")
	}
	if c.IsSet("db-path") {
		cfg.Database.Path = c.String("db-path")
	}
	if c.IsSet("database-url") {
		cfg.Database.DSN = c.String("database-url")
	}
}

// openStore connects to the configured database and brings its schema up to date
func openStore(ctx context.Context, db config.DatabaseConfig) (store, migrations.Dialect, error) {
	var (
		repo    store
		dialect migrations.Dialect
		err     error
	)
	switch db.Driver {
	case config.DriverSQLite:
		dialect = migrations.SQLite
		repo, err = wrapOpen(sqlite.New(ctx, db.Path))
	case config.DriverPostgres:
		dialect = migrations.Postgres
		repo, err = wrapOpen(postgres.New(ctx, db.DSN))
	case config.DriverMySQL:
		dialect = migrations.MySQL
		repo, err = wrapOpen(mysql.New(ctx, db.DSN))
	default:
		return nil, "", fmt.Errorf("unsupported database driver: %q", db.Driver)
	}
	if err != nil {
		return nil, "", fmt.Errorf("open %s store: %w", db.Driver, err)
	}
	return repo, dialect, nil
}

// wrapOpen keeps a failed constructor's typed nil out of the store interface
func wrapOpen[T store](repo T, err error) (store, error) {
	if err != nil {
		return nil, err
	}
	return repo, nil
}
