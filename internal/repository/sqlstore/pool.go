package sqlstore

import (
	"database/sql"
	"time"
)

// ConfigurePool applies connection pool limits for networked databases
func ConfigurePool(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
}
