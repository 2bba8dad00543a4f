package mysql

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annals/internal/domain"
	"annals/internal/repository"
)

var _ repository.EntryRepository = (*Repository)(nil)

func TestCreate_LastInsertID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(dialect.Insert).
		WithArgs("Battle of Tours", `{"year":732}`).
		WillReturnResult(sqlmock.NewResult(42, 1))

	repo := NewWithDB(db)
	created, err := repo.Create(context.Background(), domain.EntryInput{
		Name:    "Battle of Tours",
		Details: json.RawMessage(`{"year":732}`),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(dialect.Update).
		WithArgs("x", `1`, int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = NewWithDB(db).Update(context.Background(), 8, domain.EntryInput{Name: "x", Details: json.RawMessage(`1`)})
	assert.True(t, domain.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseDSN(t *testing.T) {
	t.Run("url form", func(t *testing.T) {
		cfg, err := ParseDSN("mysql://annals:secret@db:3306/annals?parseTime=true")
		require.NoError(t, err)
		assert.Equal(t, "annals", cfg.User)
		assert.Equal(t, "secret", cfg.Passwd)
		assert.Equal(t, "tcp", cfg.Net)
		assert.Equal(t, "db:3306", cfg.Addr)
		assert.Equal(t, "annals", cfg.DBName)
		assert.True(t, cfg.ParseTime)
		assert.True(t, cfg.ClientFoundRows)
	})

	t.Run("driver form", func(t *testing.T) {
		cfg, err := ParseDSN("root:pw@tcp(127.0.0.1:3307)/history")
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:3307", cfg.Addr)
		assert.Equal(t, "history", cfg.DBName)
		assert.True(t, cfg.ClientFoundRows)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseDSN("no-slash-here")
		assert.Error(t, err)
	})
}

func TestNormalizeDSN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"mysql://u:p@host:3306/db", "u:p@tcp(host:3306)/db"},
		{"mysql://u:p@host:3306/db?charset=utf8mb4", "u:p@tcp(host:3306)/db?charset=utf8mb4"},
		{"u:p@tcp(host:3306)/db", "u:p@tcp(host:3306)/db"},
		{"mysql://nouser", "nouser"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeDSN(tt.in), tt.in)
	}
}
