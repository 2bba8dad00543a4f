package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/morikuni/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annals/internal/domain"
	"annals/internal/repository"
)

var _ repository.EntryRepository = (*Repository)(nil)

func newRepoWithMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewWithDB(db), mock
}

func treaty() domain.EntryInput {
	return domain.EntryInput{Name: "Treaty of Westphalia", Details: json.RawMessage(`{"year":1648}`)}
}

func TestCreate_ReturningID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(dialect.Insert).
		WithArgs("Treaty of Westphalia", `{"year":1648}`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	created, err := repo.Create(context.Background(), treaty())
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Treaty of Westphalia", created.Name)
	assert.JSONEq(t, `{"year":1648}`, string(created.Details))
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(dialect.Insert).
		WithArgs("Treaty of Westphalia", `{"year":1648}`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), treaty())
	require.Error(t, err)
	assert.True(t, failure.Is(err, domain.StorageError))
}

func TestGet_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(dialect.Get).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "details"}).
			AddRow(int64(3), "Edict of Milan", []byte(`{"year":313}`)))

	entry, err := repo.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), entry.ID)
	assert.Equal(t, `{"year":313}`, string(entry.Details))
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(dialect.Get).
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "details"}))

	_, err := repo.Get(context.Background(), 999)
	assert.True(t, domain.IsNotFound(err))
}

func TestList_Ordered(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(dialect.List).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "details"}).
			AddRow(int64(1), "a", []byte(`1`)).
			AddRow(int64(2), "b", []byte(`[2]`)))

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, `[2]`, string(entries[1].Details))
}

func TestList_ScanError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(dialect.List).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "details"}).
			AddRow("not-a-number", "a", []byte(`1`)))

	_, err := repo.List(context.Background())
	assert.True(t, failure.Is(err, domain.StorageError))
}

func TestUpdate(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(dialect.Update).
			WithArgs("Treaty of Westphalia", `{"year":1648}`, int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		entry, err := repo.Update(context.Background(), 4, treaty())
		require.NoError(t, err)
		assert.Equal(t, int64(4), entry.ID)
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(dialect.Update).
			WithArgs("Treaty of Westphalia", `{"year":1648}`, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.Update(context.Background(), 5, treaty())
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("rows affected error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(dialect.Update).
			WithArgs("Treaty of Westphalia", `{"year":1648}`, int64(6)).
			WillReturnResult(sqlmock.NewErrorResult(errors.New("no driver support")))

		_, err := repo.Update(context.Background(), 6, treaty())
		assert.True(t, failure.Is(err, domain.StorageError))
	})
}

func TestDelete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(dialect.Delete).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.Delete(context.Background(), 1))
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(dialect.Delete).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))
		assert.True(t, domain.IsNotFound(repo.Delete(context.Background(), 2)))
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(dialect.Delete).WithArgs(int64(3)).WillReturnError(sql.ErrConnDone)
		err := repo.Delete(context.Background(), 3)
		assert.True(t, failure.Is(err, domain.StorageError))
	})
}

func TestCreateMany(t *testing.T) {
	t.Run("commits", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(dialect.Insert).WithArgs("a", `1`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
		mock.ExpectQuery(dialect.Insert).WithArgs("b", `2`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))
		mock.ExpectCommit()

		created, err := repo.CreateMany(context.Background(), []domain.EntryInput{
			{Name: "a", Details: json.RawMessage(`1`)},
			{Name: "b", Details: json.RawMessage(`2`)},
		})
		require.NoError(t, err)
		assert.Len(t, created, 2)
	})

	t.Run("rolls back", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(dialect.Insert).WithArgs("a", `1`).WillReturnError(errors.New("check violation"))
		mock.ExpectRollback()

		_, err := repo.CreateMany(context.Background(), []domain.EntryInput{
			{Name: "a", Details: json.RawMessage(`1`)},
		})
		assert.True(t, failure.Is(err, domain.StorageError))
	})
}

func TestCount(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(dialect.Count).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
}
