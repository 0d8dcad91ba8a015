package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func TestBuildMultiRowInsert(t *testing.T) {
	tests := []struct {
		name string
		rows int
		want string
	}{
		{name: "single row", rows: 1, want: "INSERT INTO t (a, b) VALUES ($1, $2)"},
		{name: "three rows", rows: 3, want: "INSERT INTO t (a, b) VALUES ($1, $2), ($3, $4), ($5, $6)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildMultiRowInsert("t", []string{"a", "b"}, tt.rows))
		})
	}
}

func TestPostgresRepository_RunInTxRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := repo.RunInTx(context.Background(), func(_ context.Context, _ *sqlx.Tx) error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
