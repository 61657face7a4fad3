package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// schemaSteps lists MigrateUp's statements in execution order.
var schemaSteps = []string{
	"CREATE TABLE IF NOT EXISTS stories",
	"CREATE TABLE IF NOT EXISTS votes",
	"CREATE INDEX IF NOT EXISTS idx_votes_story_id",
	"CREATE INDEX IF NOT EXISTS idx_stories_created_at",
	"CREATE EXTENSION IF NOT EXISTS pg_trgm",
	"CREATE INDEX IF NOT EXISTS idx_stories_title_gin",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// expectSteps expects every step before failAt to succeed and step failAt to return err.
// failAt == len(schemaSteps) expects a clean run.
func expectSteps(mock sqlmock.Sqlmock, failAt int, err error) {
	for i, step := range schemaSteps {
		switch {
		case i < failAt:
			mock.ExpectExec(step).WillReturnResult(sqlmock.NewResult(0, 0))
		case i == failAt:
			mock.ExpectExec(step).WillReturnError(err)
			return
		}
	}
}

func TestMigrateUp_CreatesSchema(t *testing.T) {
	db, mock := newMock(t)
	expectSteps(mock, len(schemaSteps), nil)

	assert.NoError(t, MigrateUp(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_TrigramFailureIsIgnored(t *testing.T) {
	db, mock := newMock(t)
	// pg_trgm が使えない環境でも起動できる
	expectSteps(mock, 4, errors.New("permission denied"))
	mock.ExpectExec(schemaSteps[5]).WillReturnError(errors.New("operator class does not exist"))

	assert.NoError(t, MigrateUp(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_TableErrorsAbort(t *testing.T) {
	tests := []struct {
		name   string
		failAt int
		want   string
	}{
		{name: "stories", failAt: 0, want: "create stories"},
		{name: "votes", failAt: 1, want: "create votes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			expectSteps(mock, tt.failAt, sql.ErrConnDone)

			err := MigrateUp(context.Background(), db)
			assert.ErrorIs(t, err, sql.ErrConnDone)
			assert.ErrorContains(t, err, tt.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMigrateDown(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("DROP TABLE IF EXISTS votes").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DROP TABLE IF EXISTS stories").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, MigrateDown(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
