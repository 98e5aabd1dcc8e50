package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prperemyshlev/contact-book/pkg/database"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*database.Postgres, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return &database.Postgres{DB: db}, mock
}
