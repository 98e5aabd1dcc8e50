package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/prperemyshlev/contact-book/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{
	"id", "username", "email", "password_hash", "confirmed", "refresh_token", "avatar", "created_at", "updated_at",
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	user := &domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "alice", "alice@example.com", "hash", false, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Create(context.Background(), &domain.User{Email: "alice@example.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateEmail))
}

func TestUserRepository_Create_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`INSERT INTO users`).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &domain.User{Email: "alice@example.com"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrDuplicateEmail))
	assert.Contains(t, err.Error(), "db down")
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(userRowColumns).
		AddRow("u-1", "alice", "alice@example.com", "hash", true, "refresh", nil, now, now)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("alice@example.com").
		WillReturnRows(rows)

	user, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.True(t, user.Confirmed)
	require.NotNil(t, user.RefreshToken)
	assert.Equal(t, "refresh", *user.RefreshToken)
	assert.Nil(t, user.Avatar)
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs("u-404").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.GetByID(context.Background(), "u-404")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUserRepository_UpdateRefreshToken(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE users\s+SET refresh_token = \$1`).
		WithArgs(nil, sqlmock.AnyArg(), "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateRefreshToken(context.Background(), "u-1", nil))
}

func TestUserRepository_UpdateRefreshToken_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	token := "refresh"
	mock.ExpectExec(`UPDATE users\s+SET refresh_token = \$1`).
		WithArgs(token, sqlmock.AnyArg(), "u-404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateRefreshToken(context.Background(), "u-404", &token)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUserRepository_MarkConfirmed(t *testing.T) {
	tests := []struct {
		name     string
		previous bool
	}{
		{name: "first confirmation", previous: false},
		{name: "already confirmed", previous: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserRepository(db)

			mock.ExpectQuery(`UPDATE users\s+SET confirmed = TRUE`).
				WithArgs("alice@example.com", sqlmock.AnyArg()).
				WillReturnRows(sqlmock.NewRows([]string{"confirmed"}).AddRow(tt.previous))

			already, err := repo.MarkConfirmed(context.Background(), "alice@example.com")
			require.NoError(t, err)
			assert.Equal(t, tt.previous, already)
		})
	}
}

func TestUserRepository_MarkConfirmed_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`UPDATE users\s+SET confirmed = TRUE`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.MarkConfirmed(context.Background(), "ghost@example.com")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUserRepository_UpdateAvatar(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	url := "http://localhost:9000/avatars/u-1.png"
	now := time.Now()
	mock.ExpectQuery(`UPDATE users\s+SET avatar = \$1`).
		WithArgs(url, sqlmock.AnyArg(), "alice@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u-1", "alice", "alice@example.com", "hash", true, nil, url, now, now))

	user, err := repo.UpdateAvatar(context.Background(), "alice@example.com", &url)
	require.NoError(t, err)
	require.NotNil(t, user.Avatar)
	assert.Equal(t, url, *user.Avatar)
	assert.Nil(t, user.RefreshToken)
}

func TestUserRepository_UpdatePassword_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`UPDATE users\s+SET password_hash = \$1`).
		WithArgs("new-hash", sqlmock.AnyArg(), "ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdatePassword(context.Background(), "ghost@example.com", "new-hash")
	assert.True(t, errors.Is(err, ErrNotFound))
}
