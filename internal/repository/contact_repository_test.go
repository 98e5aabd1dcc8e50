package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prperemyshlev/contact-book/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contactRowColumns = []string{
	"id", "user_id", "name", "surname", "phone_number", "email", "birthday", "notes", "created_at", "updated_at",
}

func contactRows() *sqlmock.Rows {
	now := time.Now()
	birthday := time.Date(1990, time.June, 3, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(contactRowColumns).
		AddRow("c-1", "u-1", "John", "Doe", "+380501111111", "john@example.com", birthday, "met at work", now, now).
		AddRow("c-2", "u-1", "Jane", "Doe", "+380502222222", "jane@example.com", nil, nil, now, now)
}

func TestContactRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	contact := &domain.Contact{
		UserID:      "u-1",
		Name:        "John",
		Surname:     "Doe",
		PhoneNumber: "+380501111111",
		Email:       "john@example.com",
	}

	mock.ExpectExec(`INSERT INTO contacts`).
		WithArgs(sqlmock.AnyArg(), "u-1", "John", "Doe", "+380501111111", "john@example.com",
			nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), contact))
	assert.NotEmpty(t, contact.ID)
	assert.Equal(t, "u-1", contact.UserID)
}

func TestContactRepository_GetByID_ScopedToOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM contacts WHERE id = \$1 AND user_id = \$2`).
		WithArgs("c-1", "u-2").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "u-2", "c-1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestContactRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectQuery(`(?s)FROM contacts\s+WHERE user_id = \$1\s+ORDER BY created_at, id\s+LIMIT \$2 OFFSET \$3`).
		WithArgs("u-1", 10, 0).
		WillReturnRows(contactRows())

	contacts, err := repo.List(context.Background(), "u-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, contacts, 2)

	require.NotNil(t, contacts[0].Birthday)
	assert.Equal(t, time.June, contacts[0].Birthday.Month())
	require.NotNil(t, contacts[0].Notes)
	assert.Equal(t, "met at work", *contacts[0].Notes)

	assert.Nil(t, contacts[1].Birthday)
	assert.Nil(t, contacts[1].Notes)
}

func TestContactRepository_List_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectQuery(`FROM contacts`).
		WithArgs("u-1", 10, 20).
		WillReturnRows(sqlmock.NewRows(contactRowColumns))

	contacts, err := repo.List(context.Background(), "u-1", 10, 20)
	require.NoError(t, err)
	assert.NotNil(t, contacts)
	assert.Empty(t, contacts)
}

func TestContactRepository_FindByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectQuery(`WHERE user_id = \$1 AND name = \$2`).
		WithArgs("u-1", "John").
		WillReturnRows(contactRows())

	contacts, err := repo.FindByName(context.Background(), "u-1", "John")
	require.NoError(t, err)
	assert.Len(t, contacts, 2)
}

func TestContactRepository_FindBySurname_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectQuery(`WHERE user_id = \$1 AND surname = \$2`).
		WithArgs("u-1", "Doe").
		WillReturnError(errors.New("db down"))

	_, err := repo.FindBySurname(context.Background(), "u-1", "Doe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestContactRepository_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectQuery(`(?s)WHERE user_id = \$1 AND email = \$2.+LIMIT 1`).
		WithArgs("u-1", "john@example.com").
		WillReturnRows(contactRows())

	contact, err := repo.FindByEmail(context.Background(), "u-1", "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, "c-1", contact.ID)
}

func TestContactRepository_FindByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectQuery(`WHERE user_id = \$1 AND email = \$2`).
		WithArgs("u-1", "ghost@example.com").
		WillReturnRows(sqlmock.NewRows(contactRowColumns))

	_, err := repo.FindByEmail(context.Background(), "u-1", "ghost@example.com")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestContactRepository_ListWithBirthday(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectQuery(`WHERE user_id = \$1 AND birthday IS NOT NULL`).
		WithArgs("u-1").
		WillReturnRows(contactRows())

	contacts, err := repo.ListWithBirthday(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Len(t, contacts, 2)
}

func TestContactRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	notes := "updated"
	contact := &domain.Contact{
		ID:          "c-1",
		UserID:      "u-1",
		Name:        "John",
		Surname:     "Smith",
		PhoneNumber: "+380501111111",
		Email:       "john@example.com",
		Notes:       &notes,
	}

	mock.ExpectExec(`UPDATE contacts\s+SET name = \$1`).
		WithArgs("John", "Smith", "+380501111111", "john@example.com", nil, "updated", sqlmock.AnyArg(), "c-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), contact))
	assert.False(t, contact.UpdatedAt.IsZero())
}

func TestContactRepository_Update_NotOwned(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectExec(`UPDATE contacts`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.Contact{ID: "c-1", UserID: "u-2"})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestContactRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "missing", affected: 0, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewContactRepository(db)

			mock.ExpectExec(`DELETE FROM contacts WHERE id = \$1 AND user_id = \$2`).
				WithArgs("c-1", "u-1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.Delete(context.Background(), "u-1", "c-1")
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			assert.NoError(t, err)
		})
	}
}
