package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/contact-book/internal/domain"
	"github.com/prperemyshlev/contact-book/pkg/database"
)

const contactColumns = `id, user_id, name, surname, phone_number, email, birthday, notes, created_at, updated_at`

// contactRepository implements ContactRepository interface
type contactRepository struct {
	db *database.Postgres
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *database.Postgres) ContactRepository {
	return &contactRepository{db: db}
}

func scanContact(row rowScanner) (*domain.Contact, error) {
	contact := &domain.Contact{}
	var birthday sql.NullTime
	var notes sql.NullString

	err := row.Scan(
		&contact.ID,
		&contact.UserID,
		&contact.Name,
		&contact.Surname,
		&contact.PhoneNumber,
		&contact.Email,
		&birthday,
		&notes,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if birthday.Valid {
		contact.Birthday = &birthday.Time
	}
	if notes.Valid {
		contact.Notes = &notes.String
	}

	return contact, nil
}

func (r *contactRepository) queryContacts(ctx context.Context, query string, args ...any) ([]*domain.Contact, error) {
	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := make([]*domain.Contact, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}

	return contacts, rows.Err()
}

// Create inserts a new contact owned by contact.UserID
func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	query := `
		INSERT INTO contacts (id, user_id, name, surname, phone_number, email, birthday, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}

	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	_, err := r.db.DB.ExecContext(ctx, query,
		contact.ID,
		contact.UserID,
		contact.Name,
		contact.Surname,
		contact.PhoneNumber,
		contact.Email,
		contact.Birthday,
		contact.Notes,
		contact.CreatedAt,
		contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	return nil
}

// GetByID retrieves a contact of the user by ID
func (r *contactRepository) GetByID(ctx context.Context, userID, id string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1 AND user_id = $2`

	contact, err := scanContact(r.db.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return contact, nil
}

// List returns a page of the user's contacts in creation order
func (r *contactRepository) List(ctx context.Context, userID string, limit, offset int) ([]*domain.Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE user_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3
	`

	contacts, err := r.queryContacts(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	return contacts, nil
}

// FindByName returns the user's contacts with exactly this name
func (r *contactRepository) FindByName(ctx context.Context, userID, name string) ([]*domain.Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE user_id = $1 AND name = $2
		ORDER BY created_at, id
	`

	contacts, err := r.queryContacts(ctx, query, userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find contacts by name: %w", err)
	}

	return contacts, nil
}

// FindBySurname returns the user's contacts with exactly this surname
func (r *contactRepository) FindBySurname(ctx context.Context, userID, surname string) ([]*domain.Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE user_id = $1 AND surname = $2
		ORDER BY created_at, id
	`

	contacts, err := r.queryContacts(ctx, query, userID, surname)
	if err != nil {
		return nil, fmt.Errorf("failed to find contacts by surname: %w", err)
	}

	return contacts, nil
}

// FindByEmail returns the oldest of the user's contacts with this email
func (r *contactRepository) FindByEmail(ctx context.Context, userID, email string) (*domain.Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE user_id = $1 AND email = $2
		ORDER BY created_at, id
		LIMIT 1
	`

	contact, err := scanContact(r.db.DB.QueryRowContext(ctx, query, userID, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact with email %s not found: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find contact by email: %w", err)
	}

	return contact, nil
}

// ListWithBirthday returns the user's contacts that have a birthday set
func (r *contactRepository) ListWithBirthday(ctx context.Context, userID string) ([]*domain.Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE user_id = $1 AND birthday IS NOT NULL
		ORDER BY created_at, id
	`

	contacts, err := r.queryContacts(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts with birthday: %w", err)
	}

	return contacts, nil
}

// Update overwrites the mutable fields of a contact owned by contact.UserID
func (r *contactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	query := `
		UPDATE contacts
		SET name = $1, surname = $2, phone_number = $3, email = $4, birthday = $5, notes = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
	`

	contact.UpdatedAt = time.Now()

	result, err := r.db.DB.ExecContext(ctx, query,
		contact.Name,
		contact.Surname,
		contact.PhoneNumber,
		contact.Email,
		contact.Birthday,
		contact.Notes,
		contact.UpdatedAt,
		contact.ID,
		contact.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	return expectAffected(result, fmt.Sprintf("contact %s", contact.ID))
}

// Delete removes a contact owned by the user
func (r *contactRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM contacts WHERE id = $1 AND user_id = $2`

	result, err := r.db.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	return expectAffected(result, fmt.Sprintf("contact %s", id))
}
