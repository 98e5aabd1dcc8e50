package repository

import (
	"context"

	"github.com/prperemyshlev/contact-book/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateRefreshToken(ctx context.Context, userID string, token *string) error
	MarkConfirmed(ctx context.Context, email string) (alreadyConfirmed bool, err error)
	UpdateAvatar(ctx context.Context, email string, url *string) (*domain.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) (*domain.User, error)
}

// ContactRepository defines methods for contact operations.
// Every method is scoped to the contacts of userID.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, userID, id string) (*domain.Contact, error)
	List(ctx context.Context, userID string, limit, offset int) ([]*domain.Contact, error)
	FindByName(ctx context.Context, userID, name string) ([]*domain.Contact, error)
	FindBySurname(ctx context.Context, userID, surname string) ([]*domain.Contact, error)
	FindByEmail(ctx context.Context, userID, email string) (*domain.Contact, error)
	ListWithBirthday(ctx context.Context, userID string) ([]*domain.Contact, error)
	Update(ctx context.Context, contact *domain.Contact) error
	Delete(ctx context.Context, userID, id string) error
}
