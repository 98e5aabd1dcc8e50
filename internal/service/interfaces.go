package service

import (
	"context"
	"io"

	"github.com/prperemyshlev/contact-book/internal/domain"
	"github.com/prperemyshlev/contact-book/internal/dto"
)

// AuthService defines methods for authentication operations
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest, baseURL string) (*domain.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	ConfirmEmail(ctx context.Context, token string) (domain.ConfirmationResult, error)
	RequestConfirmation(ctx context.Context, email, baseURL string) (domain.ConfirmationResult, error)
	Logout(ctx context.Context, userID, accessToken string) error
	CurrentUser(ctx context.Context, accessToken string) (*domain.User, error)
}

// UserService defines methods for profile operations of the current user
type UserService interface {
	UpdateAvatar(ctx context.Context, user *domain.User, image io.Reader) (*domain.User, error)
	ChangePassword(ctx context.Context, user *domain.User, oldPassword, newPassword string) (*domain.User, error)
}

// ContactService defines methods for contact operations.
// Every method works on the contacts of userID only.
type ContactService interface {
	List(ctx context.Context, userID string, limit, offset int) ([]*domain.Contact, error)
	Get(ctx context.Context, userID, id string) (*domain.Contact, error)
	SearchByName(ctx context.Context, userID, name string) ([]*domain.Contact, error)
	SearchBySurname(ctx context.Context, userID, surname string) ([]*domain.Contact, error)
	SearchByEmail(ctx context.Context, userID, email string) (*domain.Contact, error)
	UpcomingBirthdays(ctx context.Context, userID string, days int) ([]*domain.Contact, error)
	Create(ctx context.Context, userID string, fields domain.ContactFields) (*domain.Contact, error)
	Update(ctx context.Context, userID, id string, fields domain.ContactFields) (*domain.Contact, error)
	Delete(ctx context.Context, userID, id string) error
}

// ConfirmationMailer queues confirmation emails
type ConfirmationMailer interface {
	Enqueue(task ConfirmationTask) bool
}

// AvatarStorage uploads avatar images and returns their public URL
type AvatarStorage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}
