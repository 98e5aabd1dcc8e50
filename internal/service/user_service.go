package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/disintegration/imaging"
	"github.com/prperemyshlev/contact-book/internal/domain"
	"github.com/prperemyshlev/contact-book/internal/repository"
	"github.com/prperemyshlev/contact-book/internal/utils"
)

const (
	// AvatarSize is the side of the square avatar image in pixels
	AvatarSize = 250
	// MaxAvatarPixels bounds the decoded size of an upload. The compressed
	// size says nothing about how large the bitmap gets.
	MaxAvatarPixels = 4096 * 4096
)

// userService implements UserService interface
type userService struct {
	userRepo   repository.UserRepository
	storage    AvatarStorage
	bcryptCost int
	now        func() time.Time
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, storage AvatarStorage, bcryptCost int) UserService {
	return &userService{
		userRepo:   userRepo,
		storage:    storage,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// AvatarKey returns the object key of a user's avatar
func AvatarKey(userID string) string {
	return fmt.Sprintf("avatars/%s.png", userID)
}

// UpdateAvatar crops the image to a square, uploads it and stores its URL on the user
func (s *userService) UpdateAvatar(ctx context.Context, user *domain.User, src io.Reader) (*domain.User, error) {
	var header bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(src, &header))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxAvatarPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", domain.ErrInvalidImage, cfg.Width, cfg.Height, MaxAvatarPixels)
	}

	img, err := imaging.Decode(io.MultiReader(&header, src), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidImage, err)
	}

	avatar := imaging.Fill(img, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, avatar, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode avatar: %w", err)
	}

	url, err := s.storage.Put(ctx, AvatarKey(user.ID), buf.Bytes(), "image/png")
	if err != nil {
		return nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	// the key never changes, the version busts client caches
	url = fmt.Sprintf("%s?v=%d", url, s.now().Unix())

	updated, err := s.userRepo.UpdateAvatar(ctx, user.Email, &url)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	return updated, nil
}

// ChangePassword replaces the password after checking the current one
func (s *userService) ChangePassword(ctx context.Context, user *domain.User, oldPassword, newPassword string) (*domain.User, error) {
	if !utils.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return nil, domain.ErrInvalidPassword
	}

	passwordHash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	updated, err := s.userRepo.UpdatePassword(ctx, user.Email, passwordHash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	return updated, nil
}
