package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/prperemyshlev/contact-book/internal/domain"
	"github.com/prperemyshlev/contact-book/internal/dto"
	"github.com/prperemyshlev/contact-book/internal/repository"
	"github.com/prperemyshlev/contact-book/internal/utils"
	"github.com/prperemyshlev/contact-book/pkg/observability"
	"go.uber.org/zap"
)

// authService implements AuthService interface
type authService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	blacklist  TokenBlacklist
	mailer     ConfirmationMailer
	metrics    *observability.AuthMetrics
	logger     *zap.Logger
	bcryptCost int
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *utils.JWTManager,
	blacklist TokenBlacklist,
	mailer ConfirmationMailer,
	metrics *observability.AuthMetrics,
	logger *zap.Logger,
	bcryptCost int,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		blacklist:  blacklist,
		mailer:     mailer,
		metrics:    metrics,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Signup registers a new unconfirmed user and queues the confirmation email
func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest, baseURL string) (*domain.User, error) {
	email := utils.SanitizeEmail(req.Email)

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrDuplicateEmail
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	avatar := utils.GravatarURL(email)
	user := &domain.User{
		Username:     req.Username,
		Email:        email,
		PasswordHash: passwordHash,
		Confirmed:    false,
		Avatar:       &avatar,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent signup for the same email
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.Signup(ctx)
	s.mailer.Enqueue(ConfirmationTask{Email: user.Email, Username: user.Username, BaseURL: baseURL})

	return user, nil
}

// Login authenticates a confirmed user and issues a new token pair
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*domain.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.Login(ctx, observability.LoginInvalid)
			return nil, domain.ErrInvalidEmail
		}
		s.metrics.Login(ctx, observability.LoginInternalFail)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.Confirmed {
		s.metrics.Login(ctx, observability.LoginUnconfirmed)
		return nil, domain.ErrEmailNotConfirmed
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.metrics.Login(ctx, observability.LoginInvalid)
		return nil, domain.ErrInvalidPassword
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		s.metrics.Login(ctx, observability.LoginInternalFail)
		return nil, err
	}

	s.metrics.Login(ctx, observability.LoginSuccess)
	return pair, nil
}

// Refresh rotates the token pair. Presenting a refresh token other than the
// one on file revokes the stored one, forcing a new login.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	email, err := s.jwtManager.Subject(refreshToken, domain.TokenKindRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasRefreshToken(refreshToken) {
		if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, nil); err != nil {
			s.logger.Error("failed to clear refresh token", zap.String("user_id", user.ID), zap.Error(err))
		}
		s.logger.Warn("refresh token mismatch", zap.String("user_id", user.ID))
		return nil, domain.ErrTokenMismatch
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.metrics.Refresh(ctx)
	return pair, nil
}

// ConfirmEmail marks the email behind a confirmation token as confirmed
func (s *authService) ConfirmEmail(ctx context.Context, token string) (domain.ConfirmationResult, error) {
	email, err := s.jwtManager.Subject(token, domain.TokenKindEmailConfirm)
	if err != nil {
		return 0, err
	}

	alreadyConfirmed, err := s.userRepo.MarkConfirmed(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to confirm email: %w", err)
	}

	if alreadyConfirmed {
		return domain.ConfirmAlreadyConfirmed, nil
	}
	return domain.ConfirmConfirmed, nil
}

// RequestConfirmation queues another confirmation email. Unknown addresses get
// the same answer as known ones.
func (s *authService) RequestConfirmation(ctx context.Context, email, baseURL string) (domain.ConfirmationResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ConfirmRequested, nil
		}
		return 0, fmt.Errorf("failed to get user: %w", err)
	}

	if user.Confirmed {
		return domain.ConfirmAlreadyConfirmed, nil
	}

	s.mailer.Enqueue(ConfirmationTask{Email: user.Email, Username: user.Username, BaseURL: baseURL})
	return domain.ConfirmRequested, nil
}

// Logout drops the stored refresh token and revokes the access token
func (s *authService) Logout(ctx context.Context, userID, accessToken string) error {
	claims, err := s.jwtManager.Verify(accessToken, domain.TokenKindAccess)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, userID, nil); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	if err := s.blacklist.Revoke(ctx, claims.ID, s.jwtManager.RemainingLifetime(claims)); err != nil {
		return fmt.Errorf("failed to revoke access token: %w", err)
	}

	return nil
}

// CurrentUser resolves the user an access token was issued to
func (s *authService) CurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.jwtManager.Verify(accessToken, domain.TokenKindAccess)
	if err != nil {
		return nil, err
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", domain.ErrInvalidToken)
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
