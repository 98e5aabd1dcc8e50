package service

import (
	"context"
	"fmt"

	"github.com/prperemyshlev/contact-book/internal/domain"
)

const tokenTypeBearer = "bearer"

// issueTokenPair generates access and refresh tokens and stores the refresh token on the user
func (s *authService) issueTokenPair(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}
	user.RefreshToken = &refreshToken

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    s.jwtManager.GetAccessTokenExpiry(),
	}, nil
}
