package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prperemyshlev/contact-book/internal/domain"
)

// Supported signing algorithms
const (
	AlgorithmHS256 = "HS256"
	AlgorithmHS512 = "HS512"
)

// Claims is the payload shared by every token kind.
// Kind is checked on verification so one kind can't stand in for another.
type Claims struct {
	Kind domain.TokenKind `json:"scope"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies signed tokens
type JWTManager struct {
	secret   []byte
	method   *jwt.SigningMethodHMAC
	lifetime map[domain.TokenKind]time.Duration
	now      func() time.Time
}

// NewJWTManager creates a new JWT manager for one of the supported HMAC algorithms
func NewJWTManager(secret, algorithm string, accessTokenExpiry, refreshTokenExpiry, emailTokenExpiry time.Duration) (*JWTManager, error) {
	var method *jwt.SigningMethodHMAC
	switch algorithm {
	case AlgorithmHS256:
		method = jwt.SigningMethodHS256
	case AlgorithmHS512:
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	return &JWTManager{
		secret: []byte(secret),
		method: method,
		lifetime: map[domain.TokenKind]time.Duration{
			domain.TokenKindAccess:       accessTokenExpiry,
			domain.TokenKindRefresh:      refreshTokenExpiry,
			domain.TokenKindEmailConfirm: emailTokenExpiry,
		},
		now: time.Now,
	}, nil
}

// Generate signs a new token of the given kind for subject
func (j *JWTManager) Generate(kind domain.TokenKind, subject string) (string, error) {
	lifetime, ok := j.lifetime[kind]
	if !ok {
		return "", fmt.Errorf("unknown token kind %q", kind)
	}

	now := j.now()
	claims := &Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.New().String(),
		},
	}

	tokenString, err := jwt.NewWithClaims(j.method, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s: %w", kind, err)
	}

	return tokenString, nil
}

// GenerateAccessToken generates a new access token
func (j *JWTManager) GenerateAccessToken(email string) (string, error) {
	return j.Generate(domain.TokenKindAccess, email)
}

// GenerateRefreshToken generates a new refresh token
func (j *JWTManager) GenerateRefreshToken(email string) (string, error) {
	return j.Generate(domain.TokenKindRefresh, email)
}

// GenerateEmailToken generates a token proving ownership of email
func (j *JWTManager) GenerateEmailToken(email string) (string, error) {
	return j.Generate(domain.TokenKindEmailConfirm, email)
}

// Verify validates the signature, expiry and kind of a token and returns its claims
func (j *JWTManager) Verify(tokenString string, kind domain.TokenKind) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{j.method.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}

	if claims.Kind != kind {
		return nil, fmt.Errorf("%w: expected %s, got %q", domain.ErrWrongTokenKind, kind, claims.Kind)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrInvalidToken)
	}

	return claims, nil
}

// Subject verifies a token and returns only its subject
func (j *JWTManager) Subject(tokenString string, kind domain.TokenKind) (string, error) {
	claims, err := j.Verify(tokenString, kind)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// RemainingLifetime returns how long the token behind claims stays valid
func (j *JWTManager) RemainingLifetime(claims *Claims) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	remaining := claims.ExpiresAt.Sub(j.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// GetAccessTokenExpiry returns the access token expiry duration in seconds
func (j *JWTManager) GetAccessTokenExpiry() int {
	return int(j.lifetime[domain.TokenKindAccess].Seconds())
}
