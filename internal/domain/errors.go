package domain

import "errors"

// Authentication errors
var (
	ErrDuplicateEmail    = errors.New("account already exists")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrEmailNotConfirmed = errors.New("email not confirmed")
	ErrUserNotFound      = errors.New("user not found")
)

// Token errors
var (
	ErrInvalidToken   = errors.New("could not validate credentials")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenKind = errors.New("invalid scope for token")
	ErrTokenMismatch  = errors.New("invalid refresh token")
)

// Contact and profile errors
var (
	// ErrNotFound is returned when a contact does not exist or belongs to another user
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidImage = errors.New("unsupported image")
)
