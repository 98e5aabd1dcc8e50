package domain

import "time"

// User represents a contact book account
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Confirmed    bool      `json:"confirmed" db:"confirmed"`
	RefreshToken *string   `json:"-" db:"refresh_token"`
	Avatar       *string   `json:"avatar" db:"avatar"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// HasRefreshToken reports whether token is the refresh token currently on file
func (u *User) HasRefreshToken(token string) bool {
	return u.RefreshToken != nil && *u.RefreshToken == token
}
