package dto

import (
	"time"

	"github.com/prperemyshlev/contact-book/internal/domain"
)

const dateLayout = "2006-01-02"

// UserResponse represents a user response
type UserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Avatar    *string `json:"avatar"`
	Confirmed bool    `json:"confirmed"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// ContactResponse represents a contact response
type ContactResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Surname     string  `json:"surname"`
	PhoneNumber string  `json:"phone_number"`
	Email       string  `json:"email"`
	Birthday    *string `json:"birthday"`
	Notes       *string `json:"notes"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// NewUserResponse converts a user to its public representation
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Avatar:    user.Avatar,
		Confirmed: user.Confirmed,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

// NewContactResponse converts a contact to its public representation
func NewContactResponse(contact *domain.Contact) ContactResponse {
	resp := ContactResponse{
		ID:          contact.ID,
		Name:        contact.Name,
		Surname:     contact.Surname,
		PhoneNumber: contact.PhoneNumber,
		Email:       contact.Email,
		Notes:       contact.Notes,
		CreatedAt:   contact.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   contact.UpdatedAt.Format(time.RFC3339),
	}

	if contact.Birthday != nil {
		birthday := contact.Birthday.Format(dateLayout)
		resp.Birthday = &birthday
	}

	return resp
}

// NewContactListResponse converts contacts preserving their order
func NewContactListResponse(contacts []*domain.Contact) []ContactResponse {
	resp := make([]ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		resp = append(resp, NewContactResponse(contact))
	}
	return resp
}
