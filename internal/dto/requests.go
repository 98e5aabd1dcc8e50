package dto

import (
	"time"

	"github.com/prperemyshlev/contact-book/internal/domain"
)

// SignupRequest represents a signup request.
// bcryptlen caps the password at the 72 bytes bcrypt can hash.
type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email,max=150"`
	Password string `json:"password" binding:"required,min=6,bcryptlen"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RequestEmailRequest asks for the confirmation email to be sent again
type RequestEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ChangePasswordRequest represents a password change of the current user
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,bcryptlen"`
}

// ContactRequest is the body of contact create and update requests.
// Birthday uses the YYYY-MM-DD layout.
type ContactRequest struct {
	Name        string  `json:"name" binding:"required,min=3,max=50"`
	Surname     string  `json:"surname" binding:"required,min=3,max=50"`
	PhoneNumber string  `json:"phone_number" binding:"required,phone"`
	Email       string  `json:"email" binding:"required,email,max=150"`
	Birthday    *string `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
	Notes       *string `json:"notes" binding:"omitempty,max=500"`
}

// ListContactsQuery holds pagination parameters
type ListContactsQuery struct {
	Limit  int `form:"limit,default=10"`
	Offset int `form:"offset,default=0"`
}

// BirthdayQuery holds the size of the upcoming birthday window in days
type BirthdayQuery struct {
	Days int `form:"n,default=7"`
}

// ContactIDURI binds the contact id path parameter
type ContactIDURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Fields converts the request into contact fields
func (r *ContactRequest) Fields() (domain.ContactFields, error) {
	fields := domain.ContactFields{
		Name:        r.Name,
		Surname:     r.Surname,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
		Notes:       r.Notes,
	}

	if r.Birthday != nil && *r.Birthday != "" {
		birthday, err := time.Parse(dateLayout, *r.Birthday)
		if err != nil {
			return domain.ContactFields{}, err
		}
		fields.Birthday = &birthday
	}

	return fields, nil
}
