package domain

import "time"

// Contact is an address book entry owned by exactly one user
type Contact struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	Name        string     `json:"name" db:"name"`
	Surname     string     `json:"surname" db:"surname"`
	PhoneNumber string     `json:"phone_number" db:"phone_number"`
	Email       string     `json:"email" db:"email"`
	Birthday    *time.Time `json:"birthday" db:"birthday"`
	Notes       *string    `json:"notes" db:"notes"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// ContactFields holds the mutable part of a contact
type ContactFields struct {
	Name        string
	Surname     string
	PhoneNumber string
	Email       string
	Birthday    *time.Time
	Notes       *string
}

// Apply overwrites every mutable field of the contact.
// ID and UserID are left untouched.
func (c *Contact) Apply(f ContactFields) {
	c.Name = f.Name
	c.Surname = f.Surname
	c.PhoneNumber = f.PhoneNumber
	c.Email = f.Email
	c.Birthday = f.Birthday
	c.Notes = f.Notes
}
