package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prperemyshlev/contact-book/internal/domain"
	"github.com/prperemyshlev/contact-book/internal/repository"
)

// Page size bounds of contact listings
const (
	MinPageLimit     = 10
	MaxPageLimit     = 500
	DefaultPageLimit = 10
)

// contactService implements ContactService interface
type contactService struct {
	contactRepo repository.ContactRepository
	now         func() time.Time
}

// NewContactService creates a new contact service
func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo, now: time.Now}
}

func notFound(err error, action string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// List returns a page of the user's contacts
func (s *contactService) List(ctx context.Context, userID string, limit, offset int) ([]*domain.Contact, error) {
	if limit < MinPageLimit || limit > MaxPageLimit {
		return nil, fmt.Errorf("%w: limit must be between %d and %d", domain.ErrInvalidInput, MinPageLimit, MaxPageLimit)
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", domain.ErrInvalidInput)
	}

	contacts, err := s.contactRepo.List(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

// Get returns one contact of the user
func (s *contactService) Get(ctx context.Context, userID, id string) (*domain.Contact, error) {
	contact, err := s.contactRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, notFound(err, "get contact")
	}
	return contact, nil
}

// SearchByName returns the user's contacts with exactly this name
func (s *contactService) SearchByName(ctx context.Context, userID, name string) ([]*domain.Contact, error) {
	contacts, err := s.contactRepo.FindByName(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts by name: %w", err)
	}
	return contacts, nil
}

// SearchBySurname returns the user's contacts with exactly this surname
func (s *contactService) SearchBySurname(ctx context.Context, userID, surname string) ([]*domain.Contact, error) {
	contacts, err := s.contactRepo.FindBySurname(ctx, userID, surname)
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts by surname: %w", err)
	}
	return contacts, nil
}

// SearchByEmail returns the user's contact with this email
func (s *contactService) SearchByEmail(ctx context.Context, userID, email string) (*domain.Contact, error) {
	contact, err := s.contactRepo.FindByEmail(ctx, userID, email)
	if err != nil {
		return nil, notFound(err, "search contacts by email")
	}
	return contact, nil
}

// UpcomingBirthdays returns the user's contacts whose birthday falls within
// the next days days, today included
func (s *contactService) UpcomingBirthdays(ctx context.Context, userID string, days int) ([]*domain.Contact, error) {
	if days < 0 || days > domain.MaxBirthdayWindow {
		return nil, fmt.Errorf("%w: n must be between 0 and %d", domain.ErrInvalidInput, domain.MaxBirthdayWindow)
	}

	contacts, err := s.contactRepo.ListWithBirthday(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts with birthday: %w", err)
	}

	today := s.now()
	upcoming := make([]*domain.Contact, 0, len(contacts))
	for _, contact := range contacts {
		if contact.Birthday != nil && domain.BirthdayWithin(*contact.Birthday, today, days) {
			upcoming = append(upcoming, contact)
		}
	}

	return upcoming, nil
}

// Create adds a contact owned by userID
func (s *contactService) Create(ctx context.Context, userID string, fields domain.ContactFields) (*domain.Contact, error) {
	contact := &domain.Contact{UserID: userID}
	contact.Apply(fields)

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	return contact, nil
}

// Update replaces the mutable fields of one of the user's contacts
func (s *contactService) Update(ctx context.Context, userID, id string, fields domain.ContactFields) (*domain.Contact, error) {
	contact, err := s.contactRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, notFound(err, "get contact")
	}

	contact.Apply(fields)

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, notFound(err, "update contact")
	}
	return contact, nil
}

// Delete removes one of the user's contacts
func (s *contactService) Delete(ctx context.Context, userID, id string) error {
	if err := s.contactRepo.Delete(ctx, userID, id); err != nil {
		return notFound(err, "delete contact")
	}
	return nil
}
