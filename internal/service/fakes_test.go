package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/contact-book/internal/domain"
	"github.com/prperemyshlev/contact-book/internal/repository"
)

// memoryUserRepository is an in-memory repository.UserRepository keyed by email
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepository) copyOf(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.Email] = r.copyOf(user)
	return nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.copyOf(u), nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == id {
			return r.copyOf(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryUserRepository) UpdateRefreshToken(_ context.Context, userID string, token *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == userID {
			if token == nil {
				u.RefreshToken = nil
			} else {
				t := *token
				u.RefreshToken = &t
			}
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memoryUserRepository) MarkConfirmed(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return false, repository.ErrNotFound
	}
	already := u.Confirmed
	u.Confirmed = true
	return already, nil
}

func (r *memoryUserRepository) UpdateAvatar(_ context.Context, email string, url *string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Avatar = url
	return r.copyOf(u), nil
}

func (r *memoryUserRepository) UpdatePassword(_ context.Context, email, passwordHash string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return r.copyOf(u), nil
}

// recordingMailer collects queued confirmation tasks
type recordingMailer struct {
	mu    sync.Mutex
	tasks []ConfirmationTask
}

func (m *recordingMailer) Enqueue(task ConfirmationTask) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, task)
	return true
}

func (m *recordingMailer) Tasks() []ConfirmationTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ConfirmationTask(nil), m.tasks...)
}
