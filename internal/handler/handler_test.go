package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/contact-book/internal/domain"
	"github.com/prperemyshlev/contact-book/internal/dto"
	"github.com/prperemyshlev/contact-book/internal/service"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	validToken = "valid-access-token"
	contactID1 = "6f1c2f9e-3a0b-4c55-9d8e-2b1f0a7c4d11"
)

var testUser = &domain.User{
	ID:        "0b6d3c1e-8f3a-4e57-9a0c-1d2e3f4a5b6c",
	Username:  "alice",
	Email:     "alice@example.com",
	Confirmed: true,
}

func init() {
	gin.SetMode(gin.TestMode)
	if err := RegisterValidators(); err != nil {
		panic(err)
	}
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Signup(ctx context.Context, req *dto.SignupRequest, baseURL string) (*domain.User, error) {
	args := m.Called(ctx, req, baseURL)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*domain.TokenPair, error) {
	args := m.Called(ctx, req)
	pair, _ := args.Get(0).(*domain.TokenPair)
	return pair, args.Error(1)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	pair, _ := args.Get(0).(*domain.TokenPair)
	return pair, args.Error(1)
}

func (m *mockAuthService) ConfirmEmail(ctx context.Context, token string) (domain.ConfirmationResult, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.ConfirmationResult), args.Error(1)
}

func (m *mockAuthService) RequestConfirmation(ctx context.Context, email, baseURL string) (domain.ConfirmationResult, error) {
	args := m.Called(ctx, email, baseURL)
	return args.Get(0).(domain.ConfirmationResult), args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, userID, accessToken string) error {
	args := m.Called(ctx, userID, accessToken)
	return args.Error(0)
}

// CurrentUser accepts validToken only
func (m *mockAuthService) CurrentUser(_ context.Context, accessToken string) (*domain.User, error) {
	if accessToken != validToken {
		return nil, domain.ErrInvalidToken
	}
	return testUser, nil
}

type mockContactService struct {
	mock.Mock
}

func (m *mockContactService) List(ctx context.Context, userID string, limit, offset int) ([]*domain.Contact, error) {
	args := m.Called(ctx, userID, limit, offset)
	contacts, _ := args.Get(0).([]*domain.Contact)
	return contacts, args.Error(1)
}

func (m *mockContactService) Get(ctx context.Context, userID, id string) (*domain.Contact, error) {
	args := m.Called(ctx, userID, id)
	contact, _ := args.Get(0).(*domain.Contact)
	return contact, args.Error(1)
}

func (m *mockContactService) SearchByName(ctx context.Context, userID, name string) ([]*domain.Contact, error) {
	args := m.Called(ctx, userID, name)
	contacts, _ := args.Get(0).([]*domain.Contact)
	return contacts, args.Error(1)
}

func (m *mockContactService) SearchBySurname(ctx context.Context, userID, surname string) ([]*domain.Contact, error) {
	args := m.Called(ctx, userID, surname)
	contacts, _ := args.Get(0).([]*domain.Contact)
	return contacts, args.Error(1)
}

func (m *mockContactService) SearchByEmail(ctx context.Context, userID, email string) (*domain.Contact, error) {
	args := m.Called(ctx, userID, email)
	contact, _ := args.Get(0).(*domain.Contact)
	return contact, args.Error(1)
}

func (m *mockContactService) UpcomingBirthdays(ctx context.Context, userID string, days int) ([]*domain.Contact, error) {
	args := m.Called(ctx, userID, days)
	contacts, _ := args.Get(0).([]*domain.Contact)
	return contacts, args.Error(1)
}

func (m *mockContactService) Create(ctx context.Context, userID string, fields domain.ContactFields) (*domain.Contact, error) {
	args := m.Called(ctx, userID, fields)
	contact, _ := args.Get(0).(*domain.Contact)
	return contact, args.Error(1)
}

func (m *mockContactService) Update(ctx context.Context, userID, id string, fields domain.ContactFields) (*domain.Contact, error) {
	args := m.Called(ctx, userID, id, fields)
	contact, _ := args.Get(0).(*domain.Contact)
	return contact, args.Error(1)
}

func (m *mockContactService) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) UpdateAvatar(ctx context.Context, user *domain.User, image io.Reader) (*domain.User, error) {
	args := m.Called(ctx, user, image)
	updated, _ := args.Get(0).(*domain.User)
	return updated, args.Error(1)
}

func (m *mockUserService) ChangePassword(ctx context.Context, user *domain.User, oldPassword, newPassword string) (*domain.User, error) {
	args := m.Called(ctx, user, oldPassword, newPassword)
	updated, _ := args.Get(0).(*domain.User)
	return updated, args.Error(1)
}

type stubLimiter struct {
	allowed bool
}

func (s stubLimiter) Allow(_ context.Context, _ string, limit int, _ time.Duration) (*service.RateLimitResult, error) {
	if s.allowed {
		return &service.RateLimitResult{Allowed: true, Limit: limit, Remaining: limit - 1}, nil
	}
	return &service.RateLimitResult{Limit: limit, RetryAfter: 15 * time.Second}, nil
}

type testServer struct {
	router   *gin.Engine
	auth     *mockAuthService
	contacts *mockContactService
	users    *mockUserService
}

func newTestServer() *testServer {
	s := &testServer{
		router:   gin.New(),
		auth:     &mockAuthService{},
		contacts: &mockContactService{},
		users:    &mockUserService{},
	}

	authHandler := NewAuthHandler(s.auth, "http://book.example.com/")
	userHandler := NewUserHandler(s.users, 1<<20)
	contactHandler := NewContactHandler(s.contacts)
	requireUser := AuthMiddleware(s.auth)

	api := s.router.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.GET("/refresh_token", authHandler.RefreshToken)
	auth.GET("/confirmed_email/:token", authHandler.ConfirmEmail)
	auth.POST("/request_email", authHandler.RequestEmail)
	auth.POST("/logout", requireUser, authHandler.Logout)

	users := api.Group("/users", requireUser)
	users.GET("/me", userHandler.GetMe)
	users.PATCH("/avatar", userHandler.UpdateAvatar)
	users.PATCH("/password", userHandler.ChangePassword)

	contacts := api.Group("/contacts", requireUser)
	contacts.GET("", contactHandler.List)
	contacts.GET("/name", contactHandler.SearchByName)
	contacts.GET("/surname", contactHandler.SearchBySurname)
	contacts.GET("/email", contactHandler.SearchByEmail)
	contacts.GET("/birthday", contactHandler.UpcomingBirthdays)
	contacts.GET("/:id", contactHandler.Get)
	contacts.POST("", contactHandler.Create)
	contacts.PUT("/:id", contactHandler.Update)
	contacts.DELETE("/:id", contactHandler.Delete)

	return s
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
