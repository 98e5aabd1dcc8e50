package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/contact-book/internal/dto"
	"github.com/prperemyshlev/contact-book/internal/service"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService service.AuthService
	publicURL   string
}

// NewAuthHandler creates a new auth handler. publicURL is the base of links
// in confirmation emails. When empty the request's own host is used, with the
// scheme taken from TLS or an http/https X-Forwarded-Proto.
func NewAuthHandler(authService service.AuthService, publicURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		publicURL:   publicURL,
	}
}

func (h *AuthHandler) baseURL(c *gin.Context) string {
	if h.publicURL != "" {
		return h.publicURL
	}

	// Host comes from the client here. Production deployments set publicURL.
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	switch proto := strings.ToLower(c.GetHeader("X-Forwarded-Proto")); proto {
	case "http", "https":
		scheme = proto
	}
	return scheme + "://" + c.Request.Host + "/"
}

// Signup handles user registration
// @Summary Register a new user
// @Description Create an unconfirmed account and send the confirmation email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup request"
// @Success 201 {object} dto.UserResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), &req, h.baseURL(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Login handles user login
// @Summary Login user
// @Description Authenticate a confirmed user with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} domain.TokenPair
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	pair, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// RefreshToken handles token refresh
// @Summary Refresh tokens
// @Description Exchange the refresh token from the Authorization header for a new pair
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.TokenPair
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/refresh_token [get]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		unauthorized(c, "Not authenticated")
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// ConfirmEmail handles the link from the confirmation email
// @Summary Confirm email
// @Tags auth
// @Produce json
// @Param token path string true "Email confirmation token"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /auth/confirmed_email/{token} [get]
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	result, err := h.authService.ConfirmEmail(c.Request.Context(), c.Param("token"))
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			respondError(c, err)
			return
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   http.StatusText(http.StatusBadRequest),
			Message: "Verification error",
		})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: result.Message()})
}

// RequestEmail sends the confirmation email again
// @Summary Request confirmation email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RequestEmailRequest true "Email"
// @Success 200 {object} dto.SuccessResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /auth/request_email [post]
func (h *AuthHandler) RequestEmail(c *gin.Context) {
	var req dto.RequestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.authService.RequestConfirmation(c.Request.Context(), req.Email, h.baseURL(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: result.Message()})
}

// Logout handles user logout
// @Summary Logout user
// @Description Drop the stored refresh token and revoke the access token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		unauthorized(c, "Not authenticated")
		return
	}

	token := c.GetString(contextTokenKey)
	if err := h.authService.Logout(c.Request.Context(), user.ID, token); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Logged out successfully",
	})
}
