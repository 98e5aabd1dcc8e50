package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/contact-book/internal/domain"
	"github.com/prperemyshlev/contact-book/internal/dto"
	"github.com/prperemyshlev/contact-book/internal/service"
)

const (
	contextUserKey  = "user"
	contextTokenKey = "access_token"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>" header
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error:   http.StatusText(http.StatusUnauthorized),
		Message: message,
	})
}

// AuthMiddleware resolves the access token to a user and adds it to the context
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			unauthorized(c, "Not authenticated")
			return
		}

		user, err := authService.CurrentUser(c.Request.Context(), token)
		if err != nil {
			if statusFor(err) == http.StatusInternalServerError {
				respondError(c, err)
				return
			}
			if errors.Is(err, domain.ErrUserNotFound) {
				err = domain.ErrInvalidToken
			}
			unauthorized(c, err.Error())
			return
		}

		c.Set(contextUserKey, user)
		c.Set(contextTokenKey, token)

		c.Next()
	}
}

// currentUser returns the user stored by AuthMiddleware
func currentUser(c *gin.Context) (*domain.User, bool) {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*domain.User)
	return user, ok
}
