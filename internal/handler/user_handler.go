package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/contact-book/internal/dto"
	"github.com/prperemyshlev/contact-book/internal/service"
)

// UserHandler handles profile requests of the current user
type UserHandler struct {
	userService    service.UserService
	avatarMaxBytes int64
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserService, avatarMaxBytes int64) *UserHandler {
	return &UserHandler{
		userService:    userService,
		avatarMaxBytes: avatarMaxBytes,
	}
}

// GetMe returns the current user
func (h *UserHandler) GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		unauthorized(c, "Not authenticated")
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UpdateAvatar replaces the avatar with the uploaded multipart "file"
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		unauthorized(c, "Not authenticated")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.avatarMaxBytes)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
				Error:   http.StatusText(http.StatusRequestEntityTooLarge),
				Message: "Avatar file is too large",
			})
			return
		}
		respondValidationError(c, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondValidationError(c, err)
		return
	}
	defer file.Close()

	updated, err := h.userService.UpdateAvatar(c.Request.Context(), user, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(updated))
}

// ChangePassword replaces the password of the current user
func (h *UserHandler) ChangePassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		unauthorized(c, "Not authenticated")
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	updated, err := h.userService.ChangePassword(c.Request.Context(), user, req.OldPassword, req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(updated))
}
