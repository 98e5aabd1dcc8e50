package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prperemyshlev/contact-book/internal/domain"
	"github.com/prperemyshlev/contact-book/internal/dto"
	"go.uber.org/zap"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{domain.ErrDuplicateEmail, http.StatusConflict},
	{domain.ErrInvalidEmail, http.StatusUnauthorized},
	{domain.ErrInvalidPassword, http.StatusUnauthorized},
	{domain.ErrEmailNotConfirmed, http.StatusUnauthorized},
	{domain.ErrInvalidToken, http.StatusUnauthorized},
	{domain.ErrExpiredToken, http.StatusUnauthorized},
	{domain.ErrWrongTokenKind, http.StatusUnauthorized},
	{domain.ErrTokenMismatch, http.StatusUnauthorized},
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrInvalidInput, http.StatusUnprocessableEntity},
	{domain.ErrInvalidImage, http.StatusUnprocessableEntity},
}

// statusFor maps a service error to its HTTP status, 500 when unknown
func statusFor(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes the error body for err. Internal errors are logged and
// their details hidden from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		message = "Internal server error"
	}

	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// respondValidationError writes a 422 with the failed fields when available
func respondValidationError(c *gin.Context, err error) {
	resp := dto.ErrorResponse{
		Error:   http.StatusText(http.StatusUnprocessableEntity),
		Message: "Validation failed",
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		resp.Details = fields
	} else {
		resp.Message = err.Error()
	}

	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, resp)
}
