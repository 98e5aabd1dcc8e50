package handler

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prperemyshlev/contact-book/internal/utils"
)

// RegisterValidators adds the custom binding tags used by request DTOs
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return utils.ValidatePhone(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register phone validator: %w", err)
	}

	if err := v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return utils.PasswordFits(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register bcryptlen validator: %w", err)
	}

	return nil
}
