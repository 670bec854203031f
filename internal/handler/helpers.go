package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edudocs-api/internal/middleware"
	"github.com/noah-isme/edudocs-api/internal/repository"
	"github.com/noah-isme/edudocs-api/internal/utils"
)

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule,omitempty"`
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := middleware.RequestLogger(base, c)
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors) || errors.Is(err, repository.ErrValidation)
}

// sendValidationError reports a DTO or repository validation failure with
// the offending fields in the details.
func sendValidationError(c *fiber.Ctx, err error) error {
	var repoErr *repository.ValidationError
	if errors.As(err, &repoErr) {
		return utils.SendErrorWithDetails(c, fiber.StatusBadRequest, repoErr.Error(), []fieldError{{Field: repoErr.Field}})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]fieldError, 0, len(validationErrors))
		for _, fe := range validationErrors {
			details = append(details, fieldError{Field: utils.SnakeCase(fe.Field()), Rule: fe.Tag()})
		}
		return utils.SendErrorWithDetails(c, fiber.StatusBadRequest, "invalid payload", details)
	}

	return utils.SendError(c, fiber.StatusBadRequest, err.Error())
}
