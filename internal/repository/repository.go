package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/edudocs-api/internal/models"
	"github.com/noah-isme/edudocs-api/internal/utils"
)

// ErrValidation is matched by every ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports an invalid identifier or an empty required field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Is makes ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Repository is the authoritative store of users and documents.
//
// Every call may be delayed; results are snapshots that callers may modify
// without affecting the store. Lookups of unknown ids report absence through
// the boolean result rather than an error.
type Repository interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (models.User, bool, error)
	CreateUser(ctx context.Context, name string, role models.Role) (models.User, error)
	ListDocuments(ctx context.Context) ([]models.Document, error)
	ListDocumentsByStudent(ctx context.Context, studentID string) ([]models.Document, error)
	CreateDocument(ctx context.Context, doc models.NewDocument, blob *models.FileBlob) (models.Document, error)
	UpdateDocumentStatus(ctx context.Context, docID string, status models.DocumentStatus) (models.Document, bool, error)
}

func validationFailure(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// translateValidation turns validator field errors into a ValidationError
// describing the first offending field.
func translateValidation(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return err
	}

	first := fieldErrors[0]
	field := utils.SnakeCase(first.Field())
	switch first.Tag() {
	case "required":
		return validationFailure(field, "is required")
	case "oneof":
		return validationFailure(field, "must be one of: "+strings.ReplaceAll(first.Param(), " ", ", "))
	case "max":
		return validationFailure(field, "must be at most "+first.Param()+" characters")
	default:
		return validationFailure(field, "is invalid")
	}
}
