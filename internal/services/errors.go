package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/edu-core/school-service/internal/validator"
)

// Sentinel errors shared across services. Handlers map these to HTTP codes.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// ValidationError wraps field-level failures so handlers can return the
// per-field detail while errors.Is still matches ErrValidationFailed.
type ValidationError struct {
	Fields validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	return e.Fields.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError builds the wrapper from validator output
func NewValidationError(fields validator.ValidationErrors) error {
	return &ValidationError{Fields: fields}
}

// PermissionError records who was denied what
type PermissionError struct {
	Role      string
	Privilege string
	Reason    string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied for role %s on %s: %s", e.Role, e.Privilege, e.Reason)
}

func (e *PermissionError) Unwrap() error {
	return ErrForbidden
}

// NewPermissionError creates a permission error
func NewPermissionError(role, privilege, reason string) error {
	return &PermissionError{Role: role, Privilege: privilege, Reason: reason}
}

// translateDBError maps gorm sentinels onto service sentinels. The unique
// indexes on users.username, teacher.teacher_name and auth_privilege.role_name
// surface as gorm.ErrDuplicatedKey through the driver's error translation.
func translateDBError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", resource, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", resource, ErrAlreadyExists)
	default:
		return err
	}
}
