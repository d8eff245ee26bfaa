package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = fmt.Errorf("database query failed: %w", ErrInternal)
	ErrDatabaseConnection = errors.New("database connection failed")
)

// Database & Storage Specific Errors
var (
	ErrUniqueConstraintViolation = fmt.Errorf("unique constraint violation: %w", ErrConflict)
	ErrForeignKeyConstraint      = fmt.Errorf("foreign key constraint violation: %w", ErrBadRequest)
	ErrNotNullConstraint         = fmt.Errorf("not null constraint violation: %w", ErrBadRequest)
	ErrTransactionFailed         = fmt.Errorf("transaction failed: %w", ErrInternal)
)

// postgres SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// NewDatabaseError creates a new database error with details about the operation.
// Errors that are already an *ApiErr are returned unchanged.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	var apiErr *ApiErr
	if errors.As(cause, &apiErr) {
		return apiErr
	}

	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	if cause != nil {
		switch {
		case isUniqueViolation(cause):
			return &ApiErr{
				StatusCode: http.StatusConflict,
				err:        kindError{ErrUniqueConstraintViolation, fmt.Sprintf("%s already exists", entity)},
				Details:    details,
				Cause:      cause,
			}
		case isForeignKeyViolation(cause):
			return &ApiErr{
				StatusCode: http.StatusBadRequest,
				err:        kindError{ErrForeignKeyConstraint, fmt.Sprintf("invalid reference in %s", entity)},
				Details:    "The referenced resource does not exist or cannot be linked",
				Cause:      cause,
			}
		case isNotNullViolation(cause):
			return &ApiErr{
				StatusCode: http.StatusBadRequest,
				err:        kindError{ErrNotNullConstraint, fmt.Sprintf("missing required value in %s", entity)},
				Details:    details,
				Cause:      cause,
			}
		case strings.Contains(cause.Error(), "connection refused"), strings.Contains(cause.Error(), "bad connection"):
			return &ApiErr{
				StatusCode: http.StatusServiceUnavailable,
				err:        ErrDatabaseConnection,
				Details:    "Unable to connect to database",
				Cause:      cause,
			}
		}
	}

	// Generic database error
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    details,
		Cause:      cause,
	}
}

// NewTransactionFailedError wraps a failure that rolled a write transaction back.
func NewTransactionFailedError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrTransactionFailed,
		Details:    fmt.Sprintf("Transaction failed during %s", operation),
		Cause:      cause,
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	msg := err.Error()
	return strings.Contains(msg, "foreign key constraint") || strings.Contains(msg, "FOREIGN KEY constraint failed")
}

func isNotNullViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgNotNullViolation
	}
	return strings.Contains(err.Error(), "NOT NULL constraint failed")
}

func IsUniqueConstraintViolationError(err error) bool {
	return errors.Is(err, ErrUniqueConstraintViolation)
}

func IsForeignKeyConstraintError(err error) bool {
	return errors.Is(err, ErrForeignKeyConstraint)
}

func IsTransactionFailedError(err error) bool {
	return errors.Is(err, ErrTransactionFailed)
}
