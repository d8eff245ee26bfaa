package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Request & Input-Validation Errors
var (
	ErrMalformedPayload     = fmt.Errorf("malformed payload: %w", ErrBadRequest)
	ErrMissingRequiredField = fmt.Errorf("missing required field: %w", ErrBadRequest)
	ErrInvalidField         = fmt.Errorf("invalid field: %w", ErrBadRequest)
	ErrSQLInjection         = fmt.Errorf("SQL injection attempt: %w", ErrBadRequest)
)

const sqlInjectionMessage = "Attempted SQL injection"

func NewMalformedPayloadError(payloadType string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        kindError{ErrMalformedPayload, fmt.Sprintf("malformed %s", payloadType)},
		Cause:      cause,
		Field:      "payload",
	}
}

// NewMissingRequiredFieldError reports an absent field using the caller's exact message.
func NewMissingRequiredFieldError(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        kindError{ErrMissingRequiredField, message},
	}
}

func NewInvalidFieldError(fieldName string, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        kindError{ErrInvalidField, fmt.Sprintf("Error, '%s' %s", fieldName, reason)},
		Field:      fieldName,
	}
}

// NewSQLInjectionError rejects a listing query parameter that tripped the block-list.
func NewSQLInjectionError(parameter string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        kindError{ErrSQLInjection, sqlInjectionMessage},
		Field:      parameter,
	}
}

func IsMalformedPayloadError(err error) bool {
	return errors.Is(err, ErrMalformedPayload)
}

func IsMissingRequiredFieldError(err error) bool {
	return errors.Is(err, ErrMissingRequiredField)
}

func IsInvalidFieldError(err error) bool {
	return errors.Is(err, ErrInvalidField)
}

func IsSQLInjectionError(err error) bool {
	return errors.Is(err, ErrSQLInjection)
}
