// Package validation checks path parameters and request bodies before they
// reach the database layer. Every contract stops at the first violated rule.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/rpupo63/portfolio-api/errs"
)

var integerIdentifier = regexp.MustCompile(`^-?\d+$`)

// ErrNotInteger is returned by ValidateIntegerIdentifier.
var ErrNotInteger = errors.New("value is not an integer")

// Record is a decoded JSON object whose values are kept raw so presence and
// explicit nulls can be told apart.
type Record map[string]json.RawMessage

// DecodeRecord parses a request body into a Record. An empty body is an empty record.
func DecodeRecord(body []byte) (Record, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Record{}, nil
	}
	var r Record
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, errs.NewMalformedPayloadError("request body", err)
	}
	if r == nil {
		r = Record{}
	}
	return r, nil
}

// ValidateIntegerIdentifier accepts only optionally signed decimal digit strings
// that fit in an int64.
func ValidateIntegerIdentifier(value string) (int64, error) {
	if !integerIdentifier.MatchString(value) {
		return 0, fmt.Errorf("%q: %w", value, ErrNotInteger)
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", value, ErrNotInteger)
	}
	return id, nil
}

// ParseIdentifier runs ValidateIntegerIdentifier and turns a failure into a
// 400 carrying message.
func ParseIdentifier(value, message string) (int64, error) {
	id, err := ValidateIntegerIdentifier(value)
	if err != nil {
		return 0, errs.NewBadRequestError(message)
	}
	return id, nil
}

// RequireAllOf reports whether every field is present as a key. Null values count as present.
func RequireAllOf(r Record, fields ...string) bool {
	for _, f := range fields {
		if _, ok := r[f]; !ok {
			return false
		}
	}
	return true
}

// RequireAnyOf reports whether at least one field is present as a key.
func RequireAnyOf(r Record, fields ...string) bool {
	for _, f := range fields {
		if _, ok := r[f]; ok {
			return true
		}
	}
	return false
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// present is true when the key exists and is not an explicit null.
func (r Record) present(field string) bool {
	raw, ok := r[field]
	return ok && !isNull(raw)
}
