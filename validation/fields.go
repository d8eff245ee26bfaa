package validation

import (
	"bytes"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/models"
)

func stringField(r Record, name string, maxLen int) (string, error) {
	raw := r[name]
	if isNull(raw) {
		return "", errs.NewInvalidFieldError(name, "cannot be null")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", errs.NewInvalidFieldError(name, "must be a string")
	}
	if maxLen > 0 && utf8.RuneCountInString(s) > maxLen {
		return "", errs.NewInvalidFieldError(name, "is too long")
	}
	return s, nil
}

func optionalString(r Record, name string, maxLen int) (*string, error) {
	if !r.present(name) {
		return nil, nil
	}
	s, err := stringField(r, name, maxLen)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func integerField(r Record, name string) (int64, error) {
	raw := r[name]
	if isNull(raw) {
		return 0, errs.NewInvalidFieldError(name, "cannot be null")
	}
	n, err := ValidateIntegerIdentifier(string(bytes.TrimSpace(raw)))
	if err != nil {
		return 0, errs.NewInvalidFieldError(name, "must be an integer")
	}
	return n, nil
}

func optionalDate(r Record, name string) (*models.Date, error) {
	if !r.present(name) {
		return nil, nil
	}
	var d models.Date
	if err := json.Unmarshal(r[name], &d); err != nil {
		return nil, errs.NewInvalidFieldError(name, "must be a date formatted YYYY-MM-DD")
	}
	return &d, nil
}

// recordList decodes an array of objects. A null decodes to an empty list.
func recordList(r Record, name string) ([]Record, error) {
	var list []Record
	if err := json.Unmarshal(r[name], &list); err != nil {
		return nil, errs.NewInvalidFieldError(name, "must be an array of objects")
	}
	return list, nil
}
