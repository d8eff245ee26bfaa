// Package query turns the listing endpoint's show_only, sort_by and order_by
// parameters into a parameterized SQL tail. Only allow-listed column names are
// concatenated; every value is bound.
package query

import (
	"fmt"
	"strings"

	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/validation"
)

// Clause is a SQL fragment and the arguments bound to its placeholders.
type Clause struct {
	SQL  string
	Args []any
}

func (c Clause) IsEmpty() bool {
	return c.SQL == ""
}

// Append joins other onto c with a single space.
func (c Clause) Append(other Clause) Clause {
	if other.IsEmpty() {
		return c
	}
	if c.IsEmpty() {
		return other
	}
	return Clause{
		SQL:  c.SQL + " " + other.SQL,
		Args: append(append([]any{}, c.Args...), other.Args...),
	}
}

// Filter holds the raw listing parameters.
type Filter struct {
	ShowOnly          string
	ShowOnlyAttribute string
	SortBy            string
	OrderBy           string
}

var blockList = []string{
	"select",
	"from",
	"where",
	"sort by",
	"order by",
	"having",
	"drop",
	"project",
	"project_details",
	"images",
	"database",
}

// CheckInjection rejects the request when any named value contains a
// block-listed keyword, ignoring case. params alternates name, value.
func CheckInjection(params ...string) error {
	for i := 0; i+1 < len(params); i += 2 {
		value := strings.ToLower(params[i+1])
		for _, word := range blockList {
			if strings.Contains(value, word) {
				return errs.NewSQLInjectionError(params[i])
			}
		}
	}
	return nil
}

// BuildFilterClause maps a show_only axis to a WHERE clause. Unknown axes yield
// an empty clause.
func BuildFilterClause(axis, value string) (Clause, error) {
	switch axis {
	case "Year":
		year, err := integerAttribute(value)
		if err != nil {
			return Clause{}, err
		}
		return Clause{SQL: "WHERE finished >= ?", Args: []any{yearStart(year)}}, nil
	case "Program":
		if value == "" {
			return Clause{}, missingAttribute()
		}
		return Clause{SQL: "WHERE program = ?", Args: []any{value}}, nil
	case "Complexity":
		complexity, err := integerAttribute(value)
		if err != nil {
			return Clause{}, err
		}
		return Clause{SQL: "WHERE complexity = ?", Args: []any{complexity}}, nil
	}
	return Clause{}, nil
}

// BuildSortClause maps a sort_by axis to an ORDER BY clause.
func BuildSortClause(axis string) string {
	switch axis {
	case "Date":
		return "ORDER BY finished"
	case "Program":
		return "ORDER BY program"
	case "Complexity":
		return "ORDER BY complexity"
	}
	return ""
}

func BuildDirectionClause(direction string) string {
	switch direction {
	case "ASC", "DESC":
		return direction
	}
	return ""
}

// Build runs the injection gate and assembles filter, sort and direction.
// A direction without a sort clause is dropped.
func Build(f Filter) (Clause, error) {
	if err := CheckInjection(
		"show_only", f.ShowOnly,
		"show_only_attribute", f.ShowOnlyAttribute,
		"sort_by", f.SortBy,
		"order_by", f.OrderBy,
	); err != nil {
		return Clause{}, err
	}

	clause, err := BuildFilterClause(f.ShowOnly, f.ShowOnlyAttribute)
	if err != nil {
		return Clause{}, err
	}

	sort := BuildSortClause(f.SortBy)
	if sort == "" {
		return clause, nil
	}
	clause = clause.Append(Clause{SQL: sort})
	return clause.Append(Clause{SQL: BuildDirectionClause(f.OrderBy)}), nil
}

func integerAttribute(value string) (int64, error) {
	if value == "" {
		return 0, missingAttribute()
	}
	n, err := validation.ValidateIntegerIdentifier(value)
	if err != nil {
		return 0, errs.NewInvalidFieldError("show_only_attribute", "must be an integer")
	}
	return n, nil
}

func missingAttribute() error {
	return errs.NewBadRequestErrorWithField("Error, show_only requires a show_only_attribute", "show_only_attribute")
}

func yearStart(year int64) string {
	return fmt.Sprintf("%04d-01-01", year)
}
