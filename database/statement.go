package database

import (
	"strings"
)

// insertStatement builds one multi-row INSERT with a placeholder per value.
func insertStatement(table string, columns []string, rows [][]any) (string, []any) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteString(") VALUES ")

	group := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	args := make([]any, 0, len(rows)*len(columns))
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(group)
		args = append(args, row...)
	}
	return sb.String(), args
}

// updateStatement builds an UPDATE assigning each column to a placeholder.
func updateStatement(table string, columns []string, where string) string {
	assignments := make([]string, len(columns))
	for i, c := range columns {
		assignments[i] = c + " = ?"
	}
	return "UPDATE " + table + " SET " + strings.Join(assignments, ", ") + " WHERE " + where
}
