// Package sqlerr specifically handles database driver errors.
//
// It normalizes postgres (pgconn) and sqlite (go-sqlite3) errors into one
// Kind taxonomy, and translates the kinds the API has a policy for into
// HTTP errors. Everything else is left for the generic error handler.
package sqlerr

import "strings"

// Kind is the enumerated set of database failures the application distinguishes.
type Kind int

const (
	Other Kind = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
	NoRows
)

func (k Kind) String() string {
	switch k {
	case UniqueViolation:
		return "unique_violation"
	case ForeignKeyViolation:
		return "foreign_key_violation"
	case NotNullViolation:
		return "not_null_violation"
	case CheckViolation:
		return "check_violation"
	case NoRows:
		return "no_rows"
	default:
		return "other"
	}
}

// Postgres SQLSTATE codes for integrity constraint violations (class 23).
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// Error is a driver error normalized into a Kind plus whatever metadata the driver exposed.
type Error struct {
	Kind Kind

	// DatabaseCode is the driver's own code: a SQLSTATE for postgres,
	// the extended result code name for sqlite.
	DatabaseCode string

	// Message is the driver's human-readable message.
	Message string

	TableName      string
	ColumnName     string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// mapPgCode maps a SQLSTATE onto a Kind.
func mapPgCode(code string) Kind {
	switch code {
	case pgUniqueViolation:
		return UniqueViolation
	case pgForeignKeyViolation:
		return ForeignKeyViolation
	case pgNotNullViolation:
		return NotNullViolation
	case pgCheckViolation:
		return CheckViolation
	default:
		return Other
	}
}

// sqliteTableColumn extracts "articles" and "title" from messages such as
// "UNIQUE constraint failed: articles.title".
func sqliteTableColumn(message string) (string, string) {
	_, target, found := strings.Cut(message, ": ")
	if !found {
		return "", ""
	}
	// Composite constraints list several columns; the first is enough to name the table.
	target, _, _ = strings.Cut(target, ",")
	table, column, found := strings.Cut(strings.TrimSpace(target), ".")
	if !found {
		return "", ""
	}
	return table, column
}
