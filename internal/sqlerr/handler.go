package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/articles-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ConvertPgError converts a raw postgres error into an Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Kind:           mapPgCode(src.Code),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// ConvertSQLiteError converts a go-sqlite3 error into an Error.
func ConvertSQLiteError(src sqlite3.Error) *Error {
	kind := Other
	switch src.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		kind = UniqueViolation
	case sqlite3.ErrConstraintForeignKey:
		kind = ForeignKeyViolation
	case sqlite3.ErrConstraintNotNull:
		kind = NotNullViolation
	case sqlite3.ErrConstraintCheck:
		kind = CheckViolation
	}

	message := src.Error()
	table, column := sqliteTableColumn(message)

	return &Error{
		Kind:         kind,
		DatabaseCode: src.ExtendedCode.Error(),
		Message:      message,
		TableName:    table,
		ColumnName:   column,
		driverErr:    src,
	}
}

// Classify walks err's chain for a known driver error.
// It returns nil when err did not come from the database.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var normalized *Error
	if errors.As(err, &normalized) {
		return normalized
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ConvertPgError(pgErr)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return ConvertSQLiteError(sqliteErr)
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return &Error{Kind: NoRows, Message: err.Error(), driverErr: err}
	}

	return nil
}

// ConflictEntity is the entity named in unique violation messages.
const ConflictEntity = "Article"

// Translate applies the API's database error policy.
//
// A unique constraint violation becomes a 409 whose message embeds the
// driver's message verbatim. Every other error, database or not, is
// reported as unhandled so the caller falls back to its default handling.
func Translate(err error) (*errs.HTTPError, bool) {
	sqlErr := Classify(err)
	if sqlErr == nil {
		return nil, false
	}

	switch sqlErr.Kind {
	case UniqueViolation:
		return errs.NewConflictError(fmt.Sprintf(
			"A unique constraint would be violated on %s. Details: %s", ConflictEntity, sqlErr.Message,
		)), true
	default:
		return nil, false
	}
}

// DescribeField turns a column name into log-friendly text, "created_at" -> "Created At".
func DescribeField(column string) string {
	if column == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(column, "_", " "))
}
