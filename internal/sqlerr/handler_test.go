package sqlerr_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/articles-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Postgres(t *testing.T) {
	cases := []struct {
		code string
		want sqlerr.Kind
	}{
		{"23505", sqlerr.UniqueViolation},
		{"23503", sqlerr.ForeignKeyViolation},
		{"23502", sqlerr.NotNullViolation},
		{"23514", sqlerr.CheckViolation},
		{"40001", sqlerr.Other},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			err := fmt.Errorf("create article: %w", &pgconn.PgError{
				Code:           tc.code,
				Message:        "boom",
				TableName:      "articles",
				ConstraintName: "articles_title_key",
			})

			got := sqlerr.Classify(err)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.Kind)
			assert.Equal(t, tc.code, got.DatabaseCode)
			assert.Equal(t, "articles", got.TableName)

			var pgErr *pgconn.PgError
			assert.True(t, errors.As(got, &pgErr), "driver error stays reachable")
		})
	}
}

func TestClassify_SQLite(t *testing.T) {
	err := fmt.Errorf("create article: %w", sqlite3.Error{
		Code:         sqlite3.ErrConstraint,
		ExtendedCode: sqlite3.ErrConstraintUnique,
	})

	got := sqlerr.Classify(err)
	require.NotNil(t, got)
	assert.Equal(t, sqlerr.UniqueViolation, got.Kind)

	notNull := sqlerr.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull})
	assert.Equal(t, sqlerr.NotNullViolation, notNull.Kind)

	busy := sqlerr.Classify(sqlite3.Error{Code: sqlite3.ErrBusy, ExtendedCode: sqlite3.ErrBusyRecovery})
	assert.Equal(t, sqlerr.Other, busy.Kind)
}

func TestClassify_NoRowsAndForeignErrors(t *testing.T) {
	assert.Equal(t, sqlerr.NoRows, sqlerr.Classify(fmt.Errorf("x: %w", pgx.ErrNoRows)).Kind)
	assert.Equal(t, sqlerr.NoRows, sqlerr.Classify(sql.ErrNoRows).Kind)

	assert.Nil(t, sqlerr.Classify(nil))
	assert.Nil(t, sqlerr.Classify(errors.New("unrelated")))
	assert.Nil(t, sqlerr.Classify(context.Canceled))
}

func TestTranslate_UniqueViolationBecomesConflict(t *testing.T) {
	const driverMessage = `duplicate key value violates unique constraint "articles_title_key"`

	httpErr, ok := sqlerr.Translate(fmt.Errorf("create article: %w", &pgconn.PgError{
		Code:    "23505",
		Message: driverMessage,
	}))

	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t,
		"A unique constraint would be violated on Article. Details: "+driverMessage,
		httpErr.Message)
	assert.Empty(t, httpErr.Code)
}

func TestTranslate_OtherErrorsAreNotHandled(t *testing.T) {
	unhandled := []error{
		&pgconn.PgError{Code: "23503", Message: "fk"},
		&pgconn.PgError{Code: "23502", Message: "not null"},
		&pgconn.PgError{Code: "XX000", Message: "internal"},
		sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck},
		pgx.ErrNoRows,
		errors.New("plain"),
		nil,
	}

	for _, err := range unhandled {
		httpErr, ok := sqlerr.Translate(err)
		assert.False(t, ok, "%v", err)
		assert.Nil(t, httpErr)
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "unique_violation", sqlerr.UniqueViolation.String())
	assert.Equal(t, "other", sqlerr.Kind(99).String())
}

func TestDescribeField(t *testing.T) {
	assert.Equal(t, "Created At", sqlerr.DescribeField("created_at"))
	assert.Equal(t, "", sqlerr.DescribeField(""))
}
