package repository_test

import (
	"testing"
	"time"

	"github.com/deppfellow/articles-api/internal/sqlerr"
	"github.com/stretchr/testify/require"
)

func testTime() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func dbErrKind(t *testing.T, err error) sqlerr.Kind {
	t.Helper()
	dbErr := sqlerr.Classify(err)
	require.NotNil(t, dbErr, "not a database error: %v", err)
	return dbErr.Kind
}
