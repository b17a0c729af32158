package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"mixtrail-service/internal/adapters/repositories"
	"mixtrail-service/internal/platform/db"
)

// newCatalogue returns an in-memory SQLite catalogue holding the demo caches.
func newCatalogue(t *testing.T) *repositories.SQLCandidateRepository {
	t.Helper()
	conn, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ctx := context.Background()
	require.NoError(t, repositories.InitSchema(ctx, conn, repositories.Sqlite))
	require.NoError(t, repositories.UpsertCandidates(ctx, conn, repositories.Sqlite, repositories.DemoCandidates()))

	return repositories.NewSqliteCandidateRepository(conn)
}
