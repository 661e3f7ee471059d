package service_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MasFana/fanapen/internal/fanapen/domain"
	"github.com/MasFana/fanapen/internal/fanapen/store"
	"github.com/MasFana/fanapen/internal/fanapen/store/drivers/sqlite"
)

// newTestStore backs the services with a real file-backed sqlite store so
// the tests exercise the same contract semantics either driver provides.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "fanapen.db")
	s, err := sqlite.NewStore(dsn, sqlite.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.InitSchema(context.Background()))
	return s
}

func seedUser(t *testing.T, s store.Store, username string) domain.User {
	t.Helper()
	user, err := s.Users().Create(context.Background(), username, "hash")
	require.NoError(t, err)
	return user
}
