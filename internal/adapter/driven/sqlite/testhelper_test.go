package sqlite

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestDB opens a named shared-cache in-memory database with the same
// pool sizes as NewDB and applies the migrations. The name comes from
// t.Name(), so parallel tests never share state.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// WAL is not applicable to in-memory databases.
	dsn := fmt.Sprintf(
		"file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)",
		url.PathEscape(t.Name()),
	)

	writer, err := openPool(context.Background(), dsn, 1)
	require.NoError(t, err, "open test writer")
	reader, err := openPool(context.Background(), dsn, 4)
	if err != nil {
		_ = writer.Close()
	}
	require.NoError(t, err, "open test reader")

	db := &DB{Writer: writer, Reader: reader}
	t.Cleanup(func() { _ = db.Close() })

	version, err := RunMigrations(db.Writer)
	require.NoError(t, err, "run migrations")
	require.Equal(t, uint(1), version)

	return db
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestRepo(t *testing.T) *CredentialRepo {
	t.Helper()

	key, err := DeriveKey("test-secret")
	require.NoError(t, err)
	return NewCredentialRepo(setupTestDB(t), key, discardLogger())
}
