package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
	"github.com/ericfisherdev/isavra-storefront/internal/domain/port/driven"
)

func newSession(t *testing.T, id, username, token string) model.Session {
	t.Helper()
	s, err := model.NewSession(model.Principal{ID: id, Username: username}, token)
	require.NoError(t, err)
	return s
}

func TestCredentialRepo_SaveAndLoad(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	want := newSession(t, "1", "admin", "abc")
	require.NoError(t, repo.Save(ctx, want))

	got := repo.Load(ctx)
	assert.True(t, want.Equal(got))

	principal, ok := got.Principal()
	require.True(t, ok)
	assert.Equal(t, "1", principal.ID)
	assert.Equal(t, "admin", principal.Username)
	assert.Equal(t, "abc", got.Token())
}

func TestCredentialRepo_LoadMissing(t *testing.T) {
	repo := setupTestRepo(t)

	got := repo.Load(context.Background())
	assert.True(t, got.IsEmpty())
	assert.Equal(t, "", got.Token())
}

func TestCredentialRepo_SaveOverwrites(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newSession(t, "1", "admin", "old-token")))
	require.NoError(t, repo.Save(ctx, newSession(t, "2", "editor", "new-token")))

	got := repo.Load(ctx)
	principal, ok := got.Principal()
	require.True(t, ok)
	assert.Equal(t, "2", principal.ID)
	assert.Equal(t, "new-token", got.Token())
}

func TestCredentialRepo_ClearThenLoad(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newSession(t, "1", "admin", "abc")))
	require.NoError(t, repo.Clear(ctx))

	assert.True(t, repo.Load(ctx).IsEmpty())
}

func TestCredentialRepo_ClearIsIdempotent(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	assert.NoError(t, repo.Clear(ctx))
	assert.NoError(t, repo.Clear(ctx), "clearing an absent record should not error")
}

func TestCredentialRepo_SaveEmptySessionClears(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newSession(t, "1", "admin", "abc")))
	require.NoError(t, repo.Save(ctx, model.Session{}))

	assert.True(t, repo.Load(ctx).IsEmpty())

	var count int
	require.NoError(t, repo.db.Reader.QueryRow(`SELECT COUNT(*) FROM credentials`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestCredentialRepo_PartialRecordLoadsEmpty(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	encToken, err := repo.encrypt("abc")
	require.NoError(t, err)
	_, err = repo.db.Writer.ExecContext(ctx, `INSERT INTO credentials (key, value) VALUES (?, ?)`, tokenKey, encToken)
	require.NoError(t, err)

	assert.True(t, repo.Load(ctx).IsEmpty(), "token without principal must not produce a session")
}

func TestCredentialRepo_CorruptValueLoadsEmpty(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newSession(t, "1", "admin", "abc")))
	_, err := repo.db.Writer.ExecContext(ctx, `UPDATE credentials SET value = ? WHERE key = ?`, "not-base64!!", principalKey)
	require.NoError(t, err)

	assert.True(t, repo.Load(ctx).IsEmpty())
}

func TestCredentialRepo_MalformedPrincipalLoadsEmpty(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newSession(t, "1", "admin", "abc")))
	bad, err := repo.encrypt("{not json")
	require.NoError(t, err)
	_, err = repo.db.Writer.ExecContext(ctx, `UPDATE credentials SET value = ? WHERE key = ?`, bad, principalKey)
	require.NoError(t, err)

	assert.True(t, repo.Load(ctx).IsEmpty())
}

func TestCredentialRepo_ValuesAreEncryptedAtRest(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newSession(t, "1", "admin", "plain-token")))

	var stored string
	require.NoError(t, repo.db.Reader.QueryRow(`SELECT value FROM credentials WHERE key = ?`, tokenKey).Scan(&stored))
	assert.NotContains(t, stored, "plain-token")
}

func TestCredentialRepo_WrongKeyLoadsEmpty(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, newSession(t, "1", "admin", "abc")))

	otherKey, err := DeriveKey("another-secret")
	require.NoError(t, err)
	other := NewCredentialRepo(repo.db, otherKey, discardLogger())

	assert.True(t, other.Load(ctx).IsEmpty())
}

func TestCredentialRepo_NoKey(t *testing.T) {
	repo := NewCredentialRepo(setupTestDB(t), nil, discardLogger())
	ctx := context.Background()

	err := repo.Save(ctx, newSession(t, "1", "admin", "abc"))
	assert.ErrorIs(t, err, driven.ErrEncryptionKeyNotSet)
	assert.True(t, repo.Load(ctx).IsEmpty())
	assert.NoError(t, repo.Clear(ctx))
}

func TestDeriveKey(t *testing.T) {
	a, err := DeriveKey("secret")
	require.NoError(t, err)
	b, err := DeriveKey("secret")
	require.NoError(t, err)
	c, err := DeriveKey("different")
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	_, err = DeriveKey("")
	assert.ErrorIs(t, err, driven.ErrEncryptionKeyNotSet)
}
