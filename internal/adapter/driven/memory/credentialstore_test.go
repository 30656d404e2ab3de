package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/isavra-storefront/internal/adapter/driven/memory"
	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

func TestCredentialStore_RoundTrip(t *testing.T) {
	store := memory.NewCredentialStore()
	ctx := context.Background()

	assert.True(t, store.Load(ctx).IsEmpty())

	s, err := model.NewSession(model.Principal{ID: "1", Username: "admin"}, "abc")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, s))
	assert.True(t, s.Equal(store.Load(ctx)))

	require.NoError(t, store.Clear(ctx))
	assert.True(t, store.Load(ctx).IsEmpty())
	require.NoError(t, store.Clear(ctx))
}
