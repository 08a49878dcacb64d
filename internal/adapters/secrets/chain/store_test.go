package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	passstore "github.com/bnema/topicd/internal/adapters/secrets/pass"
	"github.com/bnema/topicd/internal/domain"
	portmocks "github.com/bnema/topicd/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const apiHashKey = "topicd/telegram/api_hash"

func TestNewStoreRejectsMissingBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStore()
	require.ErrorIs(t, err, errNoBackends)

	_, err = NewStore(portmocks.NewMockSecretStore(t), nil)
	require.ErrorContains(t, err, "secret backend 1 is nil")
}

func TestStoreGetUsesFirstBackendThatHasTheSecret(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Get(mock.Anything, apiHashKey).Return("", passstore.ErrUnavailable).Once()
	fallback.EXPECT().Get(mock.Anything, apiHashKey).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), apiHashKey)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetStopsAtFirstHit(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Get(mock.Anything, apiHashKey).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), apiHashKey)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetReportsNotFoundWhenNoBackendHasIt(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Get(mock.Anything, apiHashKey).Return("", passstore.ErrUnavailable).Once()
	fallback.EXPECT().Get(mock.Anything, apiHashKey).Return("", fmt.Errorf("file secret: %w", domain.ErrSecretNotFound)).Once()

	_, err = store.Get(context.Background(), apiHashKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetCombinesRealFailures(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Get(mock.Anything, apiHashKey).Return("", errors.New("gpg failed")).Once()
	fallback.EXPECT().Get(mock.Anything, apiHashKey).Return("", errors.New("permission denied")).Once()

	_, err = store.Get(context.Background(), apiHashKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "gpg failed")
	assert.ErrorContains(t, err, "permission denied")
}

func TestStoreGetDoesNotFallBackOnCancellation(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Get(mock.Anything, apiHashKey).Return("", context.Canceled).Once()

	_, err = store.Get(context.Background(), apiHashKey)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Put(mock.Anything, apiHashKey, "hash").Return(passstore.ErrUnavailable).Once()
	fallback.EXPECT().Put(mock.Anything, apiHashKey, "hash").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), apiHashKey, "hash"))
}

func TestStoreDeleteReachesEveryBackend(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Delete(mock.Anything, apiHashKey).Return(passstore.ErrUnavailable).Once()
	fallback.EXPECT().Delete(mock.Anything, apiHashKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), apiHashKey))
}
