package memory

import (
	"context"
	"testing"
	"time"

	"wallet-wrapped/internal/config"
	"wallet-wrapped/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCacheRepository_RoundTrip(t *testing.T) {
	repo := NewCacheRepository(config.CacheConfig{DefaultExpiration: time.Minute, CleanupInterval: time.Minute}, zap.NewNop())
	ctx := context.Background()

	_, found, err := repo.GetChains(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	chains := []entity.Chain{{ID: "eth", Name: "Ethereum", Enabled: true}}
	require.NoError(t, repo.SetChains(ctx, chains, 0))

	cached, found, err := repo.GetChains(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, chains, cached)
}

func TestCacheRepository_Expiry(t *testing.T) {
	repo := NewCacheRepository(config.CacheConfig{DefaultExpiration: time.Minute, CleanupInterval: time.Minute}, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.SetChains(ctx, []entity.Chain{{ID: "eth"}}, 20*time.Millisecond))
	time.Sleep(50 * time.Millisecond)

	_, found, err := repo.GetChains(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}
