package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"wallet-wrapped/internal/config"
	"wallet-wrapped/internal/domain"
	"wallet-wrapped/internal/domain/entity"
	"wallet-wrapped/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChainRepo struct {
	chains []entity.Chain
	err    error
	loads  int
}

func (r *fakeChainRepo) GetAllChains(context.Context) ([]entity.Chain, error) {
	r.loads++
	return r.chains, r.err
}

type fakeCache struct {
	chains []entity.Chain
	found  bool
	ttl    time.Duration
}

func (c *fakeCache) GetChains(context.Context) ([]entity.Chain, bool, error) {
	return c.chains, c.found, nil
}

func (c *fakeCache) SetChains(_ context.Context, chains []entity.Chain, ttl time.Duration) error {
	c.chains, c.found, c.ttl = chains, true, ttl
	return nil
}

type fakeChecker struct {
	working bool
	latency time.Duration
	err     error
	url     entity.RPCURL
}

func (c *fakeChecker) CheckRPC(_ context.Context, rpcURL entity.RPCURL) (bool, time.Duration, error) {
	c.url = rpcURL
	return c.working, c.latency, c.err
}

func registryFixture() []entity.Chain {
	return []entity.Chain{
		{ID: "eth", Name: "Ethereum", RPC: "https://eth.example", Enabled: true},
		{ID: "base", Name: "Base", RPC: "wss://base.example", Enabled: true},
		{ID: "bsc", Name: "BNB Smart Chain", Enabled: false},
		{ID: "scroll", Name: "Scroll", Enabled: true},
	}
}

func newTestChainService(repo *fakeChainRepo, cache *fakeCache, checker *fakeChecker) *chainService {
	cfg := config.Config{
		Registry: config.RegistryConfig{ReloadInterval: 5 * time.Minute},
		Checker:  config.CheckerConfig{CheckTimeout: time.Second},
	}
	return NewChainService(repo, cache, checker, zap.NewNop(), cfg).(*chainService)
}

func TestChainService_GetAllChainsCachesRegistry(t *testing.T) {
	repo := &fakeChainRepo{chains: registryFixture()}
	cache := &fakeCache{}
	svc := newTestChainService(repo, cache, &fakeChecker{})

	first, err := svc.GetAllChains(context.Background())
	require.NoError(t, err)
	second, err := svc.GetAllChains(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.loads)
	assert.Equal(t, 5*time.Minute, cache.ttl)
}

func TestChainService_GetAllChainsRepositoryError(t *testing.T) {
	repo := &fakeChainRepo{err: domain.ErrRegistryUnavailable}
	svc := newTestChainService(repo, &fakeCache{}, &fakeChecker{})

	_, err := svc.GetAllChains(context.Background())

	require.ErrorIs(t, err, domain.ErrRegistryUnavailable)
}

func TestChainService_GetEnabledChains(t *testing.T) {
	svc := newTestChainService(&fakeChainRepo{chains: registryFixture()}, &fakeCache{}, &fakeChecker{})

	chains, err := svc.GetEnabledChains(context.Background())

	require.NoError(t, err)
	var ids []string
	for _, c := range chains {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"eth", "base", "scroll"}, ids)
}

func TestChainService_ResolveChains(t *testing.T) {
	svc := newTestChainService(&fakeChainRepo{chains: registryFixture()}, &fakeCache{}, &fakeChecker{})

	tests := []struct {
		name    string
		ids     []string
		want    []string
		wantErr error
	}{
		{name: "empty selects enabled", ids: nil, want: []string{"eth", "base", "scroll"}},
		{name: "request order kept", ids: []string{"scroll", "ETH"}, want: []string{"scroll", "eth"}},
		{name: "unknown and disabled skipped", ids: []string{"nope", "bsc", "base"}, want: []string{"base"}},
		{name: "duplicates dropped", ids: []string{"eth", " eth ", "Eth"}, want: []string{"eth"}},
		{name: "nothing resolves", ids: []string{"nope", "bsc"}, wantErr: domain.ErrChainNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chains, err := svc.ResolveChains(context.Background(), tt.ids)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			var ids []string
			for _, c := range chains {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestChainService_GetChainByID(t *testing.T) {
	svc := newTestChainService(&fakeChainRepo{chains: registryFixture()}, &fakeCache{}, &fakeChecker{})

	chain, err := svc.GetChainByID(context.Background(), "BASE")
	require.NoError(t, err)
	assert.Equal(t, "Base", chain.Name)

	_, err = svc.GetChainByID(context.Background(), "solana")
	require.ErrorIs(t, err, domain.ErrChainNotFound)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestChainService_CheckChainHealth(t *testing.T) {
	t.Run("working", func(t *testing.T) {
		checker := &fakeChecker{working: true, latency: 42 * time.Millisecond}
		svc := newTestChainService(&fakeChainRepo{chains: registryFixture()}, &fakeCache{}, checker)

		health, err := svc.CheckChainHealth(context.Background(), "base")

		require.NoError(t, err)
		assert.True(t, health.IsWorking)
		require.NotNil(t, health.LatencyMs)
		assert.Equal(t, int64(42), *health.LatencyMs)
		assert.Equal(t, entity.ProtocolWSS, health.Protocol)
		assert.Equal(t, entity.RPCURL("wss://base.example"), checker.url)
	})

	t.Run("probe failure is reported, not returned", func(t *testing.T) {
		checker := &fakeChecker{err: errors.New("connection refused")}
		svc := newTestChainService(&fakeChainRepo{chains: registryFixture()}, &fakeCache{}, checker)

		health, err := svc.CheckChainHealth(context.Background(), "eth")

		require.NoError(t, err)
		assert.False(t, health.IsWorking)
		assert.Nil(t, health.LatencyMs)
		assert.Equal(t, "connection refused", health.Error)
	})

	t.Run("no rpc configured", func(t *testing.T) {
		checker := &fakeChecker{working: true}
		svc := newTestChainService(&fakeChainRepo{chains: registryFixture()}, &fakeCache{}, checker)

		health, err := svc.CheckChainHealth(context.Background(), "scroll")

		require.NoError(t, err)
		assert.False(t, health.IsWorking)
		assert.Equal(t, entity.ProtocolUnknown, health.Protocol)
		assert.NotEmpty(t, health.Error)
		assert.Empty(t, checker.url)
	})

	t.Run("unknown chain", func(t *testing.T) {
		svc := newTestChainService(&fakeChainRepo{chains: registryFixture()}, &fakeCache{}, &fakeChecker{})

		_, err := svc.CheckChainHealth(context.Background(), "solana")

		require.ErrorIs(t, err, domain.ErrChainNotFound)
	})
}
