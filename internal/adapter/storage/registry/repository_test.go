package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"wallet-wrapped/internal/config"
	"wallet-wrapped/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetAllChains_BuiltInRegistry(t *testing.T) {
	repo := NewRepository(config.RegistryConfig{}, zap.NewNop())

	chains, err := repo.GetAllChains(context.Background())

	require.NoError(t, err)
	require.Len(t, chains, 10)

	byID := make(map[string]int64, len(chains))
	for _, c := range chains {
		assert.True(t, c.Enabled, c.ID)
		assert.NotEmpty(t, c.ExplorerURL, c.ID)
		assert.NotEmpty(t, c.RPC, c.ID)
		assert.Equal(t, int32(18), c.Currency.Decimals, c.ID)
		byID[c.ID] = c.ExplorerChainID
	}
	assert.Equal(t, int64(1), byID["eth"])
	assert.Equal(t, int64(8453), byID["base"])
	assert.Equal(t, int64(534352), byID["scroll"])
	assert.Equal(t, "eth", chains[0].ID)
}

func writeRegistry(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chains.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestGetAllChains_FileOverride(t *testing.T) {
	path := writeRegistry(t, `
chains:
  - id: sepolia
    name: Sepolia
    explorerApiUrl: https://api-sepolia.etherscan.io/api
    rpcUrl: https://rpc.sepolia.org
    nativeCurrency: {symbol: ETH}
  - id: off
    name: Disabled Chain
    explorerApiUrl: https://api.example/api
    explorerChainId: 99
    enabled: false
    nativeCurrency: {symbol: OFF, decimals: 6}
  - id: ""
    name: Nameless
    explorerApiUrl: https://api.example/api
  - id: broken
    name: Broken
    explorerApiUrl: ftp://api.example/api
  - id: sepolia
    name: Duplicate
    explorerApiUrl: https://api.example/api
  - id: badrpc
    name: Bad RPC
    explorerApiUrl: https://api.example/api
    rpcUrl: not a url
`)
	repo := NewRepository(config.RegistryConfig{Path: path}, zap.NewNop())

	chains, err := repo.GetAllChains(context.Background())

	require.NoError(t, err)
	require.Len(t, chains, 3)

	assert.Equal(t, "sepolia", chains[0].ID)
	assert.Equal(t, "Sepolia", chains[0].Name)
	assert.Zero(t, chains[0].ExplorerChainID)
	assert.Equal(t, int32(18), chains[0].Currency.Decimals)
	assert.True(t, chains[0].Enabled)

	assert.Equal(t, "off", chains[1].ID)
	assert.False(t, chains[1].Enabled)
	assert.Equal(t, int32(6), chains[1].Currency.Decimals)
	assert.Equal(t, int64(99), chains[1].ExplorerChainID)

	assert.Equal(t, "badrpc", chains[2].ID)
	assert.Empty(t, chains[2].RPC)
}

func TestGetAllChains_Unavailable(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		repo := NewRepository(config.RegistryConfig{Path: filepath.Join(t.TempDir(), "absent.yaml")}, zap.NewNop())

		_, err := repo.GetAllChains(context.Background())

		require.ErrorIs(t, err, domain.ErrRegistryUnavailable)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		repo := NewRepository(config.RegistryConfig{Path: writeRegistry(t, "chains: [unclosed")}, zap.NewNop())

		_, err := repo.GetAllChains(context.Background())

		require.ErrorIs(t, err, domain.ErrRegistryUnavailable)
	})
}

func TestGetAllChains_DuplicateIDsIgnoreCase(t *testing.T) {
	path := writeRegistry(t, `
chains:
  - id: ETH
    name: Ethereum
    explorerApiUrl: https://api.etherscan.io/v2/api
    explorerChainId: 1
  - id: eth
    name: Shadow Ethereum
    explorerApiUrl: https://api.example/api
    explorerChainId: 999
`)
	repo := NewRepository(config.RegistryConfig{Path: path}, zap.NewNop())

	chains, err := repo.GetAllChains(context.Background())

	require.NoError(t, err)
	require.Len(t, chains, 1)
	assert.Equal(t, "ETH", chains[0].ID)
	assert.Equal(t, "Ethereum", chains[0].Name)
}
