package port

import (
	"context"

	"wallet-wrapped/internal/domain/entity"
)

// ChainService exposes the chain registry and chain health probes.
type ChainService interface {
	// GetAllChains returns every registered chain, enabled or not.
	GetAllChains(ctx context.Context) ([]entity.Chain, error)

	// GetEnabledChains returns the chains a wallet is aggregated over by default.
	GetEnabledChains(ctx context.Context) ([]entity.Chain, error)

	// GetChainByID looks up one chain by its registry id.
	GetChainByID(ctx context.Context, id string) (entity.Chain, error)

	// ResolveChains maps chain ids to enabled descriptors. An empty list selects all enabled chains.
	ResolveChains(ctx context.Context, ids []string) ([]entity.Chain, error)

	// CheckChainHealth probes the chain's RPC endpoint.
	CheckChainHealth(ctx context.Context, id string) (entity.ChainHealth, error)
}
