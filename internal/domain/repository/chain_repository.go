package repository

import (
	"context"

	"wallet-wrapped/internal/domain/entity"
)

// ChainRepository defines the interface for accessing the chain registry.
type ChainRepository interface {
	// GetAllChains retrieves every chain descriptor from the underlying registry source.
	GetAllChains(ctx context.Context) ([]entity.Chain, error)
}
