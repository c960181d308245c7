package repository

import (
	"context"
	"time"

	"wallet-wrapped/internal/domain/entity"
)

// CacheRepository defines the interface for caching the parsed chain registry.
type CacheRepository interface {
	// GetChains retrieves the cached chain registry.
	GetChains(ctx context.Context) ([]entity.Chain, bool, error)

	// SetChains stores the chain registry in the cache with a specified TTL.
	SetChains(ctx context.Context, chains []entity.Chain, ttl time.Duration) error
}
