package memory

import (
	"context"
	"fmt"
	"time"

	"wallet-wrapped/internal/config"
	"wallet-wrapped/internal/domain/entity"
	domainRepo "wallet-wrapped/internal/domain/repository"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.CacheRepository = (*CacheRepository)(nil)

const registryKey = "chain_registry_v1"

// CacheRepository implements domainRepo.CacheRepository using the go-cache in-memory library.
type CacheRepository struct {
	cache      *cache.Cache
	logger     *zap.Logger
	defaultTTL time.Duration
}

// NewCacheRepository creates a new in-memory cache repository instance.
func NewCacheRepository(cfg config.CacheConfig, logger *zap.Logger) *CacheRepository {
	defaultExpiration := cfg.GetDefaultExpiration()
	cleanupInterval := cfg.GetCleanupInterval()

	c := cache.New(defaultExpiration, cleanupInterval)
	logger.Info(
		"Initialized go-cache for registry storage",
		zap.Duration("defaultExpiration", defaultExpiration),
		zap.Duration("cleanupInterval", cleanupInterval),
	)

	return &CacheRepository{
		cache:      c,
		logger:     logger.Named("MemoryCacheStorage"),
		defaultTTL: defaultExpiration,
	}
}

// GetChains retrieves the cached chain registry, returning found status.
func (r *CacheRepository) GetChains(_ context.Context) ([]entity.Chain, bool, error) {
	if x, found := r.cache.Get(registryKey); found {
		if chains, ok := x.([]entity.Chain); ok {
			r.logger.Debug("Memory cache hit", zap.String("key", registryKey))
			return chains, true, nil
		}
		r.logger.Warn(
			"Memory cache data type mismatch for key",
			zap.String("key", registryKey), zap.Any("type", fmt.Sprintf("%T", x)),
		)
	}
	r.logger.Debug("Memory cache miss", zap.String("key", registryKey))
	return nil, false, nil
}

// SetChains caches the chain registry with a given TTL; a non-positive TTL uses the default.
func (r *CacheRepository) SetChains(_ context.Context, chains []entity.Chain, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	r.cache.Set(registryKey, chains, ttl)
	r.logger.Debug("Memory cache set", zap.String("key", registryKey), zap.Duration("ttl", ttl))
	return nil
}
