package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wallet-wrapped/internal/application/port"
	"wallet-wrapped/internal/config"
	"wallet-wrapped/internal/domain"
	"wallet-wrapped/internal/domain/entity"
	domainRepo "wallet-wrapped/internal/domain/repository"
	domainService "wallet-wrapped/internal/domain/service"
	"wallet-wrapped/internal/pkg/apperrors"

	"go.uber.org/zap"
)

// Compile-time check to ensure chainService implements ChainService
var _ port.ChainService = (*chainService)(nil)

// chainService implements port.ChainService on top of the registry repository and its cache.
type chainService struct {
	chainRepo  domainRepo.ChainRepository
	cacheRepo  domainRepo.CacheRepository
	rpcChecker domainService.RPCChecker
	logger     *zap.Logger
	cfg        config.Config
}

// NewChainService creates a new instance of the chain service.
func NewChainService(
	chainRepo domainRepo.ChainRepository,
	cacheRepo domainRepo.CacheRepository,
	rpcChecker domainService.RPCChecker,
	logger *zap.Logger,
	cfg config.Config,
) port.ChainService {
	return &chainService{
		chainRepo:  chainRepo,
		cacheRepo:  cacheRepo,
		rpcChecker: rpcChecker,
		logger:     logger.Named("ChainService"),
		cfg:        cfg,
	}
}

// GetAllChains returns the registry, prioritizing cache, and falls back to the repository.
func (uc *chainService) GetAllChains(ctx context.Context) ([]entity.Chain, error) {
	cachedChains, found, err := uc.cacheRepo.GetChains(ctx)
	if err != nil {
		uc.logger.Warn("Cache error when getting chain registry", zap.Error(err))
	}
	if found {
		return cachedChains, nil
	}

	uc.logger.Debug("Cache miss for chain registry, loading from repository")
	chains, err := uc.chainRepo.GetAllChains(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chain registry: %w", err)
	}

	if cacheErr := uc.cacheRepo.SetChains(ctx, chains, uc.cfg.Registry.GetReloadInterval()); cacheErr != nil {
		uc.logger.Error("Failed to cache chain registry", zap.Error(cacheErr))
	}
	return chains, nil
}

// GetEnabledChains returns the enabled subset of the registry, in registry order.
func (uc *chainService) GetEnabledChains(ctx context.Context) ([]entity.Chain, error) {
	chains, err := uc.GetAllChains(ctx)
	if err != nil {
		return nil, err
	}
	enabled := make([]entity.Chain, 0, len(chains))
	for _, c := range chains {
		if c.Enabled {
			enabled = append(enabled, c)
		}
	}
	return enabled, nil
}

// GetChainByID looks up one chain; ids are matched case-insensitively.
func (uc *chainService) GetChainByID(ctx context.Context, id string) (entity.Chain, error) {
	chains, err := uc.GetAllChains(ctx)
	if err != nil {
		return entity.Chain{}, err
	}
	for _, c := range chains {
		if strings.EqualFold(c.ID, strings.TrimSpace(id)) {
			return c, nil
		}
	}
	return entity.Chain{}, fmt.Errorf("%w: %w: %q", apperrors.ErrNotFound, domain.ErrChainNotFound, id)
}

// ResolveChains maps requested ids to enabled chains in request order, dropping unknown,
// disabled and repeated ids. It fails only when ids were requested and none resolved.
func (uc *chainService) ResolveChains(ctx context.Context, ids []string) ([]entity.Chain, error) {
	if len(ids) == 0 {
		return uc.GetEnabledChains(ctx)
	}

	chains, err := uc.GetAllChains(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entity.Chain, len(chains))
	for _, c := range chains {
		byID[strings.ToLower(c.ID)] = c
	}

	resolved := make([]entity.Chain, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, rawID := range ids {
		id := strings.ToLower(strings.TrimSpace(rawID))
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		c, ok := byID[id]
		switch {
		case !ok:
			uc.logger.Warn("Skipping unknown chain id", zap.String("chainId", rawID))
		case !c.Enabled:
			uc.logger.Warn("Skipping disabled chain", zap.String("chainId", rawID))
		default:
			resolved = append(resolved, c)
		}
	}

	if len(resolved) == 0 {
		return nil, fmt.Errorf("%w: none of %v is a supported chain", domain.ErrChainNotFound, ids)
	}
	return resolved, nil
}

// CheckChainHealth probes the chain's RPC URL with the configured checker timeout.
func (uc *chainService) CheckChainHealth(ctx context.Context, id string) (entity.ChainHealth, error) {
	chain, err := uc.GetChainByID(ctx, id)
	if err != nil {
		return entity.ChainHealth{}, err
	}

	health := entity.ChainHealth{
		ChainID:   chain.ID,
		Name:      chain.Name,
		URL:       chain.RPC,
		Protocol:  chain.RPC.Protocol(),
		CheckedAt: time.Now().UTC(),
	}
	if chain.RPC == "" {
		health.Protocol = entity.ProtocolUnknown
		health.Error = "chain has no RPC URL configured"
		return health, nil
	}

	checkCtx := ctx
	if timeout := uc.cfg.Checker.GetTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		checkCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	isWorking, latency, err := uc.rpcChecker.CheckRPC(checkCtx, chain.RPC)
	health.IsWorking = isWorking
	if err != nil {
		uc.logger.Debug("RPC check failed", zap.String("chainId", chain.ID), zap.Error(err))
		health.Error = err.Error()
		return health, nil
	}
	if isWorking {
		latencyMs := latency.Milliseconds()
		health.LatencyMs = &latencyMs
	}
	return health, nil
}
