package registry

import (
	"strings"

	dto "wallet-wrapped/internal/adapter/storage/registry/dto"
	"wallet-wrapped/internal/domain/entity"

	"go.uber.org/zap"
)

const defaultDecimals = 18

// toDomainChains converts raw registry entries to domain chains. Entries without an id or name,
// with an invalid explorer URL, or repeating an earlier id (case-insensitively) are skipped.
func toDomainChains(rawChains []dto.ChainRaw, logger *zap.Logger) []entity.Chain {
	if rawChains == nil {
		return nil
	}
	domainChains := make([]entity.Chain, 0, len(rawChains))
	seen := make(map[string]struct{}, len(rawChains))
	for _, raw := range rawChains {
		id := strings.TrimSpace(raw.ID)
		if id == "" || strings.TrimSpace(raw.Name) == "" {
			logger.Warn("Skipping registry entry without id or name",
				zap.String("id", raw.ID), zap.String("name", raw.Name))
			continue
		}
		key := strings.ToLower(id)
		if _, dup := seen[key]; dup {
			logger.Warn("Skipping duplicate registry entry", zap.String("id", id))
			continue
		}

		explorerURL, err := entity.NewExplorerURL(raw.ExplorerAPIURL)
		if err != nil {
			logger.Warn("Skipping registry entry with invalid explorer URL",
				zap.String("id", id), zap.Error(err))
			continue
		}

		var rpcURL entity.RPCURL
		if raw.RPCURL != "" {
			rpcURL, err = entity.NewRPCURL(raw.RPCURL)
			if err != nil {
				// The chain stays usable for aggregation, only health checks lose their target.
				logger.Warn("Ignoring invalid RPC URL in registry entry",
					zap.String("id", id), zap.Error(err))
			}
		}

		decimals := raw.NativeCurrency.Decimals
		if decimals <= 0 {
			decimals = defaultDecimals
		}

		enabled := true
		if raw.Enabled != nil {
			enabled = *raw.Enabled
		}

		seen[key] = struct{}{}
		domainChains = append(domainChains, entity.Chain{
			ID:              id,
			Name:            raw.Name,
			ExplorerURL:     explorerURL,
			ExplorerChainID: raw.ExplorerChainID,
			Currency: entity.Currency{
				Symbol:   raw.NativeCurrency.Symbol,
				Decimals: decimals,
			},
			RPC:     rpcURL,
			Enabled: enabled,
		})
	}
	return domainChains
}
