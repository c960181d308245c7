package application

import (
	"context"
	"fmt"
	"strings"

	"wallet-wrapped/internal/application/port"
	"wallet-wrapped/internal/domain"
	"wallet-wrapped/internal/domain/entity"
	"wallet-wrapped/internal/domain/stats"
	"wallet-wrapped/internal/pkg/apperrors"

	"go.uber.org/zap"
)

// Compile-time check
var _ port.WalletService = (*walletService)(nil)

// ActivityFetcher is the aggregation step of the wallet service.
type ActivityFetcher interface {
	FetchMultiChainWalletData(ctx context.Context, address string, chainIDs []string) (entity.WalletActivity, error)
}

type walletService struct {
	fetcher ActivityFetcher
	logger  *zap.Logger
}

// NewWalletService creates the fetch-and-analyze service.
func NewWalletService(fetcher ActivityFetcher, logger *zap.Logger) port.WalletService {
	return &walletService{
		fetcher: fetcher,
		logger:  logger.Named("WalletService"),
	}
}

// GetWalletData validates address, aggregates its activity over chainIDs and analyzes it.
func (s *walletService) GetWalletData(ctx context.Context, address string, chainIDs []string) (*entity.WalletData, error) {
	addr, err := entity.NewAddress(strings.TrimSpace(address))
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %v", apperrors.ErrInvalidInput, domain.ErrInvalidAddress, err)
	}

	s.logger.Info("Fetching wallet data",
		zap.String("address", addr.String()),
		zap.Strings("requestedChains", chainIDs),
	)

	activity, err := s.fetcher.FetchMultiChainWalletData(ctx, addr.String(), chainIDs)
	if err != nil {
		return nil, fmt.Errorf("aggregate wallet %s: %w", addr, err)
	}

	walletStats := stats.Analyze(activity, addr.String())

	s.logger.Info("Wallet data ready",
		zap.String("address", addr.String()),
		zap.Int("transactions", len(activity.Transactions)),
		zap.Int("tokenTransfers", len(activity.TokenTransfers)),
		zap.Strings("chainsWithData", activity.Chains),
	)

	return &entity.WalletData{
		Address:        addr.String(),
		Stats:          walletStats,
		Transactions:   activity.Transactions,
		TokenTransfers: activity.TokenTransfers,
		Chains:         activity.Chains,
	}, nil
}
