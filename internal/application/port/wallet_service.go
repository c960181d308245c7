package port

import (
	"context"

	"wallet-wrapped/internal/domain/entity"
)

// WalletService fetches a wallet's multi-chain activity and derives its statistics.
type WalletService interface {
	GetWalletData(ctx context.Context, address string, chainIDs []string) (*entity.WalletData, error)
}
