package service

import (
	"context"

	"wallet-wrapped/internal/domain/entity"
)

// ExplorerClient lists a wallet's records from one chain's explorer API.
//
// Implementations never fail: remote errors, rate limiting, malformed payloads and transport
// failures all degrade to an empty (possibly nil) slice so that one chain cannot block others.
type ExplorerClient interface {
	ListTransactions(ctx context.Context, chain entity.Chain, address string) []entity.Transaction
	ListTokenTransfers(ctx context.Context, chain entity.Chain, address string) []entity.TokenTransfer
}
