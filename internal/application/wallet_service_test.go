package application

import (
	"context"
	"errors"
	"testing"

	"wallet-wrapped/internal/domain"
	"wallet-wrapped/internal/domain/entity"
	"wallet-wrapped/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	activity entity.WalletActivity
	err      error
	called   bool
	address  string
	chainIDs []string
}

func (f *fakeFetcher) FetchMultiChainWalletData(_ context.Context, address string, chainIDs []string) (entity.WalletActivity, error) {
	f.called = true
	f.address = address
	f.chainIDs = chainIDs
	return f.activity, f.err
}

func TestWalletService_InvalidAddress(t *testing.T) {
	for _, address := range []string{"", "0x123", "AbCdEf0123456789abcdef0123456789ABCDEF0102", "0xZZCdEf0123456789abcdef0123456789ABCDEF01"} {
		t.Run(address, func(t *testing.T) {
			fetcher := &fakeFetcher{}
			svc := NewWalletService(fetcher, zap.NewNop())

			_, err := svc.GetWalletData(context.Background(), address, nil)

			require.ErrorIs(t, err, domain.ErrInvalidAddress)
			require.ErrorIs(t, err, apperrors.ErrInvalidInput)
			assert.False(t, fetcher.called)
		})
	}
}

func TestWalletService_AnalyzesAggregatedActivity(t *testing.T) {
	fetcher := &fakeFetcher{activity: entity.WalletActivity{
		Transactions: []entity.Transaction{{
			Hash: "0x1", From: testWallet, To: "0x1111111111111111111111111111111111111111",
			Value: "1000", TimeStamp: "1741942800", GasUsed: "21000", GasPrice: "1", IsError: "0", Chain: "Chain a",
		}},
		TokenTransfers: []entity.TokenTransfer{},
		Chains:         []string{"Chain a"},
	}}
	svc := NewWalletService(fetcher, zap.NewNop())

	data, err := svc.GetWalletData(context.Background(), "  "+testWallet+" ", []string{"a"})

	require.NoError(t, err)
	assert.Equal(t, testWallet, fetcher.address)
	assert.Equal(t, []string{"a"}, fetcher.chainIDs)
	assert.Equal(t, testWallet, data.Address)
	assert.Equal(t, []string{"Chain a"}, data.Chains)
	assert.Equal(t, 1, data.Stats.TotalTransactions)
	assert.Equal(t, "1000", data.Stats.TotalValueSent)
	assert.Equal(t, "-1000", data.Stats.NetFlow)
	assert.Len(t, data.Transactions, 1)
}

func TestWalletService_AggregationErrorPropagates(t *testing.T) {
	fetcher := &fakeFetcher{err: domain.ErrChainNotFound}
	svc := NewWalletService(fetcher, zap.NewNop())

	_, err := svc.GetWalletData(context.Background(), testWallet, []string{"nope"})

	require.ErrorIs(t, err, domain.ErrChainNotFound)
	assert.False(t, errors.Is(err, domain.ErrInvalidAddress))
}
