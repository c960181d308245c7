package application

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"wallet-wrapped/internal/application/port"
	"wallet-wrapped/internal/config"
	"wallet-wrapped/internal/domain/entity"
	domainService "wallet-wrapped/internal/domain/service"

	"go.uber.org/zap"
)

// Aggregator fans explorer queries out over many chains under a static rate schedule and merges
// the chain-tagged results.
//
// Every explorer host shares one requests-per-second budget per API key. Exceeding it makes the
// explorer reject calls, which the client reports as empty results, so the schedule below is what
// keeps the merged dataset complete: chains run BatchSize at a time, a chain's token-transfer
// query trails its transaction query by FetchStagger, and batches are separated by BatchDelay.
type Aggregator struct {
	explorer domainService.ExplorerClient
	chains   port.ChainService
	cfg      config.AggregatorConfig
	logger   *zap.Logger
}

// NewAggregator creates a multi-chain aggregator.
func NewAggregator(
	explorer domainService.ExplorerClient,
	chains port.ChainService,
	cfg config.AggregatorConfig,
	logger *zap.Logger,
) *Aggregator {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 2
	}
	return &Aggregator{
		explorer: explorer,
		chains:   chains,
		cfg:      cfg,
		logger:   logger.Named("Aggregator"),
	}
}

// chainResult is the private accumulator of one chain's fetch.
type chainResult struct {
	transactions   []entity.Transaction
	tokenTransfers []entity.TokenTransfer
}

// FetchMultiChainWalletData resolves chainIDs (all enabled chains when empty), fetches the
// wallet's records from each, and returns them merged and sorted by timestamp.
//
// Per-chain failures never surface here; such chains simply contribute nothing. The returned error
// is limited to chain resolution, which happens before any request is sent.
func (a *Aggregator) FetchMultiChainWalletData(
	ctx context.Context,
	address string,
	chainIDs []string,
) (entity.WalletActivity, error) {
	chains, err := a.chains.ResolveChains(ctx, chainIDs)
	if err != nil {
		return entity.WalletActivity{}, err
	}
	return a.Aggregate(ctx, address, chains), nil
}

// Aggregate runs the batched fetch over the given chains.
func (a *Aggregator) Aggregate(ctx context.Context, address string, chains []entity.Chain) entity.WalletActivity {
	results := make([]chainResult, len(chains))
	batchSize := a.cfg.BatchSize

	for start := 0; start < len(chains); start += batchSize {
		if start > 0 && !sleep(ctx, a.cfg.BatchDelay) {
			a.logger.Warn("Context done, skipping remaining chains",
				zap.Int("skipped", len(chains)-start), zap.Error(ctx.Err()))
			break
		}

		end := min(start+batchSize, len(chains))
		a.logger.Debug("Fetching batch", zap.Int("from", start), zap.Int("to", end))

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(index int) {
				defer wg.Done()
				results[index] = a.fetchChain(ctx, chains[index], address)
			}(i)
		}
		wg.Wait()
	}

	return a.merge(chains, results)
}

// fetchChain queries one chain. Its slot in the results slice is the only state it writes.
func (a *Aggregator) fetchChain(ctx context.Context, chain entity.Chain, address string) (res chainResult) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Recovered panic while fetching chain",
				zap.String("chain", chain.Name), zap.Any("panic", r))
			res = chainResult{}
		}
	}()

	rawTxs := a.explorer.ListTransactions(ctx, chain, address)
	var rawTransfers []entity.TokenTransfer
	if sleep(ctx, a.cfg.FetchStagger) {
		rawTransfers = a.explorer.ListTokenTransfers(ctx, chain, address)
	}

	for _, tx := range rawTxs {
		if tx.Hash == "" {
			continue
		}
		tx.Chain = chain.Name
		res.transactions = append(res.transactions, tx)
	}
	for _, tt := range rawTransfers {
		if tt.Hash == "" {
			continue
		}
		tt.Chain = chain.Name
		res.tokenTransfers = append(res.tokenTransfers, tt)
	}

	if len(rawTxs) > 0 || len(rawTransfers) > 0 {
		a.logger.Info("Fetched chain data",
			zap.String("chain", chain.Name),
			zap.Int("transactions", len(rawTxs)),
			zap.Int("tokenTransfers", len(rawTransfers)),
			zap.Int("keptTransactions", len(res.transactions)),
			zap.Int("keptTokenTransfers", len(res.tokenTransfers)),
		)
	}
	return res
}

func (a *Aggregator) merge(chains []entity.Chain, results []chainResult) entity.WalletActivity {
	activity := entity.WalletActivity{
		Transactions:   []entity.Transaction{},
		TokenTransfers: []entity.TokenTransfer{},
		Chains:         []string{},
	}
	for i, res := range results {
		activity.Transactions = append(activity.Transactions, res.transactions...)
		activity.TokenTransfers = append(activity.TokenTransfers, res.tokenTransfers...)
		if len(res.transactions) > 0 || len(res.tokenTransfers) > 0 {
			activity.Chains = append(activity.Chains, chains[i].Name)
		}
	}

	sort.SliceStable(activity.Transactions, func(i, j int) bool {
		return parseTimestamp(activity.Transactions[i].TimeStamp) < parseTimestamp(activity.Transactions[j].TimeStamp)
	})
	sort.SliceStable(activity.TokenTransfers, func(i, j int) bool {
		return parseTimestamp(activity.TokenTransfers[i].TimeStamp) < parseTimestamp(activity.TokenTransfers[j].TimeStamp)
	})

	a.logger.Info("Aggregated wallet data",
		zap.Int("transactions", len(activity.Transactions)),
		zap.Int("tokenTransfers", len(activity.TokenTransfers)),
		zap.Int("chainsWithData", len(activity.Chains)),
		zap.Int("chainsQueried", len(chains)),
	)
	return activity
}

// parseTimestamp reads a Unix-seconds string; anything unparseable orders first.
func parseTimestamp(ts string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(ts), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
