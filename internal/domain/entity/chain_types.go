package entity

// Chain describes one EVM network and the explorer API that indexes it.
type Chain struct {
	ID          string
	Name        string
	ExplorerURL ExplorerURL
	// ExplorerChainID is sent as the chainid query parameter when non-zero. Multiplexed explorer
	// endpoints (one host serving many chains) need it; per-chain explorers leave it unset.
	ExplorerChainID int64
	Currency        Currency
	RPC             RPCURL
	Enabled         bool
}

// Currency defines the native currency details of a chain.
type Currency struct {
	Symbol   string
	Decimals int32
}

// ChainSummary is the public view of a chain descriptor. The explorer URL is left out on purpose
// since it may embed provider-specific paths.
type ChainSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	NativeCurrency string `json:"nativeCurrency"`
	Enabled        bool   `json:"enabled"`
}

// Summary returns the public view of the chain.
func (c Chain) Summary() ChainSummary {
	return ChainSummary{
		ID:             c.ID,
		Name:           c.Name,
		NativeCurrency: c.Currency.Symbol,
		Enabled:        c.Enabled,
	}
}
