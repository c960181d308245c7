package registry_dto

// RegistryRaw is the top-level document of a chain registry file.
type RegistryRaw struct {
	Chains []ChainRaw `yaml:"chains"`
}

// ChainRaw represents one chain entry as written in the registry file.
type ChainRaw struct {
	ID              string      `yaml:"id"`
	Name            string      `yaml:"name"`
	ExplorerAPIURL  string      `yaml:"explorerApiUrl"`
	ExplorerChainID int64       `yaml:"explorerChainId,omitempty"`
	RPCURL          string      `yaml:"rpcUrl,omitempty"`
	NativeCurrency  CurrencyRaw `yaml:"nativeCurrency"`
	// Enabled defaults to true when omitted.
	Enabled *bool `yaml:"enabled,omitempty"`
}

// CurrencyRaw defines the native currency details of a chain from raw data.
type CurrencyRaw struct {
	Symbol   string `yaml:"symbol"`
	Decimals int32  `yaml:"decimals"`
}
