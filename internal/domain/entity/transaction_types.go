package entity

// ExplorerAction names an account-module query of an Etherscan-compatible explorer API.
type ExplorerAction string

// Supported explorer actions.
const (
	ActionTxList  ExplorerAction = "txlist"
	ActionTokenTx ExplorerAction = "tokentx"
)

// Transaction is a native-currency transfer or contract call as returned by the explorer.
// Numeric fields are base-unit decimal strings and must only be combined through big integers.
type Transaction struct {
	Hash         string `json:"hash"`
	BlockNumber  string `json:"blockNumber,omitempty"`
	TimeStamp    string `json:"timeStamp"`
	From         string `json:"from"`
	To           string `json:"to"`
	Value        string `json:"value"`
	GasUsed      string `json:"gasUsed"`
	GasPrice     string `json:"gasPrice"`
	IsError      string `json:"isError"`
	MethodID     string `json:"methodId,omitempty"`
	FunctionName string `json:"functionName,omitempty"`
	// Chain is the display name of the source chain, set during aggregation.
	Chain string `json:"chain,omitempty"`
}

// Succeeded reports whether the explorer flagged the transaction as successful.
func (t Transaction) Succeeded() bool {
	return t.IsError == "0"
}

// IsContractCall reports whether the transaction invoked a contract method rather than
// moving value only. Explorers emit a bare "0x" method id for plain transfers.
func (t Transaction) IsContractCall() bool {
	if t.FunctionName != "" {
		return true
	}
	return t.MethodID != "" && t.MethodID != "0x"
}

// TokenTransfer is an ERC20-style transfer event. Value is in the token's own base units
// (see TokenDecimal) and is never comparable with native-currency values.
type TokenTransfer struct {
	Hash            string `json:"hash"`
	BlockNumber     string `json:"blockNumber,omitempty"`
	TimeStamp       string `json:"timeStamp"`
	From            string `json:"from"`
	To              string `json:"to"`
	Value           string `json:"value"`
	TokenName       string `json:"tokenName"`
	TokenSymbol     string `json:"tokenSymbol"`
	TokenDecimal    string `json:"tokenDecimal"`
	ContractAddress string `json:"contractAddress"`
	Chain           string `json:"chain,omitempty"`
}

// WalletActivity is the merged, chain-tagged dataset for one wallet. Both slices are sorted
// ascending by timestamp.
type WalletActivity struct {
	Transactions   []Transaction   `json:"transactions"`
	TokenTransfers []TokenTransfer `json:"tokenTransfers"`
	// Chains holds the display names of chains that yielded at least one record.
	Chains []string `json:"chains"`
}
