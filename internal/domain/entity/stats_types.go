package entity

// NotAvailable is reported for calendar fields when the dataset has no dated transactions.
const NotAvailable = "N/A"

// Direction of a transaction relative to the analysed wallet.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// WalletStats is the derived summary of a wallet's activity. Monetary and gas amounts are
// base-unit decimal strings.
type WalletStats struct {
	TotalTransactions         int    `json:"totalTransactions"`
	SuccessfulTransactions    int    `json:"successfulTransactions"`
	FailedTransactions        int    `json:"failedTransactions"`
	TotalValueSent            string `json:"totalValueSent"`
	TotalValueReceived        string `json:"totalValueReceived"`
	NetFlow                   string `json:"netFlow"`
	TotalGasSpent             string `json:"totalGasSpent"`
	AverageGasPrice           string `json:"averageGasPrice"`
	UniqueTokensInteracted    int    `json:"uniqueTokensInteracted"`
	UniqueContractsInteracted int    `json:"uniqueContractsInteracted"`
	ContractInteractions      int    `json:"contractInteractions"`
	TotalTokenValueSent       string `json:"totalTokenValueSent"`
	TotalTokenValueReceived   string `json:"totalTokenValueReceived"`

	TotalDaysActive     int          `json:"totalDaysActive"`
	MostActiveDay       string       `json:"mostActiveDay"`
	MostActiveMonth     string       `json:"mostActiveMonth"`
	TransactionsByMonth []MonthCount `json:"transactionsByMonth"`

	TopTokens          []TokenStat         `json:"topTokens"`
	TopContracts       []ContractStat      `json:"topContracts"`
	Airdrops           []AirdropStat       `json:"airdrops"`
	LargestTransaction *LargestTransaction `json:"largestTransaction"`
}

// MonthCount is one bucket of the monthly activity series.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// TokenStat aggregates transfers of one token contract.
type TokenStat struct {
	Symbol          string `json:"symbol"`
	ContractAddress string `json:"contractAddress"`
	Count           int    `json:"count"`
	Value           string `json:"value"`
}

// ContractStat counts transactions sent to one address.
type ContractStat struct {
	Address string `json:"address"`
	Count   int    `json:"count"`
}

// AirdropStat aggregates unsolicited inbound transfers of one token contract.
type AirdropStat struct {
	Symbol          string `json:"symbol"`
	TokenName       string `json:"tokenName"`
	ContractAddress string `json:"contractAddress"`
	Chain           string `json:"chain,omitempty"`
	Count           int    `json:"count"`
	Value           string `json:"value"`
}

// LargestTransaction is the single transaction with the greatest native value.
type LargestTransaction struct {
	Hash      string `json:"hash"`
	Value     string `json:"value"`
	Type      string `json:"type"`
	Chain     string `json:"chain,omitempty"`
	TimeStamp string `json:"timeStamp"`
}

// WalletData is the response of the fetch-and-analyze operation.
type WalletData struct {
	Address        string          `json:"address"`
	Stats          WalletStats     `json:"stats"`
	Transactions   []Transaction   `json:"transactions"`
	TokenTransfers []TokenTransfer `json:"tokenTransfers"`
	Chains         []string        `json:"chains"`
}
