package entity

import "time"

// Protocol defines the type for RPC protocols.
type Protocol string

// Constants for known protocols.
const (
	ProtocolHTTP    Protocol = "http"
	ProtocolHTTPS   Protocol = "https"
	ProtocolWS      Protocol = "ws"
	ProtocolWSS     Protocol = "wss"
	ProtocolUnknown Protocol = "unknown"
)

// ChainHealth holds the outcome of probing a chain's RPC endpoint.
type ChainHealth struct {
	ChainID   string    `json:"chainId"`
	Name      string    `json:"name"`
	URL       RPCURL    `json:"url"`
	Protocol  Protocol  `json:"protocol"`
	IsWorking bool      `json:"isWorking"`
	LatencyMs *int64    `json:"latencyMs,omitempty"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}
