package entity

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ZeroAddress is the EVM zero address, the sender of minted tokens.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

var addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// Address is a validated EVM wallet address. The original casing is preserved.
type Address string

// NewAddress validates raw as a 0x-prefixed 40 hex digit address.
func NewAddress(raw string) (Address, error) {
	if !addressPattern.MatchString(raw) {
		return "", fmt.Errorf("address '%s' does not match 0x followed by 40 hex digits", raw)
	}
	return Address(raw), nil
}

// String returns the address as supplied.
func (a Address) String() string {
	return string(a)
}

// Lower returns the lowercased address used for all comparisons.
func (a Address) Lower() string {
	return strings.ToLower(string(a))
}

// ExplorerURL represents the base URL of a block explorer API.
type ExplorerURL string

// NewExplorerURL creates a new ExplorerURL instance.
func NewExplorerURL(rawURL string) (ExplorerURL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return "", fmt.Errorf("explorer url cannot be empty")
	}

	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid explorer url format '%s': %w", rawURL, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", fmt.Errorf("explorer url '%s' has unsupported scheme: '%s'", rawURL, u.Scheme)
	}

	return ExplorerURL(rawURL), nil
}

// String returns the string representation of the ExplorerURL.
func (e ExplorerURL) String() string {
	return string(e)
}

// RPCURL represents a typed URL for an RPC endpoint.
type RPCURL string

// NewRPCURL creates a new RPCURL instance.
func NewRPCURL(rawURL string) (RPCURL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return "", fmt.Errorf("rpc url cannot be empty")
	}

	u, err := url.ParseRequestURI(rawURL) // Checks general URI validity
	if err != nil {
		return "", fmt.Errorf("invalid rpc url format '%s': %w", rawURL, err)
	}

	scheme := strings.ToLower(u.Scheme)
	switch scheme {
	case "http", "https", "ws", "wss":
		// Allowed schemes
	default:
		return "", fmt.Errorf("rpc url '%s' has unsupported scheme: '%s'", rawURL, scheme)
	}

	return RPCURL(rawURL), nil
}

// String returns the string representation of the RPCURL.
func (r RPCURL) String() string {
	return string(r)
}

// Protocol reports the transport protocol of the URL.
func (r RPCURL) Protocol() Protocol {
	scheme, _, _ := strings.Cut(string(r), "://")
	switch strings.ToLower(scheme) {
	case "http":
		return ProtocolHTTP
	case "https":
		return ProtocolHTTPS
	case "ws":
		return ProtocolWS
	case "wss":
		return ProtocolWSS
	default:
		return ProtocolUnknown
	}
}
