package domain

import "errors"

var (
	// ErrChainNotFound means the requested chain is not present (or not enabled) in the chain registry.
	ErrChainNotFound = errors.New("chain not found")

	// ErrInvalidAddress means the wallet address is not a 0x-prefixed 20-byte hex string.
	ErrInvalidAddress = errors.New("invalid wallet address")

	// ErrRegistryUnavailable means the chain registry could not be loaded.
	ErrRegistryUnavailable = errors.New("chain registry unavailable")
)
