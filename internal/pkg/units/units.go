// Package units renders base-unit integer strings for display.
package units

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Common denominations.
const (
	EtherDecimals int32 = 18
	GweiDecimals  int32 = 9
)

// FormatUnits shifts a signed base-unit integer string by decimals and rounds it to places
// fractional digits. Malformed input renders as zero.
func FormatUnits(base string, decimals, places int32) string {
	d, err := decimal.NewFromString(strings.TrimSpace(base))
	if err != nil {
		return decimal.Zero.StringFixed(places)
	}
	return d.Shift(-decimals).StringFixed(places)
}

// FormatEther renders wei as ether with four fractional digits.
func FormatEther(wei string) string {
	return FormatUnits(wei, EtherDecimals, 4)
}

// FormatGwei renders wei as gwei with two fractional digits.
func FormatGwei(wei string) string {
	return FormatUnits(wei, GweiDecimals, 2)
}

// ShortenAddress keeps the 0x prefix plus chars leading and chars trailing hex digits.
func ShortenAddress(address string, chars int) string {
	if chars <= 0 || len(address) <= 2+2*chars {
		return address
	}
	return address[:chars+2] + "..." + address[len(address)-chars:]
}
