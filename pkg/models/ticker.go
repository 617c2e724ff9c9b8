package models

import (
	"strings"

	"github.com/alim08/stockpush/pkg/validation"
)

// TickerSymbol identifies a security, e.g. "AAPL".
type TickerSymbol string

// NormalizeTicker strips control characters, trims and upper-cases s.
func NormalizeTicker(s string) TickerSymbol {
	return TickerSymbol(strings.ToUpper(validation.SanitizeString(s)))
}

// ParseTickers splits a comma-separated list, normalizes every entry and drops
// the empty ones. Order and duplicates are preserved.
func ParseTickers(list string) []TickerSymbol {
	var out []TickerSymbol
	for _, part := range strings.Split(list, ",") {
		if t := NormalizeTicker(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
