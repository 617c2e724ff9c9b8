package models

import (
	"fmt"
	"strconv"
	"strings"
)

// QuoteResult is the outcome of pricing one ticker. Exactly one of Price and
// Err is set.
type QuoteResult struct {
	Ticker TickerSymbol
	Price  *float64
	Err    error
}

// OK reports whether the ticker was priced.
func (r QuoteResult) OK() bool {
	return r.Err == nil && r.Price != nil
}

// Status renders the per-ticker line shown in the HTTP response.
func (r QuoteResult) Status() string {
	if r.OK() {
		return fmt.Sprintf("%s price %s", r.Ticker, FormatPrice(*r.Price))
	}
	reason := "no price"
	if r.Err != nil {
		reason = r.Err.Error()
	}
	return fmt.Sprintf("%s failed: %s", r.Ticker, reason)
}

// Message builds the outbound queue record. Only valid for OK results.
func (r QuoteResult) Message() OutboundMessage {
	return OutboundMessage{Ticker: string(r.Ticker), Price: *r.Price}
}

// FormatPrice prints the shortest decimal form: 150, 150.25.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// Summary joins the statuses of results in order with "; ".
func Summary(results []QuoteResult) string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, r.Status())
	}
	return strings.Join(lines, "; ")
}
