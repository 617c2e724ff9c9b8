package quote

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/alim08/stockpush/pkg/models"
	finance "github.com/piquette/finance-go"
	fquote "github.com/piquette/finance-go/quote"
)

// ErrNoMarketPrice is returned when the provider answers without a regular
// market price for the symbol.
var ErrNoMarketPrice = errors.New("No market price available")

// Yahoo prices tickers through Yahoo Finance.
type Yahoo struct {
	get func(symbol string) (*finance.Quote, error)
}

// NewYahoo installs an HTTP client with the given timeout into finance-go and
// returns a provider backed by it. finance-go keeps the client globally, so call
// this once per process.
func NewYahoo(timeout time.Duration) *Yahoo {
	finance.SetHTTPClient(&http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     30 * time.Second,
			TLSHandshakeTimeout: 3 * time.Second,
		},
	})
	return &Yahoo{get: fquote.Get}
}

func (y *Yahoo) Name() string { return "yahoo" }

// Price returns the regular market price of ticker. finance-go has no context
// support; ctx is only checked before the call.
func (y *Yahoo) Price(ctx context.Context, ticker models.TickerSymbol) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	q, err := y.get(string(ticker))
	if err != nil {
		return 0, err
	}
	// finance-go decodes a missing regularMarketPrice as zero
	if q == nil || q.RegularMarketPrice == 0 {
		return 0, ErrNoMarketPrice
	}
	return q.RegularMarketPrice, nil
}
