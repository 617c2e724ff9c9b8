// Package quote prices ticker symbols one at a time and turns provider
// failures into per-ticker results instead of request failures.
package quote

import (
	"context"
	"time"

	"github.com/alim08/stockpush/pkg/errkind"
	"github.com/alim08/stockpush/pkg/logger"
	"github.com/alim08/stockpush/pkg/metrics"
	"github.com/alim08/stockpush/pkg/models"
	"github.com/alim08/stockpush/pkg/validation"
	"go.uber.org/zap"
)

// Provider looks up the current price of a single ticker.
type Provider interface {
	Name() string
	Price(ctx context.Context, ticker models.TickerSymbol) (float64, error)
}

// Fetcher runs a Provider over a ticker list.
type Fetcher struct {
	provider Provider
}

func NewFetcher(p Provider) *Fetcher {
	return &Fetcher{provider: p}
}

// FetchAll prices tickers sequentially and returns one result per ticker in
// input order. A failed ticker never stops the remaining lookups.
func (f *Fetcher) FetchAll(ctx context.Context, tickers []models.TickerSymbol) []models.QuoteResult {
	results := make([]models.QuoteResult, 0, len(tickers))
	for _, t := range tickers {
		results = append(results, f.fetchOne(ctx, t))
	}
	return results
}

func (f *Fetcher) fetchOne(ctx context.Context, ticker models.TickerSymbol) models.QuoteResult {
	start := time.Now()
	price, err := f.provider.Price(ctx, ticker)
	metrics.QuoteLatency.Observe(time.Since(start).Seconds())

	if err == nil {
		err = validation.ValidatePrice(price)
	}
	if err != nil {
		logger.Log.Warn("failed to get data for ticker",
			zap.String("ticker", string(ticker)),
			zap.String("provider", f.provider.Name()),
			zap.Error(err))
		metrics.QuoteCounter.WithLabelValues("failed").Inc()
		return models.QuoteResult{Ticker: ticker, Err: errkind.NewQuote(err)}
	}

	metrics.QuoteCounter.WithLabelValues("success").Inc()
	return models.QuoteResult{Ticker: ticker, Price: &price}
}
