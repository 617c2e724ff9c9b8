// Package getstocks implements the GetStocks HTTP function: price a list of
// tickers and push the successful quotes to the configured queue as one batch.
package getstocks

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/alim08/stockpush/pkg/errkind"
	"github.com/alim08/stockpush/pkg/logger"
	"github.com/alim08/stockpush/pkg/models"
	"github.com/alim08/stockpush/pkg/queue"
	"github.com/alim08/stockpush/pkg/quote"
	"go.uber.org/zap"
)

const (
	msgMissingName = "Please pass a stock ticker (or comma-separated list) as 'name'."
	msgNoTickers   = "No valid tickers provided."
	pushedPrefix   = "Pushed to Event Hub: "
	failedPrefix   = "Failed: "
)

// Handler serves one GetStocks request per call. It holds no per-request state.
type Handler struct {
	quotes *quote.Fetcher
	open   queue.Opener
}

func New(provider quote.Provider, open queue.Opener) *Handler {
	return &Handler{quotes: quote.NewFetcher(provider), open: open}
}

type requestBody struct {
	Name *string `json:"name"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger.Log.Info("processing stock request")
	ctx := r.Context()

	tickers, err := parseTickers(r)
	if err != nil {
		writeText(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.quoteAndPublish(ctx, tickers)
	if err != nil {
		logger.Log.Error("event hub error", zap.Error(err), zap.Stringer("kind", errkind.KindOf(err)))
		writeText(w, http.StatusInternalServerError, failedPrefix+err.Error())
		return
	}

	writeText(w, http.StatusOK, pushedPrefix+models.Summary(results))
}

// parseTickers reads the "name" query parameter, falling back to the "name"
// field of a JSON body when the parameter is absent or empty.
func parseTickers(r *http.Request) ([]models.TickerSymbol, error) {
	list := r.URL.Query().Get("name")
	if list == "" {
		var body requestBody
		if r.Body == nil {
			return nil, errkind.NewInput(msgMissingName)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == nil {
			return nil, errkind.NewInput(msgMissingName)
		}
		list = *body.Name
	}

	tickers := models.ParseTickers(list)
	if len(tickers) == 0 {
		return nil, errkind.NewInput(msgNoTickers)
	}
	return tickers, nil
}

// quoteAndPublish opens the producer and its batch before any quote is
// fetched, so a misconfigured queue fails without calling the provider. One
// message per priced ticker goes into a single batch, which is submitted even
// when empty. The producer is closed on every path.
func (h *Handler) quoteAndPublish(ctx context.Context, tickers []models.TickerSymbol) (results []models.QuoteResult, err error) {
	producer, err := h.open(ctx)
	if err != nil {
		return nil, errkind.NewPublish("create producer", err)
	}
	defer func() {
		if cerr := producer.Close(ctx); cerr != nil && err == nil {
			results, err = nil, errkind.NewPublish("close producer", cerr)
		}
	}()

	batch, err := producer.NewBatch(ctx)
	if err != nil {
		return nil, errkind.NewPublish("create batch", err)
	}

	results = h.quotes.FetchAll(ctx, tickers)
	for _, res := range results {
		if !res.OK() {
			continue
		}
		if err := batch.Add(res.Message()); err != nil {
			return nil, errkind.NewPublish("add "+string(res.Ticker)+" to batch", err)
		}
	}

	if err := producer.SendBatch(ctx, batch); err != nil {
		return nil, errkind.NewPublish("send batch", err)
	}
	logger.Log.Info("batch sent", zap.Int("messages", batch.Len()), zap.Int("tickers", len(results)))
	return results, nil
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		logger.Log.Warn("write response failed", zap.Error(err))
	}
}
