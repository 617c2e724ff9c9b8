package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alim08/stockpush/pkg/config"
	"github.com/alim08/stockpush/pkg/getstocks"
	"github.com/alim08/stockpush/pkg/logger"
	"github.com/alim08/stockpush/pkg/metrics"
	"github.com/alim08/stockpush/pkg/queue"
	"github.com/alim08/stockpush/pkg/quote"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		panic("config error: " + err.Error())
	}

	// 2. Init logger
	if err := logger.Init(); err != nil {
		panic("logger init: " + err.Error())
	}
	defer logger.Log.Sync()

	// 3. Wire the function
	h := getstocks.New(quote.NewYahoo(cfg.QuoteTimeout), queue.NewOpener(cfg.Queue))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      newRouter(h),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Log.Info("starting HTTP server",
			zap.String("addr", server.Addr),
			zap.String("queue_backend", cfg.Queue.Backend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// 4. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Log.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Log.Info("server exited")
}

// newRouter mounts the function under /api/GetStocks, the path the Functions
// host forwards to custom handlers.
func newRouter(h http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(metricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Method(http.MethodGet, "/api/GetStocks", h)
	r.Method(http.MethodPost, "/api/GetStocks", h)
	return r
}
