package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/catalog"
	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/config"
	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/notify"
	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/order"
	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/payment"
	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/transport"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "order-service").Logger()

	log.Info().Msg("Order service starting...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log.Debug().Interface("config_loaded", cfg).Msg("Configuration loaded")

	products := catalog.NewStore(catalog.DefaultProducts())
	products.Subscribe(func(event catalog.StockEvent) {
		log.Info().
			Str("product_id", event.ProductID).
			Int("stock", event.Stock).
			Time("at", event.At).
			Msg("catalog: stock changed")
	})

	queue := notify.NewQueue(cfg.Queue.Concurrency, nil)
	payments := payment.NewAdapter(payment.NewFakeProvider())
	orders := order.NewMemoryStore()
	svc := order.NewService(products, payments, queue, orders, cfg.Payment.Currency)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      transport.NewRouter(svc, products),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}

	stats := queue.Stats()
	log.Info().
		Uint64("notifications_enqueued", stats.Enqueued).
		Uint64("notifications_failed", stats.Failed).
		Int("notifications_pending", stats.Backlog+stats.Active).
		Msg("Server stopped")
}
