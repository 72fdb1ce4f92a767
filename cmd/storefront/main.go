// storefront runs every route in one process over plain HTTP, for local
// development against a DynamoDB container instead of deployed Lambdas.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jacentio/storefront/internal/api"
	"github.com/jacentio/storefront/internal/config"
	"github.com/jacentio/storefront/internal/payments"
	"github.com/jacentio/storefront/internal/store"
	"github.com/jacentio/storefront/internal/web"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}
	if cfg.StripeSecretKey == "" {
		slog.Warn("STRIPE_SECRET_KEY not set, payment intents will fail")
	}

	client, err := store.NewClient(context.Background(), cfg.DynamoEndpoint)
	if err != nil {
		slog.Error("dynamodb client failed", "error", err)
		os.Exit(1)
	}

	st := store.New(client, store.Config{Table: cfg.ProductsTable})
	h := api.NewHandler(st, cfg.DefaultPageSize, cfg.MaxPageSize, slog.Default())
	p := api.NewPaymentHandler(payments.New(cfg.StripeSecretKey), slog.Default())

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      web.Routes(h, p),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("storefront listening", "addr", cfg.HTTPAddr, "table", cfg.ProductsTable)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("stopped")
}
