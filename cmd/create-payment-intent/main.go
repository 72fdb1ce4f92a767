// Lambda entrypoint for POST /create-payment-intent.
package main

import (
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jacentio/storefront/internal/api"
	"github.com/jacentio/storefront/internal/config"
	"github.com/jacentio/storefront/internal/payments"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load("")
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}
	if cfg.StripeSecretKey == "" {
		slog.Error("STRIPE_SECRET_KEY is required")
		os.Exit(1)
	}

	h := api.NewPaymentHandler(payments.New(cfg.StripeSecretKey), slog.Default())
	lambda.Start(h.CreatePaymentIntent)
}
