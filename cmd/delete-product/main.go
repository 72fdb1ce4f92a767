// Lambda entrypoint for DELETE /shoe-products/{id}.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jacentio/storefront/internal/api"
	"github.com/jacentio/storefront/internal/config"
	"github.com/jacentio/storefront/internal/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load("")
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	client, err := store.NewClient(context.Background(), cfg.DynamoEndpoint)
	if err != nil {
		slog.Error("dynamodb client failed", "error", err)
		os.Exit(1)
	}

	st := store.New(client, store.Config{Table: cfg.ProductsTable})
	h := api.NewHandler(st, cfg.DefaultPageSize, cfg.MaxPageSize, slog.Default())
	lambda.Start(h.DeleteProduct)
}
