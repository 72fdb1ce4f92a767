package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/storefront/internal/catalog"
	"github.com/jacentio/storefront/internal/payments"
)

// IntentService is the payment surface the handler depends on.
// *payments.Client satisfies it.
type IntentService interface {
	CreateIntent(ctx context.Context, amountMinor int64) (string, error)
}

// PaymentHandler serves POST /create-payment-intent.
type PaymentHandler struct {
	intents IntentService
	logger  *slog.Logger
}

// NewPaymentHandler wires the payment route to an intent service.
func NewPaymentHandler(intents IntentService, logger *slog.Logger) *PaymentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentHandler{intents: intents, logger: logger}
}

type intentBody struct {
	ClientSecret string `json:"clientSecret"`
}

// CreatePaymentIntent validates the charge amount, registers an intent
// for it in minor units, and returns only the client secret.
func (h *PaymentHandler) CreatePaymentIntent(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	fields, errResp := decodeBody(req)
	if errResp != nil {
		return *errResp, nil
	}
	amount, violations := chargeAmount(fields)
	if len(violations) > 0 {
		return respondViolations(violations), nil
	}

	secret, err := h.intents.CreateIntent(ctx, payments.MinorUnits(amount))
	if err != nil {
		h.logger.Error("create payment intent failed", "error", err)
		return respondInternal(), nil
	}
	return respond(http.StatusOK, dataBody{Data: intentBody{ClientSecret: secret}}), nil
}

// chargeAmount pulls a positive major-unit amount out of the request
// body. Extra fields are tolerated; only amount matters here.
func chargeAmount(fields map[string]any) (float64, catalog.Violations) {
	v, ok := fields["amount"]
	if !ok {
		return 0, catalog.Violations{{Field: "amount", Message: "is required"}}
	}
	n, ok := v.(float64)
	if !ok {
		return 0, catalog.Violations{{Field: "amount", Message: "must be a number"}}
	}
	if n <= 0 {
		return 0, catalog.Violations{{Field: "amount", Message: "must be greater than 0"}}
	}
	return n, nil
}
