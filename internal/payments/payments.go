// Package payments creates Stripe payment intents for client-side
// checkout. Nothing about an intent is persisted here; Stripe holds the
// state and the frontend finishes the flow with the client secret.
package payments

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// IntentCreator is the slice of the Stripe client this package depends
// on. Tests substitute it; production wires *paymentintent.Client.
type IntentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// Client creates payment intents in a fixed settlement currency.
type Client struct {
	intents  IntentCreator
	currency string
}

// New builds a Client backed by the Stripe API.
func New(secretKey string) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return NewWithCreator(api.PaymentIntents)
}

// NewWithCreator builds a Client over any intent creator.
func NewWithCreator(intents IntentCreator) *Client {
	return &Client{intents: intents, currency: string(stripe.CurrencyUSD)}
}

// CreateIntent registers an intent for the given amount in minor units
// and returns the client secret the frontend needs to take payment. The
// call is made once; Stripe errors come back to the caller untouched
// beyond wrapping.
func (c *Client) CreateIntent(ctx context.Context, amountMinor int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(c.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	intent, err := c.intents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}

// MinorUnits converts a major-unit amount to minor units. The conversion
// rounds in decimal space: 19.99 must come out as 1999, not the 1998 a
// float multiply truncates to.
func MinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
