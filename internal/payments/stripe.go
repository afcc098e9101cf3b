package payments

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) Charge(ctx context.Context, amount int64, currency, token string) (*Charge, error) {
	params := &stripe.PaymentIntentParams{
		Params:        stripe.Params{Context: ctx},
		Amount:        stripe.Int64(amount),
		Currency:      stripe.String(currency),
		Confirm:       stripe.Bool(true),
		PaymentMethod: stripe.String(token),
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		// Surface Stripe's human-readable message to the caller.
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
			return nil, errors.New(stripeErr.Msg)
		}
		return nil, err
	}

	return &Charge{ID: intent.ID, Amount: intent.Amount}, nil
}
