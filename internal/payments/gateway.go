package payments

import "context"

// Charge is the confirmed payment transaction returned by the gateway.
// Amount is what was actually charged, in the smallest currency unit.
type Charge struct {
	ID     string
	Amount int64
}

// Gateway creates a synchronous, immediately-confirmed charge against a
// client-supplied payment method token.
type Gateway interface {
	Charge(ctx context.Context, amount int64, currency, token string) (*Charge, error)
}
