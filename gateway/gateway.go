// Package gateway wraps the payment processor. Declined or rejected
// transactions are reported as data in a SaleResult; only transport and
// configuration failures surface as errors.
package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// SaleResult is the gateway's reported outcome for one sale attempt.
type SaleResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId,omitempty"`
	Status        string `json:"status,omitempty"`
	Amount        string `json:"amount"`
	Message       string `json:"message,omitempty"`
}

// Gateway issues client tokens and settles sale transactions.
type Gateway interface {
	// ClientToken returns a fresh token scoped to the merchant, consumed by
	// the client-side payment widget.
	ClientToken(ctx context.Context) (string, error)

	// Sale submits a sale for amount using a one-time payment-method nonce.
	// A non-nil error means the gateway was not reached or rejected the
	// request outright; a SaleResult with Success=false means the gateway
	// processed and declined the transaction.
	Sale(ctx context.Context, amount decimal.Decimal, nonce string) (*SaleResult, error)
}
