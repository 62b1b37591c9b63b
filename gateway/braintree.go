package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/braintree-go/braintree-go"
	"github.com/shopspring/decimal"

	"github.com/shopnest/ecommerce-api/config"
)

// Braintree implements Gateway on the Braintree SDK.
type Braintree struct {
	bt *braintree.Braintree
}

func NewBraintree(cfg config.BraintreeConfig) (*Braintree, error) {
	env, err := braintree.EnvironmentFromName(cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("braintree environment %q: %w", cfg.Environment, err)
	}
	return &Braintree{
		bt: braintree.New(env, cfg.MerchantID, cfg.PublicKey, cfg.PrivateKey),
	}, nil
}

func (g *Braintree) ClientToken(ctx context.Context) (string, error) {
	token, err := g.bt.ClientToken().Generate(ctx)
	if err != nil {
		return "", fmt.Errorf("generate client token: %w", err)
	}
	return token, nil
}

func (g *Braintree) Sale(ctx context.Context, amount decimal.Decimal, nonce string) (*SaleResult, error) {
	cents := amount.Shift(2).Round(0).IntPart()

	tx, err := g.bt.Transaction().Create(ctx, &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(cents, 2),
		PaymentMethodNonce: nonce,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	})
	if err != nil {
		// The SDK reports declines and validation rejections as a
		// BraintreeError; those are outcomes, not failures.
		var btErr *braintree.BraintreeError
		if errors.As(err, &btErr) {
			return &SaleResult{
				Success: false,
				Amount:  amount.StringFixed(2),
				Message: btErr.Error(),
			}, nil
		}
		return nil, fmt.Errorf("create sale transaction: %w", err)
	}

	settled := amount
	if tx.Amount != nil {
		settled = decimal.New(tx.Amount.Unscaled, -int32(tx.Amount.Scale))
	}
	return &SaleResult{
		Success:       true,
		TransactionID: tx.Id,
		Status:        string(tx.Status),
		Amount:        settled.StringFixed(2),
	}, nil
}
