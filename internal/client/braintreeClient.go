package client

import (
	"context"
	"errors"
	"fmt"

	"diversity-shop/internal/config"

	"github.com/braintree-go/braintree-go"
)

// ErrChargeDeclined reports a processor-side decline, as opposed to a
// transport or configuration failure talking to the gateway.
var ErrChargeDeclined = errors.New("charge declined by processor")

// ChargeRequest carries everything the gateway needs to authorize a charge.
// AmountCents is in minor currency units; the caller is responsible for
// having computed it from an already-validated order total.
type ChargeRequest struct {
	PayerToken  string
	PayerEmail  string
	AmountCents int64
	Currency    string
	Description string
}

// --- INTERFACE ---

type PaymentGateway interface {
	// Charge authorizes and captures a payment, returning the gateway's
	// charge reference on success.
	Charge(ctx context.Context, req ChargeRequest) (string, error)
}

// --- IMPLEMENTATION ---

type braintreeGatewayImpl struct {
	gateway *braintree.Braintree
}

// NewBraintreeGateway initializes the Braintree SDK gateway
func NewBraintreeGateway(cfg *config.Braintree) PaymentGateway {
	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	gateway := braintree.New(
		env,
		cfg.MerchantID,
		cfg.PublicKey,
		cfg.PrivateKey,
	)

	return &braintreeGatewayImpl{
		gateway: gateway,
	}
}

// --- METHODS ---

func (c *braintreeGatewayImpl) Charge(ctx context.Context, req ChargeRequest) (string, error) {
	if req.AmountCents <= 0 {
		return "", fmt.Errorf("charge amount must be positive, got %d", req.AmountCents)
	}

	// Braintree expects NewDecimal(unscaled, scale). Cents with 2 decimal
	// places: 2500 -> braintree.NewDecimal(2500, 2) == 25.00
	btAmount := braintree.NewDecimal(req.AmountCents, 2)

	txReq := &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             btAmount,
		PaymentMethodNonce: req.PayerToken,
		Customer: &braintree.CustomerRequest{
			Email: req.PayerEmail,
		},
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true, // Captures the funds immediately
		},
	}

	tx, err := c.gateway.Transaction().Create(ctx, txReq)
	if err != nil {
		return "", fmt.Errorf("transaction creation failed: %w", err)
	}

	if tx.Status == braintree.TransactionStatusProcessorDeclined {
		return "", fmt.Errorf("%w: %s", ErrChargeDeclined, tx.ProcessorResponseText)
	}

	return tx.Id, nil
}
