package payment

import (
	"context"

	"github.com/braintree-go/braintree-go"
	"github.com/shopspring/decimal"
)

type BraintreeGateway struct {
	bt *braintree.Braintree
}

func NewBraintreeGateway(environment, merchantID, publicKey, privateKey string) *BraintreeGateway {
	env := braintree.Sandbox
	if environment == "production" {
		env = braintree.Production
	}
	return &BraintreeGateway{
		bt: braintree.New(env, merchantID, publicKey, privateKey),
	}
}

var _ Gateway = (*BraintreeGateway)(nil)

func (g *BraintreeGateway) GenerateClientToken(ctx context.Context) (string, error) {
	return g.bt.ClientToken().Generate(ctx)
}

func (g *BraintreeGateway) Charge(ctx context.Context, nonce string, amount decimal.Decimal) (*ChargeResult, error) {
	tx, err := g.bt.Transaction().Create(ctx, &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(amount.Shift(2).IntPart(), 2),
		PaymentMethodNonce: nonce,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	})
	if err != nil {
		return nil, err
	}

	return &ChargeResult{
		TransactionID: tx.Id,
		Status:        string(tx.Status),
		Success:       true,
	}, nil
}
