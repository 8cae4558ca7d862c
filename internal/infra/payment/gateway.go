package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// ChargeResult 付款閘道回傳的結果, 原樣存入訂單
type ChargeResult struct {
	TransactionID string
	Status        string
	Success       bool
}

// Gateway 付款閘道抽象
// service層只依賴此介面, 測試用stub替換
type Gateway interface {
	// GenerateClientToken 產生前端結帳用的client token
	GenerateClientToken(ctx context.Context) (string, error)
	// Charge 以nonce進行一次sale交易
	Charge(ctx context.Context, nonce string, amount decimal.Decimal) (*ChargeResult, error)
}
