package dto

import (
	"github.com/shopspring/decimal"
)

type CartItemDTO struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CartDTO struct {
	CartID string          `json:"cart_id"`
	Items  []CartItemDTO   `json:"items"`
	Amount decimal.Decimal `json:"amount"`
}

type UpdateCartDTO struct {
	Items []CartItemDTO `json:"items"`
}
