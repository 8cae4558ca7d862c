package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart 購物車只存redis, 不落db
type Cart struct {
	CartID    uuid.UUID       `json:"cart_id"`
	UserID    uuid.UUID       `json:"user_id"`
	CartItems []CartItem      `json:"cart_items"`
	Amount    decimal.Decimal `json:"amount"`
}

type CartItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}
