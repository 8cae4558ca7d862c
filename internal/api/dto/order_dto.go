package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItemDTO struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

type OrderBuyerDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type OrderPaymentDTO struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Success       bool   `json:"success"`
}

type OrderDTO struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	Buyer     *OrderBuyerDTO  `json:"buyer,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Payment   OrderPaymentDTO `json:"payment"`
	Items     []OrderItemDTO  `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status"`
}
