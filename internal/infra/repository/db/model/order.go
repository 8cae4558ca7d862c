package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusNotProcessed OrderStatus = "Not Processed"
	OrderStatusProcessing   OrderStatus = "Processing"
	OrderStatusShipped      OrderStatus = "Shipped"
	OrderStatusDelivered    OrderStatus = "Delivered"
	OrderStatusCancelled    OrderStatus = "Cancelled"
)

// IsValidOrderStatus 只驗證enum成員, 不限制狀態轉移順序
func IsValidOrderStatus(status string) bool {
	switch OrderStatus(status) {
	case OrderStatusNotProcessed, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

type Order struct {
	OrderID        uuid.UUID       `gorm:"primaryKey;type:uuid"`
	UserID         uuid.UUID       `gorm:"not null;type:uuid;index"` // buyer
	Buyer          *User           `gorm:"foreignKey:UserID"`
	Status         OrderStatus     `gorm:"not null;type:varchar(20);default:'Not Processed'"`
	Amount         decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	IdempotencyKey string          `gorm:"not null;type:varchar(100);uniqueIndex"`
	TransactionID  string          `gorm:"type:varchar(100)"`
	PaymentStatus  string          `gorm:"type:varchar(50)"`
	PaymentSuccess bool            `gorm:"not null;default:false"`
	OrderItems     []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"` // 一對多，級聯刪除
	BaseModel
}

// OrderItem 下單當下的商品快照, 後續catalog修改不影響歷史訂單
type OrderItem struct {
	OrderID     uuid.UUID       `gorm:"primaryKey;type:uuid"`
	ProductID   uint            `gorm:"primaryKey"`
	ProductName string          `gorm:"not null;type:varchar(100)"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	Quantity    int             `gorm:"not null"`
	BaseModel
}
