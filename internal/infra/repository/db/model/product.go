package model

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID        uint            `gorm:"primaryKey"`
	Name             string          `gorm:"not null;type:varchar(100)"`
	Slug             string          `gorm:"not null;type:varchar(100);uniqueIndex"`
	Description      string          `gorm:"not null;type:text"`
	Price            decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	CategoryID       uint            `gorm:"not null;index"`
	Category         *Category       `gorm:"foreignKey:CategoryID"`
	Quantity         int             `gorm:"not null"`
	Photo            []byte          `gorm:"type:bytea"`
	PhotoContentType string          `gorm:"type:varchar(100)"`
	Shipping         bool            `gorm:"not null;default:false"`
	BaseModel
}

// ProductListColumns 列表查詢用欄位, 不含photo blob
var ProductListColumns = []string{
	"product_id", "name", "slug", "description", "price",
	"category_id", "quantity", "photo_content_type", "shipping",
	"created_at", "updated_at",
}
