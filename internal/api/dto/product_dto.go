package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uint            `json:"category_id"`
	Category    *CategoryDTO    `json:"category,omitempty"`
	Quantity    int             `json:"quantity"`
	Shipping    bool            `json:"shipping"`
	HasPhoto    bool            `json:"has_photo"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductFiltersDTO 分類checkbox與價格範圍
// Radio: [] 不過濾, [lo] 下限, [lo, hi] 閉區間
type ProductFiltersDTO struct {
	Checked []uint            `json:"checked"`
	Radio   []decimal.Decimal `json:"radio"`
}

type ProductCountResponse struct {
	Total int64 `json:"total"`
}

type ProductCategoryResponse struct {
	Category CategoryDTO  `json:"category"`
	Products []ProductDTO `json:"products"`
}
