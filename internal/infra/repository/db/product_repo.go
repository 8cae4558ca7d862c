package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) *ProductRepo {
	return &ProductRepo{db: db}
}

// ProductFilter 分類與價格的組合查詢條件
// Categories 為空 => 不過濾分類
// PriceRange 空 => 不過濾價格; [lo] => price >= lo; [lo, hi] => 閉區間
type ProductFilter struct {
	Categories []uint
	PriceRange []decimal.Decimal
}

// Create - 創建商品
func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

// Read - 根據ID查詢商品
func (s *ProductRepo) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Read - 根據slug查詢商品, 帶分類, 不含photo
func (s *ProductRepo) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).
		Select(model.ProductListColumns).
		Preload("Category").
		Where("slug = ?", slug).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Read - 商品列表, 最新優先, 不含photo
func (s *ProductRepo) GetProducts(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	query := s.db.WithContext(ctx).
		Select(model.ProductListColumns).
		Preload("Category").
		Order("product_id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&products).Error
	return products, err
}

// 組合查詢 - 分類AND價格, 無條件時回傳全部, 不分頁
func (s *ProductRepo) FilterProducts(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	var products []model.Product
	query := s.db.WithContext(ctx).Select(model.ProductListColumns)

	if len(filter.Categories) > 0 {
		query = query.Where("category_id IN ?", filter.Categories)
	}
	switch len(filter.PriceRange) {
	case 1:
		query = query.Where("price >= ?", filter.PriceRange[0])
	case 2:
		query = query.Where("price >= ? AND price <= ?", filter.PriceRange[0], filter.PriceRange[1])
	}

	err := query.Find(&products).Error
	return products, err
}

// Read - 關鍵字搜尋, name或description子字串, 不分大小寫
func (s *ProductRepo) SearchProducts(ctx context.Context, keyword string) ([]model.Product, error) {
	var products []model.Product
	pattern := "%" + keyword + "%"
	err := s.db.WithContext(ctx).
		Select(model.ProductListColumns).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern).
		Find(&products).Error
	return products, err
}

// Read - 同分類相關商品, 排除自己
func (s *ProductRepo) GetRelatedProducts(ctx context.Context, productID, categoryID uint, limit int) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).
		Select(model.ProductListColumns).
		Preload("Category").
		Where("category_id = ? AND product_id <> ?", categoryID, productID).
		Limit(limit).
		Find(&products).Error
	return products, err
}

// Read - 分類下所有商品
func (s *ProductRepo) GetProductsByCategory(ctx context.Context, categoryID uint) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).
		Select(model.ProductListColumns).
		Preload("Category").
		Where("category_id = ?", categoryID).
		Find(&products).Error
	return products, err
}

// 分頁查詢商品, 最新優先
func (s *ProductRepo) GetProductsPaginated(ctx context.Context, page, pageSize int) ([]model.Product, error) {
	var products []model.Product
	offset := (page - 1) * pageSize
	err := s.db.WithContext(ctx).
		Select(model.ProductListColumns).
		Order("product_id DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&products).Error
	return products, err
}

// 商品總數
func (s *ProductRepo) CountProducts(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Product{}).Count(&total).Error
	return total, err
}

// Update - 更新商品
func (s *ProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Save(product).Error
}

// Delete - 刪除商品
func (s *ProductRepo) DeleteProduct(ctx context.Context, id uint) (int64, error) {
	result := s.db.WithContext(ctx).Delete(&model.Product{}, id)
	return result.RowsAffected, result.Error
}
