package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *DbDao
}

func NewCategoryRepo(db *DbDao) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Create - 創建分類
func (s *CategoryRepo) CreateCategory(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

// Read - 根據ID查詢分類
func (s *CategoryRepo) GetCategoryByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	err := s.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Read - 根據slug查詢分類
func (s *CategoryRepo) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Read - 根據名稱查詢分類, 不分大小寫
func (s *CategoryRepo) GetCategoryByNameInsensitive(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	err := s.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Read - 根據slug查詢分類, 不分大小寫
func (s *CategoryRepo) GetCategoryBySlugInsensitive(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	err := s.db.WithContext(ctx).Where("LOWER(slug) = LOWER(?)", slug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Read - 查詢所有分類
func (s *CategoryRepo) GetAllCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := s.db.WithContext(ctx).Find(&categories).Error
	return categories, err
}

// Update - 更新分類
func (s *CategoryRepo) UpdateCategory(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Save(category).Error
}

// Delete - 刪除分類
// 回傳實際刪除筆數, 供呼叫端區分not found
func (s *CategoryRepo) DeleteCategory(ctx context.Context, id uint) (int64, error) {
	result := s.db.WithContext(ctx).Delete(&model.Category{}, id)
	return result.RowsAffected, result.Error
}

// 分類總數
func (s *CategoryRepo) CountCategories(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Category{}).Count(&total).Error
	return total, err
}
