package service

import (
	"context"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/util/er"
	"github.com/gosimple/slug"
)

type ICategoryService interface {
	// CreateCategory 創建分類
	// 名稱重複(不分大小寫, 或slug正規化後相同)視為冪等成功, 回傳既有分類與created=false
	//
	// 錯誤:
	//   - er.InvalidArgumentCode: 名稱為空
	//   - er.InternalErrorCode: db錯誤
	CreateCategory(ctx context.Context, name string) (*model.Category, bool, error)
	// UpdateCategory 更新分類名稱並重新產生slug
	//
	// 錯誤:
	//   - er.InvalidArgumentCode: 名稱為空
	//   - er.NotFoundCode: 分類不存在
	//   - er.ConflictCode: 名稱或slug與其他分類衝突
	UpdateCategory(ctx context.Context, id uint, name string) (*model.Category, error)
	// DeleteCategory 刪除分類
	//
	// 錯誤:
	//   - er.NotFoundCode: 分類不存在
	DeleteCategory(ctx context.Context, id uint) error
	GetAllCategories(ctx context.Context) ([]model.Category, error)
	// GetCategoryBySlug 依slug查詢單一分類
	//
	// 錯誤:
	//   - er.NotFoundCode: 分類不存在
	GetCategoryBySlug(ctx context.Context, categorySlug string) (*model.Category, error)
}

type CategoryService struct {
	categoryRepo *db.CategoryRepo
}

func NewCategoryService(categoryRepo *db.CategoryRepo) ICategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

func (c *CategoryService) CreateCategory(ctx context.Context, name string) (*model.Category, bool, error) {
	if name == "" {
		return nil, false, er.New(er.InvalidArgumentCode, "name is required")
	}

	// 名稱或正規化後slug相同都視為同一分類
	existing, err := c.categoryRepo.GetCategoryByNameInsensitive(ctx, name)
	if err != nil {
		return nil, false, er.New(er.InternalErrorCode, err.Error())
	}
	if existing != nil {
		return existing, false, nil
	}

	categorySlug := slug.Make(name)
	existing, err = c.categoryRepo.GetCategoryBySlugInsensitive(ctx, categorySlug)
	if err != nil {
		return nil, false, er.New(er.InternalErrorCode, err.Error())
	}
	if existing != nil {
		return existing, false, nil
	}

	category := &model.Category{
		Name: name,
		Slug: categorySlug,
	}
	if err := c.categoryRepo.CreateCategory(ctx, category); err != nil {
		return nil, false, er.New(er.InternalErrorCode, err.Error())
	}
	return category, true, nil
}

func (c *CategoryService) UpdateCategory(ctx context.Context, id uint, name string) (*model.Category, error) {
	if name == "" {
		return nil, er.New(er.InvalidArgumentCode, "name is required")
	}

	category, err := c.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if category == nil {
		return nil, er.New(er.NotFoundCode, "category not found")
	}

	categorySlug := slug.Make(name)
	existing, err := c.categoryRepo.GetCategoryBySlugInsensitive(ctx, categorySlug)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if existing != nil && existing.CategoryID != category.CategoryID {
		return nil, er.New(er.ConflictCode, "category with same name already exists")
	}

	category.Name = name
	category.Slug = categorySlug
	if err := c.categoryRepo.UpdateCategory(ctx, category); err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return category, nil
}

func (c *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	affected, err := c.categoryRepo.DeleteCategory(ctx, id)
	if err != nil {
		return er.New(er.InternalErrorCode, err.Error())
	}
	if affected == 0 {
		return er.New(er.NotFoundCode, "category not found")
	}
	return nil
}

func (c *CategoryService) GetAllCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := c.categoryRepo.GetAllCategories(ctx)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return categories, nil
}

func (c *CategoryService) GetCategoryBySlug(ctx context.Context, categorySlug string) (*model.Category, error) {
	category, err := c.categoryRepo.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if category == nil {
		return nil, er.New(er.NotFoundCode, "category not found")
	}
	return category, nil
}
