package service

import (
	"context"

	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/util/er"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

type ProductParams struct {
	Name             string
	Description      string
	Price            decimal.Decimal
	CategoryID       uint
	Quantity         int
	Shipping         bool
	Photo            []byte
	PhotoContentType string
}

type IProductService interface {
	// CreateProduct 創建商品, photo以外欄位必填
	//
	// 錯誤:
	//   - er.InvalidArgumentCode: 缺少必填欄位或photo過大
	//   - er.NotFoundCode: 分類不存在
	//   - er.ConflictCode: slug衝突
	CreateProduct(ctx context.Context, params ProductParams) (*model.Product, error)
	// UpdateProduct 更新商品, name變更時重新產生slug
	// photo只在有提供時替換
	UpdateProduct(ctx context.Context, id uint, params ProductParams) (*model.Product, error)
	// DeleteProduct 刪除商品
	//
	// 錯誤:
	//   - er.NotFoundCode: 商品不存在
	DeleteProduct(ctx context.Context, id uint) error
	// GetProducts 商品列表, 最新優先, 上限12筆, 不含photo
	GetProducts(ctx context.Context) ([]model.Product, error)
	GetProductBySlug(ctx context.Context, productSlug string) (*model.Product, error)
	// GetProductPhoto 取得商品圖片原始內容與content type
	//
	// 錯誤:
	//   - er.NotFoundCode: 商品不存在或沒有圖片
	GetProductPhoto(ctx context.Context, id uint) ([]byte, string, error)
	// FilterProducts 分類+價格組合查詢, 條件皆空回傳全部
	FilterProducts(ctx context.Context, filter db.ProductFilter) ([]model.Product, error)
	// SearchProducts 關鍵字子字串搜尋name/description
	SearchProducts(ctx context.Context, keyword string) ([]model.Product, error)
	// GetProductsPaginated 每頁6筆, page從1開始
	GetProductsPaginated(ctx context.Context, page int) ([]model.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	// GetRelatedProducts 同分類商品, 排除自己, 上限3筆
	GetRelatedProducts(ctx context.Context, productID, categoryID uint) ([]model.Product, error)
	// GetProductsByCategorySlug 分類slug查詢分類與其商品
	GetProductsByCategorySlug(ctx context.Context, categorySlug string) (*model.Category, []model.Product, error)
}

type ProductService struct {
	productRepo  *db.ProductRepo
	categoryRepo *db.CategoryRepo
}

func NewProductService(productRepo *db.ProductRepo, categoryRepo *db.CategoryRepo) IProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func validateProductParams(params ProductParams) error {
	switch {
	case params.Name == "":
		return er.New(er.InvalidArgumentCode, "name is required")
	case params.Description == "":
		return er.New(er.InvalidArgumentCode, "description is required")
	case params.Price.LessThanOrEqual(decimal.Zero):
		return er.New(er.InvalidArgumentCode, "price is required")
	case params.CategoryID == 0:
		return er.New(er.InvalidArgumentCode, "category is required")
	case params.Quantity < 0:
		return er.New(er.InvalidArgumentCode, "quantity is required")
	case int64(len(params.Photo)) > constants.MaxPhotoSize:
		return er.New(er.InvalidArgumentCode, "photo should be less than 1mb")
	}
	return nil
}

func (p *ProductService) CreateProduct(ctx context.Context, params ProductParams) (*model.Product, error) {
	if err := validateProductParams(params); err != nil {
		return nil, err
	}

	category, err := p.categoryRepo.GetCategoryByID(ctx, params.CategoryID)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if category == nil {
		return nil, er.New(er.NotFoundCode, "category not found")
	}

	productSlug := slug.Make(params.Name)
	existing, err := p.productRepo.GetProductBySlug(ctx, productSlug)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if existing != nil {
		return nil, er.New(er.ConflictCode, "product with same name already exists")
	}

	product := &model.Product{
		Name:             params.Name,
		Slug:             productSlug,
		Description:      params.Description,
		Price:            params.Price,
		CategoryID:       params.CategoryID,
		Quantity:         params.Quantity,
		Shipping:         params.Shipping,
		Photo:            params.Photo,
		PhotoContentType: params.PhotoContentType,
	}
	if err := p.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return product, nil
}

func (p *ProductService) UpdateProduct(ctx context.Context, id uint, params ProductParams) (*model.Product, error) {
	if err := validateProductParams(params); err != nil {
		return nil, err
	}

	product, err := p.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if product == nil {
		return nil, er.New(er.NotFoundCode, "product not found")
	}

	category, err := p.categoryRepo.GetCategoryByID(ctx, params.CategoryID)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if category == nil {
		return nil, er.New(er.NotFoundCode, "category not found")
	}

	// name變更時slug跟著重新產生
	productSlug := slug.Make(params.Name)
	existing, err := p.productRepo.GetProductBySlug(ctx, productSlug)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if existing != nil && existing.ProductID != product.ProductID {
		return nil, er.New(er.ConflictCode, "product with same name already exists")
	}

	product.Name = params.Name
	product.Slug = productSlug
	product.Description = params.Description
	product.Price = params.Price
	product.CategoryID = params.CategoryID
	product.Quantity = params.Quantity
	product.Shipping = params.Shipping
	if len(params.Photo) > 0 {
		product.Photo = params.Photo
		product.PhotoContentType = params.PhotoContentType
	}

	if err := p.productRepo.UpdateProduct(ctx, product); err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return product, nil
}

func (p *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	affected, err := p.productRepo.DeleteProduct(ctx, id)
	if err != nil {
		return er.New(er.InternalErrorCode, err.Error())
	}
	if affected == 0 {
		return er.New(er.NotFoundCode, "product not found")
	}
	return nil
}

func (p *ProductService) GetProducts(ctx context.Context) ([]model.Product, error) {
	products, err := p.productRepo.GetProducts(ctx, constants.CatalogListLimit)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return products, nil
}

func (p *ProductService) GetProductBySlug(ctx context.Context, productSlug string) (*model.Product, error) {
	product, err := p.productRepo.GetProductBySlug(ctx, productSlug)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if product == nil {
		return nil, er.New(er.NotFoundCode, "product not found")
	}
	return product, nil
}

func (p *ProductService) GetProductPhoto(ctx context.Context, id uint) ([]byte, string, error) {
	product, err := p.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, "", er.New(er.InternalErrorCode, err.Error())
	}
	if product == nil {
		return nil, "", er.New(er.NotFoundCode, "product not found")
	}
	if len(product.Photo) == 0 {
		return nil, "", er.New(er.NotFoundCode, "product photo not found")
	}
	return product.Photo, product.PhotoContentType, nil
}

func (p *ProductService) FilterProducts(ctx context.Context, filter db.ProductFilter) ([]model.Product, error) {
	if len(filter.PriceRange) > 2 {
		return nil, er.New(er.InvalidArgumentCode, "price range must have at most two bounds")
	}
	products, err := p.productRepo.FilterProducts(ctx, filter)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return products, nil
}

func (p *ProductService) SearchProducts(ctx context.Context, keyword string) ([]model.Product, error) {
	if keyword == "" {
		return nil, er.New(er.InvalidArgumentCode, "keyword is required")
	}
	products, err := p.productRepo.SearchProducts(ctx, keyword)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return products, nil
}

func (p *ProductService) GetProductsPaginated(ctx context.Context, page int) ([]model.Product, error) {
	if page < 1 {
		page = constants.DefaultPaging
	}
	products, err := p.productRepo.GetProductsPaginated(ctx, page, constants.DefaultPagingSize)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return products, nil
}

func (p *ProductService) CountProducts(ctx context.Context) (int64, error) {
	total, err := p.productRepo.CountProducts(ctx)
	if err != nil {
		return 0, er.New(er.InternalErrorCode, err.Error())
	}
	return total, nil
}

func (p *ProductService) GetRelatedProducts(ctx context.Context, productID, categoryID uint) ([]model.Product, error) {
	products, err := p.productRepo.GetRelatedProducts(ctx, productID, categoryID, constants.RelatedProductLimit)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return products, nil
}

func (p *ProductService) GetProductsByCategorySlug(ctx context.Context, categorySlug string) (*model.Category, []model.Product, error) {
	category, err := p.categoryRepo.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, nil, er.New(er.InternalErrorCode, err.Error())
	}
	if category == nil {
		return nil, nil, er.New(er.NotFoundCode, "category not found")
	}

	products, err := p.productRepo.GetProductsByCategory(ctx, category.CategoryID)
	if err != nil {
		return nil, nil, er.New(er.InternalErrorCode, err.Error())
	}
	return category, products, nil
}
