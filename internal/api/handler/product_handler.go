package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/internal/util/er"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	productService service.IProductService
}

func NewProductHandler(productService service.IProductService) *ProductHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	return &ProductHandler{
		productService: productService,
	}
}

func convertProductModelToDTO(product *model.Product) dto.ProductDTO {
	productDTO := dto.ProductDTO{
		ID:          product.ProductID,
		Name:        product.Name,
		Slug:        product.Slug,
		Description: product.Description,
		Price:       product.Price,
		CategoryID:  product.CategoryID,
		Quantity:    product.Quantity,
		Shipping:    product.Shipping,
		HasPhoto:    product.PhotoContentType != "",
		CreatedAt:   product.CreatedAt,
	}
	if product.Category != nil {
		categoryDTO := convertCategoryModelToDTO(product.Category)
		productDTO.Category = &categoryDTO
	}
	return productDTO
}

func convertProductModelsToDTOs(products []model.Product) []dto.ProductDTO {
	productDTOs := make([]dto.ProductDTO, 0, len(products))
	for i := range products {
		productDTOs = append(productDTOs, convertProductModelToDTO(&products[i]))
	}
	return productDTOs
}

// parseProductForm 解析multipart form欄位與photo
// photo為選填, 大小上限由service檢查
func parseProductForm(r *http.Request) (service.ProductParams, error) {
	var params service.ProductParams

	if err := r.ParseMultipartForm(constants.MaxPhotoSize * 2); err != nil {
		return params, er.New(er.BadRequestCode, "invalid multipart form")
	}

	params.Name = r.FormValue("name")
	params.Description = r.FormValue("description")

	if priceStr := r.FormValue("price"); priceStr != "" {
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return params, er.New(er.InvalidArgumentCode, "invalid price")
		}
		params.Price = price
	}

	if categoryStr := r.FormValue("category"); categoryStr != "" {
		categoryID, err := strconv.ParseUint(categoryStr, 10, 64)
		if err != nil {
			return params, er.New(er.InvalidArgumentCode, "invalid category")
		}
		params.CategoryID = uint(categoryID)
	}

	if quantityStr := r.FormValue("quantity"); quantityStr != "" {
		quantity, err := strconv.Atoi(quantityStr)
		if err != nil {
			return params, er.New(er.InvalidArgumentCode, "invalid quantity")
		}
		params.Quantity = quantity
	}

	if shippingStr := r.FormValue("shipping"); shippingStr != "" {
		shipping, err := strconv.ParseBool(shippingStr)
		if err != nil {
			return params, er.New(er.InvalidArgumentCode, "invalid shipping")
		}
		params.Shipping = shipping
	}

	file, header, err := r.FormFile("photo")
	if err == nil {
		defer file.Close()
		photo, err := io.ReadAll(file)
		if err != nil {
			return params, er.New(er.InternalErrorCode, "failed to read photo")
		}
		params.Photo = photo
		params.PhotoContentType = header.Header.Get("Content-Type")
	}

	return params, nil
}

// @Summary create product
// @Tags product
// @Accept mpfd
// @Produce json
// @Param name formData string true "product name"
// @Param description formData string true "description"
// @Param price formData number true "price"
// @Param category formData int true "category id"
// @Param quantity formData int true "stock quantity"
// @Param shipping formData bool false "shipping available"
// @Param photo formData file false "product photo, max 1mb"
// @Success 200 {object} api.Response{data=dto.ProductDTO} "success"
// @Failure 400 {object} api.Response "InvalidArgumentCode"
// @Failure 500 {object} api.Response "Internal server error"
// @Security     ApiKeyAuth
// @Router /product/create-product [post]
func (p *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	params, err := parseProductForm(r)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	ctx := r.Context()

	product, err := p.productService.CreateProduct(ctx, params)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertProductModelToDTO(product), "product created successfully")
}

// @Summary update product
// @Tags product
// @Accept mpfd
// @Produce json
// @Param id path int true "product id"
// @Success 200 {object} api.Response{data=dto.ProductDTO} "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Failure 500 {object} api.Response "Internal server error"
// @Security     ApiKeyAuth
// @Router /product/update-product/{id} [put]
func (p *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	params, err := parseProductForm(r)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	ctx := r.Context()

	product, err := p.productService.UpdateProduct(ctx, uint(id), params)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertProductModelToDTO(product), "product updated successfully")
}

// @Summary delete product
// @Tags product
// @Produce json
// @Param id path int true "product id"
// @Success 200 {object} api.Response "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Security     ApiKeyAuth
// @Router /product/delete-product/{id} [delete]
func (p *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	if err := p.productService.DeleteProduct(ctx, uint(id)); err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, nil, "product deleted successfully")
}

// @Summary list products, newest first, max 12
// @Tags product
// @Produce json
// @Success 200 {object} api.Response{data=[]dto.ProductDTO} "success"
// @Router /product/get-product [get]
func (p *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := p.productService.GetProducts(ctx)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertProductModelsToDTOs(products), "")
}

// @Summary get single product by slug
// @Tags product
// @Produce json
// @Param slug path string true "product slug"
// @Success 200 {object} api.Response{data=dto.ProductDTO} "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /product/get-product/{slug} [get]
func (p *ProductHandler) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	productSlug := chi.URLParam(r, "slug")
	ctx := r.Context()

	product, err := p.productService.GetProductBySlug(ctx, productSlug)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertProductModelToDTO(product), "")
}

// @Summary get product photo binary
// @Tags product
// @Produce octet-stream
// @Param pid path int true "product id"
// @Success 200 {file} binary "photo bytes with stored content type"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /product/product-photo/{pid} [get]
func (p *ProductHandler) GetProductPhoto(w http.ResponseWriter, r *http.Request) {
	pid, err := strconv.ParseUint(chi.URLParam(r, "pid"), 10, 64)
	if err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	photo, contentType, err := p.productService.GetProductPhoto(ctx, uint(pid))
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	// 原始bytes直接當body回傳
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(photo)
}

// @Summary filter products by categories and price range
// @Tags product
// @Accept json
// @Produce json
// @Param filters body dto.ProductFiltersDTO true "checked category ids and price range"
// @Success 200 {object} api.Response{data=[]dto.ProductDTO} "success"
// @Router /product/product-filters [post]
func (p *ProductHandler) FilterProducts(w http.ResponseWriter, r *http.Request) {
	var filtersDTO dto.ProductFiltersDTO
	if err := json.NewDecoder(r.Body).Decode(&filtersDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	products, err := p.productService.FilterProducts(ctx, db.ProductFilter{
		Categories: filtersDTO.Checked,
		PriceRange: filtersDTO.Radio,
	})
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertProductModelsToDTOs(products), "")
}

// @Summary total product count
// @Tags product
// @Produce json
// @Success 200 {object} api.Response{data=dto.ProductCountResponse} "success"
// @Router /product/product-count [get]
func (p *ProductHandler) CountProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	total, err := p.productService.CountProducts(ctx)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, dto.ProductCountResponse{Total: total}, "")
}

// @Summary paginated product list, 6 per page
// @Tags product
// @Produce json
// @Param page path int true "1-indexed page"
// @Success 200 {object} api.Response{data=[]dto.ProductDTO} "success"
// @Router /product/product-list/{page} [get]
func (p *ProductHandler) GetProductsPaginated(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		page = constants.DefaultPaging
	}

	ctx := r.Context()

	products, err := p.productService.GetProductsPaginated(ctx, page)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertProductModelsToDTOs(products), "")
}

// @Summary keyword substring search on name and description
// @Tags product
// @Produce json
// @Param keyword path string true "search keyword"
// @Success 200 {object} api.Response{data=[]dto.ProductDTO} "success"
// @Router /product/search/{keyword} [get]
func (p *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	keyword := chi.URLParam(r, "keyword")
	ctx := r.Context()

	products, err := p.productService.SearchProducts(ctx, keyword)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertProductModelsToDTOs(products), "")
}

// @Summary related products in same category, max 3
// @Tags product
// @Produce json
// @Param pid path int true "product id to exclude"
// @Param cid path int true "category id"
// @Success 200 {object} api.Response{data=[]dto.ProductDTO} "success"
// @Router /product/related-product/{pid}/{cid} [get]
func (p *ProductHandler) GetRelatedProducts(w http.ResponseWriter, r *http.Request) {
	pid, err := strconv.ParseUint(chi.URLParam(r, "pid"), 10, 64)
	if err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}
	cid, err := strconv.ParseUint(chi.URLParam(r, "cid"), 10, 64)
	if err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	products, err := p.productService.GetRelatedProducts(ctx, uint(pid), uint(cid))
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertProductModelsToDTOs(products), "")
}

// @Summary category and its products by category slug
// @Tags product
// @Produce json
// @Param slug path string true "category slug"
// @Success 200 {object} api.Response{data=dto.ProductCategoryResponse} "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /product/product-category/{slug} [get]
func (p *ProductHandler) GetProductsByCategorySlug(w http.ResponseWriter, r *http.Request) {
	categorySlug := chi.URLParam(r, "slug")
	ctx := r.Context()

	category, products, err := p.productService.GetProductsByCategorySlug(ctx, categorySlug)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, dto.ProductCategoryResponse{
		Category: convertCategoryModelToDTO(category),
		Products: convertProductModelsToDTOs(products),
	}, "")
}
