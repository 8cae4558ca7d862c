package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/internal/util/er"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api"
	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	categoryService service.ICategoryService
}

func NewCategoryHandler(categoryService service.ICategoryService) *CategoryHandler {
	if categoryService == nil {
		panic("categoryService cannot be nil")
	}
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

func convertCategoryModelToDTO(category *model.Category) dto.CategoryDTO {
	return dto.CategoryDTO{
		ID:   category.CategoryID,
		Name: category.Name,
		Slug: category.Slug,
	}
}

// @Summary create category
// @Tags category
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryDTO true "category name"
// @Success 200 {object} api.Response{data=dto.CategoryDTO} "success"
// @Failure 400 {object} api.Response "InvalidArgumentCode"
// @Failure 500 {object} api.Response "Internal server error"
// @Security     ApiKeyAuth
// @Router /category/create-category [post]
func (c *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var createCategoryDTO dto.CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&createCategoryDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	category, created, err := c.categoryService.CreateCategory(ctx, createCategoryDTO.Name)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	// 同名分類重複建立視為冪等成功, 不新增資料
	if !created {
		api.SuccessJSON(w, convertCategoryModelToDTO(category), "category already exist")
		return
	}

	api.SuccessJSON(w, convertCategoryModelToDTO(category), "new category created")
}

// @Summary update category name and slug
// @Tags category
// @Accept json
// @Produce json
// @Param id path int true "category id"
// @Param category body dto.UpdateCategoryDTO true "new category name"
// @Success 200 {object} api.Response{data=dto.CategoryDTO} "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Failure 409 {object} api.Response "ConflictCode"
// @Failure 500 {object} api.Response "Internal server error"
// @Security     ApiKeyAuth
// @Router /category/update-category/{id} [put]
func (c *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	var updateCategoryDTO dto.UpdateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&updateCategoryDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	category, err := c.categoryService.UpdateCategory(ctx, uint(id), updateCategoryDTO.Name)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertCategoryModelToDTO(category), "category updated successfully")
}

// @Summary delete category
// @Tags category
// @Produce json
// @Param id path int true "category id"
// @Success 200 {object} api.Response "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Failure 500 {object} api.Response "Internal server error"
// @Security     ApiKeyAuth
// @Router /category/delete-category/{id} [delete]
func (c *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	if err := c.categoryService.DeleteCategory(ctx, uint(id)); err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, nil, "category deleted successfully")
}

// @Summary list all categories
// @Tags category
// @Produce json
// @Success 200 {object} api.Response{data=[]dto.CategoryDTO} "success"
// @Failure 500 {object} api.Response "Internal server error"
// @Router /category/get-category [get]
func (c *CategoryHandler) GetAllCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := c.categoryService.GetAllCategories(ctx)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	categoryDTOs := make([]dto.CategoryDTO, 0, len(categories))
	for i := range categories {
		categoryDTOs = append(categoryDTOs, convertCategoryModelToDTO(&categories[i]))
	}

	api.SuccessJSON(w, categoryDTOs, "")
}

// @Summary get single category by slug
// @Tags category
// @Produce json
// @Param slug path string true "category slug"
// @Success 200 {object} api.Response{data=dto.CategoryDTO} "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Failure 500 {object} api.Response "Internal server error"
// @Router /category/single-category/{slug} [get]
func (c *CategoryHandler) GetCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	categorySlug := chi.URLParam(r, "slug")
	ctx := r.Context()

	category, err := c.categoryService.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertCategoryModelToDTO(category), "")
}
