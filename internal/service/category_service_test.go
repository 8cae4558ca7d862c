package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/util/er"
	"github.com/stretchr/testify/require"
)

func newCategoryService(t *testing.T) (ICategoryService, *db.CategoryRepo) {
	t.Helper()
	dao := newTestDbDao(t)
	categoryRepo := db.NewCategoryRepo(dao)
	return NewCategoryService(categoryRepo), categoryRepo
}

func TestCreateCategory(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	category, created, err := svc.CreateCategory(ctx, "Video Games")
	require.NoError(t, err)
	require.True(t, created)
	require.NotZero(t, category.CategoryID)
	require.Equal(t, "Video Games", category.Name)
	require.Equal(t, "video-games", category.Slug)
}

func TestCreateCategory_EmptyName(t *testing.T) {
	svc, _ := newCategoryService(t)

	_, _, err := svc.CreateCategory(context.Background(), "")
	require.Error(t, err)
	appErr, ok := err.(*er.AppError)
	require.True(t, ok)
	require.Equal(t, er.InvalidArgumentCode, appErr.Code)
}

// 名稱只差大小寫或空白/連字號, 都視為既有分類, 不新增資料
func TestCreateCategory_DuplicateIsIdempotent(t *testing.T) {
	svc, categoryRepo := newCategoryService(t)
	ctx := context.Background()

	original, created, err := svc.CreateCategory(ctx, "Video Games")
	require.NoError(t, err)
	require.True(t, created)

	for _, name := range []string{"Video Games", "VIDEO GAMES", "video games", "Video-Games"} {
		got, created, err := svc.CreateCategory(ctx, name)
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, original.CategoryID, got.CategoryID)
		require.Equal(t, original.Name, got.Name)
	}

	total, err := categoryRepo.CountCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}

func TestUpdateCategory(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	category, _, err := svc.CreateCategory(ctx, "Books")
	require.NoError(t, err)

	updated, err := svc.UpdateCategory(ctx, category.CategoryID, "Used Books")
	require.NoError(t, err)
	require.Equal(t, category.CategoryID, updated.CategoryID)
	require.Equal(t, "Used Books", updated.Name)
	require.Equal(t, "used-books", updated.Slug)
}

func TestUpdateCategory_NotFound(t *testing.T) {
	svc, _ := newCategoryService(t)

	_, err := svc.UpdateCategory(context.Background(), 999, "Books")
	require.Error(t, err)
	appErr, ok := err.(*er.AppError)
	require.True(t, ok)
	require.Equal(t, er.NotFoundCode, appErr.Code)
}

func TestUpdateCategory_SlugConflict(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	_, _, err := svc.CreateCategory(ctx, "Books")
	require.NoError(t, err)
	other, _, err := svc.CreateCategory(ctx, "Movies")
	require.NoError(t, err)

	_, err = svc.UpdateCategory(ctx, other.CategoryID, "books")
	require.Error(t, err)
	appErr, ok := err.(*er.AppError)
	require.True(t, ok)
	require.Equal(t, er.ConflictCode, appErr.Code)
}

// 更新成自己原本的名稱不算衝突
func TestUpdateCategory_SameName(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	category, _, err := svc.CreateCategory(ctx, "Books")
	require.NoError(t, err)

	updated, err := svc.UpdateCategory(ctx, category.CategoryID, "Books")
	require.NoError(t, err)
	require.Equal(t, category.CategoryID, updated.CategoryID)
}

func TestDeleteCategory(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	category, _, err := svc.CreateCategory(ctx, "Books")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, category.CategoryID))

	// 重複刪除回報NotFound
	err = svc.DeleteCategory(ctx, category.CategoryID)
	require.Error(t, err)
	appErr, ok := err.(*er.AppError)
	require.True(t, ok)
	require.Equal(t, er.NotFoundCode, appErr.Code)
}

func TestGetAllCategories(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	for _, name := range []string{"Books", "Movies", "Music"} {
		_, _, err := svc.CreateCategory(ctx, name)
		require.NoError(t, err)
	}

	categories, err := svc.GetAllCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
}

func TestGetCategoryBySlug(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	_, _, err := svc.CreateCategory(ctx, "Video Games")
	require.NoError(t, err)

	category, err := svc.GetCategoryBySlug(ctx, "video-games")
	require.NoError(t, err)
	require.Equal(t, "Video Games", category.Name)

	_, err = svc.GetCategoryBySlug(ctx, "no-such-category")
	require.Error(t, err)
	appErr, ok := err.(*er.AppError)
	require.True(t, ok)
	require.Equal(t, er.NotFoundCode, appErr.Code)
}
