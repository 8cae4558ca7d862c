package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/util/er"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newOrderService(t *testing.T) (IOrderService, *db.OrderRepo, *db.UserRepo, *db.ProductRepo, *db.CategoryRepo) {
	t.Helper()
	dao := newTestDbDao(t)
	orderRepo := db.NewOrderRepo(dao)
	userRepo := db.NewUserRepo(dao)
	productRepo := db.NewProductRepo(dao)
	categoryRepo := db.NewCategoryRepo(dao)
	return NewOrderService(orderRepo, nil), orderRepo, userRepo, productRepo, categoryRepo
}

func createTestOrder(t *testing.T, orderRepo *db.OrderRepo, userID uuid.UUID, product *model.Product, quantity int) *model.Order {
	t.Helper()

	order := &model.Order{
		OrderID:        uuid.New(),
		UserID:         userID,
		Amount:         product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		IdempotencyKey: uuid.NewString(),
		OrderItems: []model.OrderItem{
			{
				ProductID:   product.ProductID,
				ProductName: product.Name,
				Price:       product.Price,
				Quantity:    quantity,
			},
		},
	}
	order.OrderItems[0].OrderID = order.OrderID
	require.NoError(t, orderRepo.CreateOrder(context.Background(), order))
	return order
}

// Status未指定時由db default補上Not Processed
func TestCreateOrder_DefaultStatus(t *testing.T) {
	_, orderRepo, userRepo, productRepo, categoryRepo := newOrderService(t)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "buyer@example.com", false)
	category := createTestCategory(t, categoryRepo, "Electronics")
	product := createTestProduct(t, productRepo, category.CategoryID, "Keyboard", "29.99", 10)

	order := createTestOrder(t, orderRepo, user.UserID, product, 2)

	stored, err := orderRepo.GetOrderByID(ctx, order.OrderID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, model.OrderStatusNotProcessed, stored.Status)
}

// 下單交易內扣庫存
func TestCreateOrder_ReducesStock(t *testing.T) {
	_, orderRepo, userRepo, productRepo, categoryRepo := newOrderService(t)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "buyer@example.com", false)
	category := createTestCategory(t, categoryRepo, "Electronics")
	product := createTestProduct(t, productRepo, category.CategoryID, "Keyboard", "29.99", 10)

	createTestOrder(t, orderRepo, user.UserID, product, 3)

	stored, err := productRepo.GetProductByID(ctx, product.ProductID)
	require.NoError(t, err)
	require.Equal(t, 7, stored.Quantity)
}

// 庫存不足時整筆交易回滾, 不能成立扣不到庫存的訂單
func TestCreateOrder_InsufficientStockRollsBack(t *testing.T) {
	_, orderRepo, userRepo, productRepo, categoryRepo := newOrderService(t)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "buyer@example.com", false)
	category := createTestCategory(t, categoryRepo, "Electronics")
	product := createTestProduct(t, productRepo, category.CategoryID, "Keyboard", "29.99", 1)

	order := &model.Order{
		OrderID:        uuid.New(),
		UserID:         user.UserID,
		Amount:         product.Price.Mul(decimal.NewFromInt(2)),
		IdempotencyKey: uuid.NewString(),
		OrderItems: []model.OrderItem{
			{
				ProductID:   product.ProductID,
				ProductName: product.Name,
				Price:       product.Price,
				Quantity:    2,
			},
		},
	}
	order.OrderItems[0].OrderID = order.OrderID

	err := orderRepo.CreateOrder(ctx, order)
	require.ErrorIs(t, err, db.ErrInsufficientStock)

	stored, err := orderRepo.GetOrderByID(ctx, order.OrderID)
	require.NoError(t, err)
	require.Nil(t, stored)

	remaining, err := productRepo.GetProductByID(ctx, product.ProductID)
	require.NoError(t, err)
	require.Equal(t, 1, remaining.Quantity)
}

func TestGetBuyerOrders(t *testing.T) {
	svc, orderRepo, userRepo, productRepo, categoryRepo := newOrderService(t)
	ctx := context.Background()

	buyer := createTestUser(t, userRepo, "buyer@example.com", false)
	other := createTestUser(t, userRepo, "other@example.com", false)
	category := createTestCategory(t, categoryRepo, "Electronics")
	product := createTestProduct(t, productRepo, category.CategoryID, "Keyboard", "29.99", 100)

	createTestOrder(t, orderRepo, buyer.UserID, product, 1)
	createTestOrder(t, orderRepo, buyer.UserID, product, 2)
	createTestOrder(t, orderRepo, other.UserID, product, 3)

	orders, err := svc.GetBuyerOrders(ctx, buyer.UserID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, order := range orders {
		require.Equal(t, buyer.UserID, order.UserID)
		require.NotEmpty(t, order.OrderItems)
		require.NotNil(t, order.Buyer)
		require.Equal(t, buyer.Name, order.Buyer.Name)
	}
}

func TestGetAllOrders(t *testing.T) {
	svc, orderRepo, userRepo, productRepo, categoryRepo := newOrderService(t)
	ctx := context.Background()

	buyer := createTestUser(t, userRepo, "buyer@example.com", false)
	other := createTestUser(t, userRepo, "other@example.com", false)
	category := createTestCategory(t, categoryRepo, "Electronics")
	product := createTestProduct(t, productRepo, category.CategoryID, "Keyboard", "29.99", 100)

	createTestOrder(t, orderRepo, buyer.UserID, product, 1)
	createTestOrder(t, orderRepo, other.UserID, product, 2)

	orders, err := svc.GetAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, orderRepo, userRepo, productRepo, categoryRepo := newOrderService(t)
	ctx := context.Background()

	buyer := createTestUser(t, userRepo, "buyer@example.com", false)
	category := createTestCategory(t, categoryRepo, "Electronics")
	product := createTestProduct(t, productRepo, category.CategoryID, "Keyboard", "29.99", 100)
	order := createTestOrder(t, orderRepo, buyer.UserID, product, 1)

	updated, err := svc.UpdateOrderStatus(ctx, order.OrderID, "Shipped")
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusShipped, updated.Status)

	stored, err := orderRepo.GetOrderByID(ctx, order.OrderID)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusShipped, stored.Status)
}

// 狀態只驗證enum成員, 任意合法狀態間都可轉移
func TestUpdateOrderStatus_AnyTransition(t *testing.T) {
	svc, orderRepo, userRepo, productRepo, categoryRepo := newOrderService(t)
	ctx := context.Background()

	buyer := createTestUser(t, userRepo, "buyer@example.com", false)
	category := createTestCategory(t, categoryRepo, "Electronics")
	product := createTestProduct(t, productRepo, category.CategoryID, "Keyboard", "29.99", 100)
	order := createTestOrder(t, orderRepo, buyer.UserID, product, 1)

	for _, status := range []string{"Delivered", "Cancelled", "Processing", "Not Processed"} {
		updated, err := svc.UpdateOrderStatus(ctx, order.OrderID, status)
		require.NoError(t, err)
		require.Equal(t, model.OrderStatus(status), updated.Status)
	}
}

func TestUpdateOrderStatus_InvalidStatus(t *testing.T) {
	svc, orderRepo, userRepo, productRepo, categoryRepo := newOrderService(t)
	ctx := context.Background()

	buyer := createTestUser(t, userRepo, "buyer@example.com", false)
	category := createTestCategory(t, categoryRepo, "Electronics")
	product := createTestProduct(t, productRepo, category.CategoryID, "Keyboard", "29.99", 100)
	order := createTestOrder(t, orderRepo, buyer.UserID, product, 1)

	_, err := svc.UpdateOrderStatus(ctx, order.OrderID, "banana")
	require.Error(t, err)
	appErr, ok := err.(*er.AppError)
	require.True(t, ok)
	require.Equal(t, er.InvalidArgumentCode, appErr.Code)

	// 訂單不受影響
	stored, err := orderRepo.GetOrderByID(ctx, order.OrderID)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusNotProcessed, stored.Status)
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	svc, _, _, _, _ := newOrderService(t)

	_, err := svc.UpdateOrderStatus(context.Background(), uuid.New(), "Shipped")
	require.Error(t, err)
	appErr, ok := err.(*er.AppError)
	require.True(t, ok)
	require.Equal(t, er.NotFoundCode, appErr.Code)
}
