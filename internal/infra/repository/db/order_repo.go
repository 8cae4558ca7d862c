package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInsufficientStock 交易內扣庫存時條件不成立 (庫存已被其他訂單消耗)
var ErrInsufficientStock = errors.New("insufficient stock")

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create - 創建訂單, 訂單與明細+扣庫存包在同一交易
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for _, item := range order.OrderItems {
			result := tx.Model(&model.Product{}).
				Where("product_id = ? AND quantity >= ?", item.ProductID, item.Quantity).
				Update("quantity", gorm.Expr("quantity - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			// 條件沒命中代表庫存不足, 整筆交易回滾
			if result.RowsAffected == 0 {
				return fmt.Errorf("product %d: %w", item.ProductID, ErrInsufficientStock)
			}
		}
		return nil
	})
}

// Read - 根據ID查詢訂單
func (s *OrderRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems").
		Preload("Buyer").
		Where("order_id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Read - 根據冪等鍵查詢訂單, 重送付款請求時使用
func (s *OrderRepo) GetOrderByIdempotencyKey(ctx context.Context, key string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems").
		Where("idempotency_key = ?", key).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Read - 買家訂單
func (s *OrderRepo) GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems").
		Preload("Buyer").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// Read - 查詢所有訂單, 最新優先
func (s *OrderRepo) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems").
		Preload("Buyer").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// Update - 更新訂單狀態
func (s *OrderRepo) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", id).
		Update("status", status).Error
}

// 訂單總數
func (s *OrderRepo) CountOrders(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Order{}).Count(&total).Error
	return total, err
}
