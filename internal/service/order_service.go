package service

import (
	"context"
	"log"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/producer"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/util/er"
	"github.com/google/uuid"
)

type IOrderService interface {
	// GetBuyerOrders 買家自己的訂單, 含明細與買家資訊
	GetBuyerOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	// GetAllOrders 所有訂單, 最新優先 (admin)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	// UpdateOrderStatus 變更訂單狀態
	// 只驗證enum成員, 不限制轉移順序; Delivered/Cancelled非終態
	//
	// 錯誤:
	//   - er.InvalidArgumentCode: 非法狀態值, 訂單不變
	//   - er.NotFoundCode: 訂單不存在
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) (*model.Order, error)
}

type OrderService struct {
	orderRepo     *db.OrderRepo
	orderProducer *producer.OrderProducer
}

// orderProducer可為nil, 此時不發送事件
func NewOrderService(orderRepo *db.OrderRepo, orderProducer *producer.OrderProducer) IOrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		orderProducer: orderProducer,
	}
}

func (o *OrderService) GetBuyerOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := o.orderRepo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return orders, nil
}

func (o *OrderService) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := o.orderRepo.GetAllOrders(ctx)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return orders, nil
}

func (o *OrderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) (*model.Order, error) {
	if !model.IsValidOrderStatus(status) {
		return nil, er.Newf(er.InvalidArgumentCode, "invalid order status: %s", status)
	}

	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if order == nil {
		return nil, er.New(er.NotFoundCode, "order not found")
	}

	if err := o.orderRepo.UpdateOrderStatus(ctx, orderID, model.OrderStatus(status)); err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	order.Status = model.OrderStatus(status)

	// 事件發送失敗不影響本次請求
	if o.orderProducer != nil {
		if err := o.orderProducer.OrderStatusChanged(ctx, order); err != nil {
			log.Printf("failed to publish order status changed event: %v", err)
		}
	}

	return order, nil
}
