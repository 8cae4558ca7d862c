package service

import (
	"context"
	"errors"
	"log"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/payment"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/producer"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/util/er"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ICheckoutService interface {
	// ClientToken 取得付款閘道client token
	ClientToken(ctx context.Context) (string, error)
	// Payment 結帳: 驗證明細 -> 冪等檢查 -> 扣款 -> 落單 -> 發事件 -> 清購物車
	// 同一idempotencyKey重送時直接回傳已存在的訂單, 不重複扣款
	//
	// 錯誤:
	//   - er.InvalidArgumentCode: 明細為空, 數量非正數或缺少冪等鍵
	//   - er.NotFoundCode: 商品不存在
	//   - er.ConflictCode: 庫存不足
	//   - er.PaymentFailedCode: 閘道扣款失敗, 不落單
	Payment(ctx context.Context, userID uuid.UUID, nonce string, items []model.CartItem, idempotencyKey string) (*model.Order, error)
}

type CheckoutService struct {
	orderRepo     *db.OrderRepo
	productRepo   *db.ProductRepo
	cartService   ICartService
	gateway       payment.Gateway
	orderProducer *producer.OrderProducer
}

// orderProducer可為nil, 此時不發送事件
func NewCheckoutService(
	orderRepo *db.OrderRepo,
	productRepo *db.ProductRepo,
	cartService ICartService,
	gateway payment.Gateway,
	orderProducer *producer.OrderProducer,
) ICheckoutService {
	return &CheckoutService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		cartService:   cartService,
		gateway:       gateway,
		orderProducer: orderProducer,
	}
}

func (c *CheckoutService) ClientToken(ctx context.Context) (string, error) {
	clientToken, err := c.gateway.GenerateClientToken(ctx)
	if err != nil {
		return "", er.New(er.InternalErrorCode, err.Error())
	}
	return clientToken, nil
}

func (c *CheckoutService) Payment(ctx context.Context, userID uuid.UUID, nonce string, items []model.CartItem, idempotencyKey string) (*model.Order, error) {
	if len(items) == 0 {
		return nil, er.New(er.InvalidArgumentCode, "cart is empty")
	}
	if idempotencyKey == "" {
		return nil, er.New(er.InvalidArgumentCode, "idempotency key is required")
	}

	// 重送的付款請求不能再扣一次款
	existing, err := c.orderRepo.GetOrderByIdempotencyKey(ctx, idempotencyKey)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if existing != nil {
		return existing, nil
	}

	amount := decimal.Zero
	orderItems := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, er.New(er.InvalidArgumentCode, "quantity must be positive")
		}
		product, err := c.productRepo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			return nil, er.New(er.InternalErrorCode, err.Error())
		}
		if product == nil {
			return nil, er.Newf(er.NotFoundCode, "product %d not found", item.ProductID)
		}
		if product.Quantity < item.Quantity {
			return nil, er.Newf(er.ConflictCode, "insufficient stock for product %s", product.Name)
		}

		amount = amount.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		// 下單當下的價格與名稱快照
		orderItems = append(orderItems, model.OrderItem{
			ProductID:   product.ProductID,
			ProductName: product.Name,
			Price:       product.Price,
			Quantity:    item.Quantity,
		})
	}

	chargeResult, err := c.gateway.Charge(ctx, nonce, amount)
	if err != nil {
		return nil, er.New(er.PaymentFailedCode, err.Error())
	}

	order := &model.Order{
		OrderID:        uuid.New(),
		UserID:         userID,
		Amount:         amount,
		IdempotencyKey: idempotencyKey,
		TransactionID:  chargeResult.TransactionID,
		PaymentStatus:  chargeResult.Status,
		PaymentSuccess: chargeResult.Success,
		OrderItems:     orderItems,
	}
	for i := range order.OrderItems {
		order.OrderItems[i].OrderID = order.OrderID
	}

	if err := c.orderRepo.CreateOrder(ctx, order); err != nil {
		// 預檢查之後庫存仍可能被並發訂單消耗, 以交易內的守衛為準
		if errors.Is(err, db.ErrInsufficientStock) {
			return nil, er.New(er.ConflictCode, "insufficient stock")
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	order.Status = model.OrderStatusNotProcessed

	// 事件與購物車清空都是best effort, 失敗不影響已成立的訂單
	if c.orderProducer != nil {
		if err := c.orderProducer.OrderCreated(ctx, order); err != nil {
			log.Printf("failed to publish order created event: %v", err)
		}
	}
	if c.cartService != nil {
		if err := c.cartService.ClearCart(ctx, userID); err != nil {
			log.Printf("failed to clear cart after checkout: %v", err)
		}
	}

	return order, nil
}
