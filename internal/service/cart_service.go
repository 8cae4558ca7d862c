package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shopcenter/internal/util/er"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ICartService interface {
	// GetCart 取得購物車, 不存在時回傳空購物車
	GetCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
	// UpdateCart 全量替換購物車內容, 金額依當前catalog價格重算
	//
	// 錯誤:
	//   - er.InvalidArgumentCode: 數量非正數
	//   - er.NotFoundCode: 商品不存在
	UpdateCart(ctx context.Context, userID uuid.UUID, items []model.CartItem) (*model.Cart, error)
	// ClearCart 清空購物車
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type CartService struct {
	cartRepo    *redis_repo.CartRepo
	productRepo *db.ProductRepo
}

func NewCartService(cartRepo *redis_repo.CartRepo, productRepo *db.ProductRepo) ICartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (c *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	cart, err := c.cartRepo.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, redis_repo.ErrCartNotFound) {
			return &model.Cart{
				UserID:    userID,
				CartItems: []model.CartItem{},
				Amount:    decimal.Zero,
			}, nil
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return cart, nil
}

func (c *CartService) UpdateCart(ctx context.Context, userID uuid.UUID, items []model.CartItem) (*model.Cart, error) {
	amount := decimal.Zero
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
		amount = amount.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	cart := model.Cart{
		UserID:    userID,
		CartItems: items,
		Amount:    amount,
	}
	cartID, err := c.cartRepo.SaveCart(ctx, userID, cart)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	cart.CartID = cartID
	return &cart, nil
}

func (c *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if err := c.cartRepo.DeleteCart(ctx, userID); err != nil {
		return er.New(er.InternalErrorCode, err.Error())
	}
	return nil
}
