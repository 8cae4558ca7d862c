package redis_repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/cache"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/google/uuid"
)

var ErrCartNotFound = fmt.Errorf("cart not found")

// 購物車只會寫入到redis, 不會寫入到db, 所有購物車資料都要去redis取
type CartRepo struct {
	CartCache cache.Cache
}

func NewCartRepo(cartCache cache.Cache) *CartRepo {
	return &CartRepo{CartCache: cartCache}
}

func cartKey(userID uuid.UUID) string {
	return fmt.Sprintf("cart:%s", userID)
}

// 創建or全量替換購物車
func (s *CartRepo) SaveCart(ctx context.Context, userID uuid.UUID, cart model.Cart) (uuid.UUID, error) {
	if cart.CartID == uuid.Nil {
		cart.CartID = uuid.New()
	}
	cart.UserID = userID
	cartJSON, err := json.Marshal(cart)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("序列化購物車失敗: %v", err)
	}

	err = s.CartCache.Set(ctx, cartKey(userID), cartJSON, 24*time.Hour)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("保存購物車失敗: %v", err)
	}
	return cart.CartID, nil
}

// 取得購物車
func (s *CartRepo) GetCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	exists, err := s.CartCache.Exists(ctx, cartKey(userID))
	if err != nil {
		return nil, fmt.Errorf("獲取購物車失敗: %v", err)
	}
	if !exists {
		return nil, ErrCartNotFound
	}

	cartJSON, err := s.CartCache.Get(ctx, cartKey(userID))
	if err != nil {
		return nil, fmt.Errorf("獲取購物車失敗: %v", err)
	}
	var cart model.Cart
	cartJSONStr, ok := cartJSON.(string)
	if !ok {
		return nil, fmt.Errorf("購物車資料格式錯誤")
	}
	err = json.Unmarshal([]byte(cartJSONStr), &cart)
	if err != nil {
		return nil, fmt.Errorf("反序列化購物車失敗: %v", err)
	}

	return &cart, nil
}

// 刪除購物車
func (s *CartRepo) DeleteCart(ctx context.Context, userID uuid.UUID) error {
	return s.CartCache.Delete(ctx, cartKey(userID))
}
