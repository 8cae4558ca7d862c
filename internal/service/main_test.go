package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/payment"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 每個測試使用獨立的in-memory db
func newTestDbDao(t *testing.T) *db.DbDao {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	dao := db.NewDbDao(conn)
	require.NoError(t, dao.InitMigrate())
	return dao
}

func createTestCategory(t *testing.T, categoryRepo *db.CategoryRepo, name string) *model.Category {
	t.Helper()

	category := &model.Category{
		Name: name,
		Slug: slug.Make(name),
	}
	require.NoError(t, categoryRepo.CreateCategory(context.Background(), category))
	require.NotZero(t, category.CategoryID)
	return category
}

func createTestProduct(t *testing.T, productRepo *db.ProductRepo, categoryID uint, name string, price string, quantity int) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:        name,
		Slug:        slug.Make(name),
		Description: fmt.Sprintf("%s description", name),
		Price:       decimal.RequireFromString(price),
		CategoryID:  categoryID,
		Quantity:    quantity,
	}
	require.NoError(t, productRepo.CreateProduct(context.Background(), product))
	require.NotZero(t, product.ProductID)
	return product
}

func createTestUser(t *testing.T, userRepo *db.UserRepo, email string, isAdmin bool) *model.User {
	t.Helper()

	user := &model.User{
		UserID:         uuid.New(),
		Name:           "tester",
		Email:          email,
		PasswordHash:   "hashed",
		Phone:          "0912345678",
		Address:        "somewhere",
		SecurityAnswer: "blue",
		IsAdmin:        isAdmin,
	}
	require.NoError(t, userRepo.CreateUser(context.Background(), user))
	return user
}

// fakeCache 實作cache.Cache, 測試用
type fakeCache struct {
	mu    sync.RWMutex
	items map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string]string)}
}

func (f *fakeCache) Ping(ctx context.Context) (string, error) {
	return "PONG", nil
}

func (f *fakeCache) Get(ctx context.Context, key string) (any, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.items[key]
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	return v, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		f.items[key] = string(v)
	case string:
		f.items[key] = v
	default:
		f.items[key] = fmt.Sprintf("%v", v)
	}
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, key)
	return nil
}

func (f *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.items[key]
	return ok, nil
}

// stubGateway 實作payment.Gateway, 可指定扣款結果
type stubGateway struct {
	chargeErr   error
	chargeCount int
	// chargeHook 在扣款當下執行, 用來模擬結帳途中發生的並發變動
	chargeHook func()
}

func (s *stubGateway) GenerateClientToken(ctx context.Context) (string, error) {
	return "stub-client-token", nil
}

func (s *stubGateway) Charge(ctx context.Context, nonce string, amount decimal.Decimal) (*payment.ChargeResult, error) {
	s.chargeCount++
	if s.chargeHook != nil {
		s.chargeHook()
	}
	if s.chargeErr != nil {
		return nil, s.chargeErr
	}
	return &payment.ChargeResult{
		TransactionID: fmt.Sprintf("txn-%d", s.chargeCount),
		Status:        "submitted_for_settlement",
		Success:       true,
	}, nil
}
