package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/api"
	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/api/handler"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/payment"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/internal/token"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type memCache struct {
	mu    sync.RWMutex
	items map[string]string
}

func (m *memCache) Ping(ctx context.Context) (string, error) { return "PONG", nil }

func (m *memCache) Get(ctx context.Context, key string) (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	return v, nil
}

func (m *memCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := value.([]byte); ok {
		m.items[key] = string(b)
	} else {
		m.items[key] = fmt.Sprintf("%v", value)
	}
	return nil
}

func (m *memCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *memCache) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[key]
	return ok, nil
}

type okGateway struct{}

func (okGateway) GenerateClientToken(ctx context.Context) (string, error) {
	return "test-client-token", nil
}

func (okGateway) Charge(ctx context.Context, nonce string, amount decimal.Decimal) (*payment.ChargeResult, error) {
	return &payment.ChargeResult{TransactionID: "txn-1", Status: "settled", Success: true}, nil
}

type testEnv struct {
	router     *chi.Mux
	tokenMaker token.Maker
	userRepo   *db.UserRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	dao := db.NewDbDao(conn)
	require.NoError(t, dao.InitMigrate())

	userRepo := db.NewUserRepo(dao)
	categoryRepo := db.NewCategoryRepo(dao)
	productRepo := db.NewProductRepo(dao)
	orderRepo := db.NewOrderRepo(dao)
	cartRepo := redis_repo.NewCartRepo(&memCache{items: make(map[string]string)})

	tokenMaker, err := token.NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userService, tokenMaker)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, nil)
	checkoutService := service.NewCheckoutService(orderRepo, productRepo, cartService, okGateway{}, nil)

	server := api.NewServer(
		handler.NewAuthHandler(authService, userService),
		handler.NewCategoryHandler(categoryService),
		handler.NewProductHandler(productService),
		handler.NewOrderHandler(orderService),
		handler.NewCartHandler(cartService),
		handler.NewCheckoutHandler(checkoutService),
	)

	testLogger := zerolog.Nop()
	return &testEnv{
		router:     SetupRouter(server, tokenMaker, userService, &testLogger),
		tokenMaker: tokenMaker,
		userRepo:   userRepo,
	}
}

func (e *testEnv) tokenFor(t *testing.T, isAdmin bool) string {
	t.Helper()

	user := &model.User{
		UserID:       uuid.New(),
		Name:         "tester",
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()),
		PasswordHash: "x",
		IsAdmin:      isAdmin,
	}
	require.NoError(t, e.userRepo.CreateUser(context.Background(), user))

	accessToken, _, err := e.tokenMaker.CreateToken(user.UserID, user.Email, isAdmin, time.Hour)
	require.NoError(t, err)
	return accessToken
}

func (e *testEnv) do(t *testing.T, method, path, accessToken string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("authorization", fmt.Sprintf("Bearer %s", accessToken))
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) (bool, string, json.RawMessage) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Success, envelope.Message, envelope.Data
}

func TestRegisterAndLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	register := dto.RegisterDTO{
		Name:     "tester",
		Email:    "tester@example.com",
		Password: "secret123",
		Phone:    "0912345678",
		Address:  "somewhere",
		Answer:   "blue",
	}

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", register)
	require.Equal(t, http.StatusOK, rec.Code)
	success, message, _ := decodeResponse(t, rec)
	require.True(t, success)
	require.Equal(t, "user registered successfully", message)

	// 重複註冊仍回200
	rec = env.do(t, http.MethodPost, "/api/v1/auth/register", "", register)
	require.Equal(t, http.StatusOK, rec.Code)
	_, message, _ = decodeResponse(t, rec)
	require.Equal(t, "already registered, please login", message)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginDTO{
		Email:    register.Email,
		Password: register.Password,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	_, _, data := decodeResponse(t, rec)

	var loginResp dto.LoginResponse
	require.NoError(t, json.Unmarshal(data, &loginResp))
	require.NotEmpty(t, loginResp.AccessToken.Value)
	require.Equal(t, register.Email, loginResp.User.Email)

	// 登入token可通過/me
	rec = env.do(t, http.MethodGet, "/api/v1/auth/me", loginResp.AccessToken.Value, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthProbes(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.tokenFor(t, false)
	adminToken := env.tokenFor(t, true)

	require.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/v1/auth/user-auth", "", nil).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/v1/auth/user-auth", userToken, nil).Code)

	require.Equal(t, http.StatusForbidden, env.do(t, http.MethodGet, "/api/v1/auth/admin-auth", userToken, nil).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/v1/auth/admin-auth", adminToken, nil).Code)
}

func TestCategoryRoutes(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.tokenFor(t, false)
	adminToken := env.tokenFor(t, true)

	create := dto.CreateCategoryDTO{Name: "Video Games"}

	// 分類異動只有admin能做
	require.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, "/api/v1/category/create-category", "", create).Code)
	require.Equal(t, http.StatusForbidden, env.do(t, http.MethodPost, "/api/v1/category/create-category", userToken, create).Code)

	rec := env.do(t, http.MethodPost, "/api/v1/category/create-category", adminToken, create)
	require.Equal(t, http.StatusOK, rec.Code)
	success, message, _ := decodeResponse(t, rec)
	require.True(t, success)
	require.Equal(t, "new category created", message)

	// 重複名稱回200與already exist訊息
	rec = env.do(t, http.MethodPost, "/api/v1/category/create-category", adminToken, dto.CreateCategoryDTO{Name: "video games"})
	require.Equal(t, http.StatusOK, rec.Code)
	_, message, _ = decodeResponse(t, rec)
	require.Equal(t, "category already exist", message)

	// 讀取不需要登入
	rec = env.do(t, http.MethodGet, "/api/v1/category/get-category", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, _, data := decodeResponse(t, rec)
	var categories []dto.CategoryDTO
	require.NoError(t, json.Unmarshal(data, &categories))
	require.Len(t, categories, 1)

	rec = env.do(t, http.MethodGet, "/api/v1/category/single-category/video-games", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/v1/category/single-category/none", "", nil).Code)
}

func multipartProduct(t *testing.T, fields map[string]string, photo []byte, photoType string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if photo != nil {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="photo"; filename="photo.bin"`)
		h.Set("Content-Type", photoType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestProductRoutes(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.tokenFor(t, true)

	rec := env.do(t, http.MethodPost, "/api/v1/category/create-category", adminToken, dto.CreateCategoryDTO{Name: "Electronics"})
	require.Equal(t, http.StatusOK, rec.Code)
	_, _, data := decodeResponse(t, rec)
	var category dto.CategoryDTO
	require.NoError(t, json.Unmarshal(data, &category))

	photo := bytes.Repeat([]byte{0xaa}, 256)
	body, contentType := multipartProduct(t, map[string]string{
		"name":        "USB Keyboard",
		"description": "a keyboard",
		"price":       "29.99",
		"category":    fmt.Sprintf("%d", category.ID),
		"quantity":    "10",
		"shipping":    "true",
	}, photo, "image/png")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/product/create-product", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("authorization", fmt.Sprintf("Bearer %s", adminToken))
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	_, _, data = decodeResponse(t, rec)
	var product dto.ProductDTO
	require.NoError(t, json.Unmarshal(data, &product))
	require.Equal(t, "usb-keyboard", product.Slug)
	require.True(t, product.HasPhoto)

	// 單一商品查詢
	rec = env.do(t, http.MethodGet, "/api/v1/product/get-product/usb-keyboard", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// photo原樣回傳
	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/product/product-photo/%d", product.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.Equal(t, photo, rec.Body.Bytes())

	// 搜尋
	rec = env.do(t, http.MethodGet, "/api/v1/product/search/keyboard", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, _, data = decodeResponse(t, rec)
	var results []dto.ProductDTO
	require.NoError(t, json.Unmarshal(data, &results))
	require.Len(t, results, 1)

	// filter
	rec = env.do(t, http.MethodPost, "/api/v1/product/product-filters", "", dto.ProductFiltersDTO{
		Checked: []uint{category.ID},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// 未知商品404
	require.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/v1/product/get-product/none", "", nil).Code)
}

func TestCartAndCheckoutRoutes(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.tokenFor(t, true)
	userToken := env.tokenFor(t, false)

	rec := env.do(t, http.MethodPost, "/api/v1/category/create-category", adminToken, dto.CreateCategoryDTO{Name: "Electronics"})
	_, _, data := decodeResponse(t, rec)
	var category dto.CategoryDTO
	require.NoError(t, json.Unmarshal(data, &category))

	body, contentType := multipartProduct(t, map[string]string{
		"name":        "USB Keyboard",
		"description": "a keyboard",
		"price":       "29.99",
		"category":    fmt.Sprintf("%d", category.ID),
		"quantity":    "10",
	}, nil, "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/product/create-product", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("authorization", fmt.Sprintf("Bearer %s", adminToken))
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	_, _, data = decodeResponse(t, rec)
	var product dto.ProductDTO
	require.NoError(t, json.Unmarshal(data, &product))

	// 購物車需要登入
	require.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/v1/cart/", "", nil).Code)

	rec = env.do(t, http.MethodPut, "/api/v1/cart/", userToken, dto.UpdateCartDTO{
		Items: []dto.CartItemDTO{{ProductID: product.ID, Quantity: 2}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	_, _, data = decodeResponse(t, rec)
	var cart dto.CartDTO
	require.NoError(t, json.Unmarshal(data, &cart))
	require.Len(t, cart.Items, 1)
	require.True(t, cart.Amount.Equal(decimal.RequireFromString("59.98")))

	// braintree token不需要登入
	rec = env.do(t, http.MethodGet, "/api/v1/product/braintree/token", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, _, data = decodeResponse(t, rec)
	var tokenResp dto.ClientTokenResponse
	require.NoError(t, json.Unmarshal(data, &tokenResp))
	require.Equal(t, "test-client-token", tokenResp.ClientToken)

	// 結帳
	rec = env.do(t, http.MethodPost, "/api/v1/product/braintree/payment", userToken, dto.PaymentDTO{
		Nonce:          "fake-nonce",
		Cart:           []dto.CartItemDTO{{ProductID: product.ID, Quantity: 2}},
		IdempotencyKey: "key-1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	_, _, data = decodeResponse(t, rec)
	var order dto.OrderDTO
	require.NoError(t, json.Unmarshal(data, &order))
	require.Equal(t, "Not Processed", order.Status)
	require.True(t, order.Payment.Success)

	// 結帳後購物車清空
	rec = env.do(t, http.MethodGet, "/api/v1/cart/", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, _, data = decodeResponse(t, rec)
	require.NoError(t, json.Unmarshal(data, &cart))
	require.Empty(t, cart.Items)

	// 買家訂單
	rec = env.do(t, http.MethodGet, "/api/v1/auth/orders", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, _, data = decodeResponse(t, rec)
	var orders []dto.OrderDTO
	require.NoError(t, json.Unmarshal(data, &orders))
	require.Len(t, orders, 1)

	// admin更新訂單狀態
	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/v1/auth/order-status/%s", order.ID), adminToken, dto.UpdateOrderStatusDTO{Status: "Shipped"})
	require.Equal(t, http.StatusOK, rec.Code)

	// 非法狀態400
	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/v1/auth/order-status/%s", order.ID), adminToken, dto.UpdateOrderStatusDTO{Status: "banana"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// 一般用戶不能改狀態
	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/v1/auth/order-status/%s", order.ID), userToken, dto.UpdateOrderStatusDTO{Status: "Shipped"})
	require.Equal(t, http.StatusForbidden, rec.Code)
}
