package service

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/token"
	"github.com/RoyceAzure/lab/shopcenter/internal/util"
	"github.com/RoyceAzure/lab/shopcenter/internal/util/er"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testTokenKey = "0123456789abcdef0123456789abcdef"

func newAuthService(t *testing.T) (IAuthService, IUserService, token.Maker) {
	t.Helper()
	dao := newTestDbDao(t)
	userService := NewUserService(db.NewUserRepo(dao))
	tokenMaker, err := token.NewJWTMaker(testTokenKey)
	require.NoError(t, err)
	return NewAuthService(userService, tokenMaker), userService, tokenMaker
}

func registerParamsForTest(email string) RegisterParams {
	return RegisterParams{
		Name:           "tester",
		Email:          email,
		Password:       "secret123",
		Phone:          "0912345678",
		Address:        "somewhere",
		SecurityAnswer: "blue",
	}
}

func TestRegister(t *testing.T) {
	svc, _, _ := newAuthService(t)

	user, created, err := svc.Register(context.Background(), registerParamsForTest("tester@example.com"))
	require.NoError(t, err)
	require.True(t, created)
	require.NotEqual(t, uuid.Nil, user.UserID)
	require.Equal(t, "tester@example.com", user.Email)
	// 不存明文密碼
	require.NotEqual(t, "secret123", user.PasswordHash)
	require.NoError(t, util.CheckPassword("secret123", user.PasswordHash))
}

// email重複註冊視為冪等成功
func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	first, created, err := svc.Register(ctx, registerParamsForTest("tester@example.com"))
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := svc.Register(ctx, registerParamsForTest("tester@example.com"))
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.UserID, second.UserID)
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*RegisterParams)
	}{
		{"no name", func(p *RegisterParams) { p.Name = "" }},
		{"no email", func(p *RegisterParams) { p.Email = "" }},
		{"no password", func(p *RegisterParams) { p.Password = "" }},
		{"no phone", func(p *RegisterParams) { p.Phone = "" }},
		{"no address", func(p *RegisterParams) { p.Address = "" }},
		{"no answer", func(p *RegisterParams) { p.SecurityAnswer = "" }},
		{"short password", func(p *RegisterParams) { p.Password = "abc" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := registerParamsForTest("tester@example.com")
			tc.mutate(&params)

			_, _, err := svc.Register(ctx, params)
			require.Error(t, err)
			appErr, ok := err.(*er.AppError)
			require.True(t, ok)
			require.Equal(t, er.InvalidArgumentCode, appErr.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _, tokenMaker := newAuthService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, registerParamsForTest("tester@example.com"))
	require.NoError(t, err)

	result, err := svc.Login(ctx, "tester@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, user.UserID, result.User.UserID)
	require.NotEmpty(t, result.AccessToken)

	payload, err := tokenMaker.VerifyToken(result.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.UserID, payload.UserID)
	require.Equal(t, user.Email, payload.Email)
	require.False(t, payload.IsAdmin)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "secret123")
	require.Error(t, err)
	appErr, ok := err.(*er.AppError)
	require.True(t, ok)
	require.Equal(t, er.NotFoundCode, appErr.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerParamsForTest("tester@example.com"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, "tester@example.com", "wrong-password")
	require.Error(t, err)
	appErr, ok := err.(*er.AppError)
	require.True(t, ok)
	require.Equal(t, er.UnauthenticatedCode, appErr.Code)
}

func TestForgotPassword(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerParamsForTest("tester@example.com"))
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "tester@example.com", "blue", "newsecret"))

	// 新密碼可登入, 舊密碼失效
	_, err = svc.Login(ctx, "tester@example.com", "newsecret")
	require.NoError(t, err)
	_, err = svc.Login(ctx, "tester@example.com", "secret123")
	require.Error(t, err)
}

func TestForgotPassword_WrongAnswer(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerParamsForTest("tester@example.com"))
	require.NoError(t, err)

	err = svc.ForgotPassword(ctx, "tester@example.com", "red", "newsecret")
	require.Error(t, err)
	appErr, ok := err.(*er.AppError)
	require.True(t, ok)
	require.Equal(t, er.NotFoundCode, appErr.Code)
}

func TestMe(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, registerParamsForTest("tester@example.com"))
	require.NoError(t, err)

	payload, err := token.NewPayload(user.UserID, user.Email, user.IsAdmin, time.Hour)
	require.NoError(t, err)
	authedCtx := context.WithValue(ctx, constants.AuthorizationPayloadKey, payload)

	got, err := svc.Me(authedCtx)
	require.NoError(t, err)
	require.Equal(t, user.UserID, got.UserID)
}

func TestMe_NoPayload(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Me(context.Background())
	require.Error(t, err)
	appErr, ok := err.(*er.AppError)
	require.True(t, ok)
	require.Equal(t, er.UnauthenticatedCode, appErr.Code)
}

func TestUpdateProfile(t *testing.T) {
	svc, userService, _ := newAuthService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, registerParamsForTest("tester@example.com"))
	require.NoError(t, err)

	updated, err := userService.UpdateProfile(ctx, user.UserID, UpdateProfileParams{
		Name:    "renamed",
		Address: "elsewhere",
	})
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Name)
	require.Equal(t, "elsewhere", updated.Address)
	// 未提供的欄位保留原值
	require.Equal(t, user.Phone, updated.Phone)
	require.Equal(t, user.Email, updated.Email)
}
